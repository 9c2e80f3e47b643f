package ident

import "testing"

func TestNext(t *testing.T) {
	g := New()
	if got := g.Next("album"); got != "album_1" {
		t.Errorf("Next(album) = %q, want album_1", got)
	}
	if got := g.Next("img"); got != "img_2" {
		t.Errorf("Next(img) = %q, want img_2 (shared counter)", got)
	}
	if got := g.Next("img"); got != "img_3" {
		t.Errorf("Next(img) = %q, want img_3", got)
	}
}

func TestReserve(t *testing.T) {
	g := New()
	g.Reserve(5)
	if got := g.Next("album"); got != "album_6" {
		t.Errorf("Next() after Reserve(5) = %q, want album_6", got)
	}
	g.Reserve(2) // lower than current: must not rewind
	if got := g.Next("album"); got != "album_7" {
		t.Errorf("Next() after Reserve(2) = %q, want album_7", got)
	}
}

func TestGeneratorsAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Next("x")
	if got := b.Next("x"); got != "x_1" {
		t.Errorf("fresh generator Next() = %q, want x_1", got)
	}
}
