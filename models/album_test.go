package models

import "testing"

func TestEqualNames(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Kitchen", "kitchen", true},
		{" Kitchen ", "KITCHEN", true},
		{"Kitchen", "Kitchen2", false},
		{"", "   ", true},
	}
	for _, tt := range tests {
		if got := EqualNames(tt.a, tt.b); got != tt.want {
			t.Errorf("EqualNames(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCollectionCloneIsDeep(t *testing.T) {
	c := Collection{{ID: "a", Name: "A", Images: []Image{{ID: "1"}}}}
	clone := c.Clone()
	clone[0].Name = "changed"
	clone[0].Images[0].ID = "changed"
	clone[0].Images = append(clone[0].Images, Image{ID: "2"})
	if c[0].Name != "A" || c[0].Images[0].ID != "1" || len(c[0].Images) != 1 {
		t.Errorf("Clone() shares state with the original: %+v", c[0])
	}
}

func TestCollectionFind(t *testing.T) {
	c := Collection{{ID: "a", Name: "Kitchen"}, {ID: "b", Name: "Garden"}}
	if got := c.Find("b"); got == nil || got.Name != "Garden" {
		t.Errorf("Find(b) = %+v, want Garden", got)
	}
	if got := c.Find("z"); got != nil {
		t.Errorf("Find(z) = %+v, want nil", got)
	}
	if got := c.FindName("gArDeN"); got == nil || got.ID != "b" {
		t.Errorf("FindName(gArDeN) = %+v, want album b", got)
	}
}
