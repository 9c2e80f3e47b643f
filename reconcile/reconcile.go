// Package reconcile decides whether an externally supplied collection
// snapshot should replace local state. Its core property is the fingerprint
// short-circuit: a snapshot that is merely our own last push echoed back, or
// an already-adopted parent snapshot re-supplied by a re-render, must not be
// re-adopted, or local edits get clobbered and the parent and the session
// feed each other forever.
package reconcile

import (
	"log"
	"strconv"
	"strings"

	"gallery/models"
	"gallery/store"
)

type Reconciler struct {
	store *store.Store

	// lastAdopted is the fingerprint of the raw snapshot most recently
	// adopted from the parent. Adoption normalizes the collection (default
	// album insertion and sorting), so the local fingerprint alone cannot
	// recognize a re-supplied copy of what was already adopted.
	lastAdopted string

	// adoptEmpty controls what an empty incoming snapshot means once local
	// state exists: false treats it as "not yet available" and keeps local
	// edits, true honors it as a deliberate clear.
	adoptEmpty bool
}

func New(s *store.Store, adoptEmpty bool) *Reconciler {
	return &Reconciler{store: s, adoptEmpty: adoptEmpty}
}

// Apply inspects one incoming snapshot and reports whether it was adopted.
// An incoming fingerprint matching either the current local collection (the
// parent echoing back a committed push) or the last raw adopted snapshot (a
// re-render re-supplying unchanged parent data) is ignored.
func (r *Reconciler) Apply(incoming models.Collection) bool {
	if len(incoming) == 0 && !r.adoptEmpty {
		return false
	}
	fp := Fingerprint(incoming)
	if fp == r.lastAdopted || fp == Fingerprint(r.store.Snapshot()) {
		return false
	}
	log.Printf("reconcile: adopting external snapshot (%d albums, %d images)",
		len(incoming), incoming.ImageCount())
	r.store.Adopt(incoming)
	r.lastAdopted = fp
	return true
}

// Fingerprint is a cheap structural summary: album count plus the ordered
// album and image ids. Names, metadata and payloads are deliberately not
// part of it; structural identity is what distinguishes an echo from a
// genuine external change.
func Fingerprint(c models.Collection) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(c)))
	for i := range c {
		b.WriteByte('|')
		b.WriteString(c[i].ID)
		b.WriteByte(':')
		for j := range c[i].Images {
			b.WriteString(c[i].Images[j].ID)
			b.WriteByte(',')
		}
	}
	return b.String()
}
