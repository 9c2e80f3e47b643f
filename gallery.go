// Package gallery manages the album/image collection edited inside a media
// form: a protected default album plus user-created albums, each holding
// attached-but-unpersisted files with revocable preview references. The
// embedding form supplies external snapshots through SetCollection and
// receives one OnChange call per committed mutation.
package gallery

import (
	"gallery/ident"
	"gallery/models"
	"gallery/preview"
	"gallery/reconcile"
	"gallery/store"
)

// Options configure one editing session.
type Options struct {
	// OnChange receives the full collection after every committed mutation.
	OnChange func(models.Collection)

	// OnDisplayInvalidated tells a carousel-like widget that the visible
	// item count changed. Best-effort; correctness never depends on it.
	OnDisplayInvalidated func()

	// AdoptEmptySnapshots makes an empty external snapshot clear the
	// collection instead of being ignored as "not yet available".
	AdoptEmptySnapshots bool
}

// Session owns one gallery-editing lifecycle, from first snapshot to Close.
type Session struct {
	store    *store.Store
	previews *preview.Manager
	rec      *reconcile.Reconciler
}

func NewSession(opts Options) *Session {
	previews := preview.NewManager()
	st := store.New(previews, ident.New())
	st.SetOnChange(opts.OnChange)
	st.SetOnDisplayInvalidated(opts.OnDisplayInvalidated)
	return &Session{
		store:    st,
		previews: previews,
		rec:      reconcile.New(st, opts.AdoptEmptySnapshots),
	}
}

// SetCollection feeds an externally supplied snapshot through the reconciler
// and reports whether it was adopted. Echoes of our own pushes are ignored.
func (s *Session) SetCollection(c models.Collection) bool {
	return s.rec.Apply(c)
}

// Collection returns a deep copy of the current state.
func (s *Session) Collection() models.Collection {
	return s.store.Snapshot()
}

// Preview resolves a live preview reference for rendering.
func (s *Session) Preview(ref string) (*preview.Resource, bool) {
	return s.previews.Lookup(ref)
}

// PreviewStats reports lifetime acquire/release totals.
func (s *Session) PreviewStats() (acquired, released uint64) {
	return s.previews.Stats()
}

// Close releases every outstanding preview reference.
func (s *Session) Close() {
	s.store.Close()
}

func (s *Session) CreateAlbum(name string) (string, error) {
	return s.store.CreateAlbum(name)
}

func (s *Session) DeleteAlbum(albumID string) error {
	return s.store.DeleteAlbum(albumID)
}

func (s *Session) RenameAlbum(albumID, newName string) error {
	return s.store.RenameAlbum(albumID, newName)
}

func (s *Session) AddImages(albumID string, files []models.File) (added, skipped int, err error) {
	return s.store.AddImages(albumID, files)
}

func (s *Session) RemoveImage(albumID, imageID string) error {
	return s.store.RemoveImage(albumID, imageID)
}

func (s *Session) ReplaceImage(albumID, imageID string, f models.File) error {
	return s.store.ReplaceImage(albumID, imageID, f)
}

func (s *Session) SetCover(albumID, imageID string) error {
	return s.store.SetCover(albumID, imageID)
}
