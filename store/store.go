// Package store owns the canonical in-memory collection of albums for one
// editing session and enforces its structural invariants: exactly one
// protected default album sorted first, case-insensitive name uniqueness,
// and a live preview reference for exactly the lifetime of each image.
package store

import (
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"gallery/ident"
	"gallery/models"
	"gallery/preview"

	"github.com/gabriel-vasile/mimetype"
)

const (
	albumIDPrefix = "album"
	imageIDPrefix = "img"
)

type Store struct {
	mu       sync.Mutex
	albums   models.Collection
	ids      *ident.Generator
	previews *preview.Manager

	// onChange receives a deep copy of the collection once per committed
	// mutation, never for rejected or no-op operations. onInvalidate tells a
	// display widget the visible item count changed; best-effort only.
	onChange     func(models.Collection)
	onInvalidate func()
}

// New seeds the collection with the reserved default album. Seeding is part
// of initialization and is not reported through onChange.
func New(previews *preview.Manager, ids *ident.Generator) *Store {
	return &Store{
		ids:      ids,
		previews: previews,
		albums: models.Collection{{
			ID:        ident.DefaultAlbumID,
			Name:      models.DefaultAlbumName,
			CreatedAt: time.Now().Unix(),
			IsDefault: true,
		}},
	}
}

func (s *Store) SetOnChange(fn func(models.Collection)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) SetOnDisplayInvalidated(fn func()) {
	s.mu.Lock()
	s.onInvalidate = fn
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current collection.
func (s *Store) Snapshot() models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.albums.Clone()
}

// CreateAlbum appends a new empty album and returns its id. The reserved
// default name counts as taken.
func (s *Store) CreateAlbum(name string) (string, error) {
	s.mu.Lock()
	trimmed := trimName(name)
	if trimmed == "" {
		s.mu.Unlock()
		return "", models.ErrEmptyName
	}
	if s.albums.FindName(trimmed) != nil {
		s.mu.Unlock()
		return "", models.ErrDuplicateName
	}
	album := models.Album{
		ID:        s.ids.Next(albumIDPrefix),
		Name:      trimmed,
		CreatedAt: time.Now().Unix(),
	}
	s.albums = append(s.albums, album)
	snap := s.albums.Clone()
	s.mu.Unlock()

	s.committed(snap)
	return album.ID, nil
}

// DeleteAlbum removes an album and all its images, releasing every contained
// preview reference. The default album is protected.
func (s *Store) DeleteAlbum(albumID string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.albums {
		if s.albums[i].ID == albumID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return models.ErrUnknownAlbum
	}
	if s.albums[idx].IsDefault {
		s.mu.Unlock()
		return models.ErrProtectedAlbum
	}
	for i := range s.albums[idx].Images {
		s.previews.Release(s.albums[idx].Images[i].PreviewRef)
	}
	s.albums = append(s.albums[:idx], s.albums[idx+1:]...)
	snap := s.albums.Clone()
	s.mu.Unlock()

	s.committed(snap)
	return nil
}

// RenameAlbum is a no-op when the new name equals the current one. The
// default album is protected and its reserved name counts as taken.
func (s *Store) RenameAlbum(albumID, newName string) error {
	s.mu.Lock()
	album := s.albums.Find(albumID)
	if album == nil {
		s.mu.Unlock()
		return models.ErrUnknownAlbum
	}
	if album.IsDefault {
		s.mu.Unlock()
		return models.ErrProtectedAlbum
	}
	trimmed := trimName(newName)
	if trimmed == "" {
		s.mu.Unlock()
		return models.ErrEmptyName
	}
	if trimmed == album.Name {
		s.mu.Unlock()
		return nil
	}
	if other := s.albums.FindName(trimmed); other != nil && other.ID != album.ID {
		s.mu.Unlock()
		return models.ErrDuplicateName
	}
	album.Name = trimmed
	snap := s.albums.Clone()
	s.mu.Unlock()

	s.committed(snap)
	return nil
}

// AddImages attaches each readable file to the album in input order and
// returns how many were added and how many were skipped. A handle without a
// readable byte stream is skipped; an undecodable payload is still attached
// and renders as a placeholder.
func (s *Store) AddImages(albumID string, files []models.File) (added, skipped int, err error) {
	s.mu.Lock()
	album := s.albums.Find(albumID)
	if album == nil {
		s.mu.Unlock()
		return 0, 0, models.ErrUnknownAlbum
	}
	for i := range files {
		if !files[i].Readable() {
			log.Printf("store: skipping unreadable file %q", files[i].Name)
			skipped++
			continue
		}
		album.Images = append(album.Images, s.attachLocked(files[i]))
		added++
	}
	if added == 0 {
		s.mu.Unlock()
		return 0, skipped, nil
	}
	snap := s.albums.Clone()
	s.mu.Unlock()

	s.committed(snap)
	return added, skipped, nil
}

// RemoveImage is idempotent: removing from a missing album or removing an
// already-absent image is a silent no-op so duplicate UI events are harmless.
func (s *Store) RemoveImage(albumID, imageID string) error {
	s.mu.Lock()
	album := s.albums.Find(albumID)
	if album == nil {
		s.mu.Unlock()
		return nil
	}
	idx := -1
	for i := range album.Images {
		if album.Images[i].ID == imageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil
	}
	s.previews.Release(album.Images[idx].PreviewRef)
	album.Images = append(album.Images[:idx], album.Images[idx+1:]...)
	if album.CoverID == imageID {
		album.CoverID = ""
	}
	snap := s.albums.Clone()
	s.mu.Unlock()

	s.committed(snap)
	return nil
}

// ReplaceImage swaps the image's payload: the replacement preview is acquired
// first, then the old reference is released, so the image never points at a
// revoked reference.
func (s *Store) ReplaceImage(albumID, imageID string, f models.File) error {
	s.mu.Lock()
	album := s.albums.Find(albumID)
	if album == nil {
		s.mu.Unlock()
		return models.ErrUnknownAlbum
	}
	img := album.FindImage(imageID)
	if img == nil {
		s.mu.Unlock()
		return models.ErrUnknownImage
	}
	if !f.Readable() {
		s.mu.Unlock()
		return models.ErrInvalidFile
	}
	ref, err := s.previews.Acquire(f)
	if err != nil {
		log.Printf("store: no preview for replacement %q: %v", f.Name, err)
	}
	s.previews.Release(img.PreviewRef)
	img.File = f
	img.PreviewRef = ref
	img.Name = f.Name
	img.MimeType = sniffMime(f)
	img.Size = f.Size()
	img.UpdatedAt = time.Now().Unix()
	snap := s.albums.Clone()
	s.mu.Unlock()

	s.committed(snap)
	return nil
}

// SetCover marks an image as the album cover. No-op when it already is.
func (s *Store) SetCover(albumID, imageID string) error {
	s.mu.Lock()
	album := s.albums.Find(albumID)
	if album == nil {
		s.mu.Unlock()
		return models.ErrUnknownAlbum
	}
	if album.FindImage(imageID) == nil {
		s.mu.Unlock()
		return models.ErrUnknownImage
	}
	if album.CoverID == imageID {
		s.mu.Unlock()
		return nil
	}
	album.CoverID = imageID
	snap := s.albums.Clone()
	s.mu.Unlock()

	s.committed(snap)
	return nil
}

// Adopt replaces the local collection with an externally supplied snapshot.
// References of local images that do not survive into the new collection are
// released; surviving images (matched by id) keep theirs. Adoption came from
// the outside, so it is not echoed back through onChange.
func (s *Store) Adopt(incoming models.Collection) {
	s.mu.Lock()
	surviving := make(map[string]bool, incoming.ImageCount())
	for i := range incoming {
		for j := range incoming[i].Images {
			surviving[incoming[i].Images[j].ID] = true
		}
	}
	for i := range s.albums {
		for j := range s.albums[i].Images {
			img := &s.albums[i].Images[j]
			if !surviving[img.ID] {
				s.previews.Release(img.PreviewRef)
			}
		}
	}
	s.albums = incoming.Clone()
	s.normalizeLocked()
	s.warmIDsLocked()
	onInvalidate := s.onInvalidate
	s.mu.Unlock()

	if onInvalidate != nil {
		onInvalidate()
	}
}

// Close releases every preview reference still outstanding. The store must
// not be used afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	for i := range s.albums {
		for j := range s.albums[i].Images {
			s.previews.Release(s.albums[i].Images[j].PreviewRef)
			s.albums[i].Images[j].PreviewRef = ""
		}
	}
	s.mu.Unlock()
	// Final sweep for anything the bookkeeping above missed.
	if n := s.previews.ReleaseAll(); n > 0 {
		log.Printf("store: released %d stray preview refs on close", n)
	}
}

func (s *Store) attachLocked(f models.File) models.Image {
	ref, err := s.previews.Acquire(f)
	if err != nil {
		log.Printf("store: no preview for %q: %v", f.Name, err)
	}
	now := time.Now().Unix()
	return models.Image{
		ID:         s.ids.Next(imageIDPrefix),
		Name:       f.Name,
		MimeType:   sniffMime(f),
		Size:       f.Size(),
		PreviewRef: ref,
		File:       f,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// normalizeLocked repairs an adopted collection: exactly one default album,
// always at position 0, inserted with its fixed id if the snapshot lacks one,
// and no two albums left sharing a name case-insensitively.
func (s *Store) normalizeLocked() {
	idx := s.findDefaultLocked()
	if idx == -1 {
		s.albums = append(models.Collection{{
			ID:        ident.DefaultAlbumID,
			Name:      models.DefaultAlbumName,
			CreatedAt: time.Now().Unix(),
			IsDefault: true,
		}}, s.albums...)
		idx = 0
	}
	def := s.albums[idx]
	def.IsDefault = true
	s.albums = append(s.albums[:idx], s.albums[idx+1:]...)
	s.albums = append(models.Collection{def}, s.albums...)
	for i := 1; i < len(s.albums); i++ {
		s.albums[i].IsDefault = false
	}

	// External snapshots are not trusted to honor name uniqueness; rename
	// duplicates instead of dropping them.
	seen := make(map[string]bool, len(s.albums))
	for i := range s.albums {
		key := strings.ToLower(strings.TrimSpace(s.albums[i].Name))
		if !seen[key] {
			seen[key] = true
			continue
		}
		base := strings.TrimSpace(s.albums[i].Name)
		for n := 2; ; n++ {
			renamed := base + " " + strconv.Itoa(n)
			key = strings.ToLower(renamed)
			if !seen[key] {
				log.Printf("store: adopted duplicate album name %q renamed to %q", base, renamed)
				s.albums[i].Name = renamed
				seen[key] = true
				break
			}
		}
	}
}

// findDefaultLocked picks the album to treat as the default, preferring the
// fixed id, then an explicit IsDefault flag, then the reserved name.
func (s *Store) findDefaultLocked() int {
	for i := range s.albums {
		if s.albums[i].ID == ident.DefaultAlbumID {
			return i
		}
	}
	for i := range s.albums {
		if s.albums[i].IsDefault {
			return i
		}
	}
	for i := range s.albums {
		if models.EqualNames(s.albums[i].Name, models.DefaultAlbumName) {
			return i
		}
	}
	return -1
}

// warmIDsLocked advances the id generator past every adopted id bearing one
// of our own prefixes, so ids minted later in this session cannot collide
// with ids an earlier session pushed out.
func (s *Store) warmIDsLocked() {
	for i := range s.albums {
		s.reserveID(s.albums[i].ID)
		for j := range s.albums[i].Images {
			s.reserveID(s.albums[i].Images[j].ID)
		}
	}
}

func (s *Store) reserveID(id string) {
	k := strings.LastIndexByte(id, '_')
	if k <= 0 {
		return
	}
	if prefix := id[:k]; prefix != albumIDPrefix && prefix != imageIDPrefix {
		return
	}
	n, err := strconv.ParseUint(id[k+1:], 10, 64)
	if err != nil {
		return
	}
	s.ids.Reserve(n)
}

func (s *Store) committed(snap models.Collection) {
	s.mu.Lock()
	onChange, onInvalidate := s.onChange, s.onInvalidate
	s.mu.Unlock()
	if onChange != nil {
		onChange(snap)
	}
	if onInvalidate != nil {
		onInvalidate()
	}
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}

func sniffMime(f models.File) string {
	if f.MimeType != "" {
		return f.MimeType
	}
	if len(f.Data) == 0 {
		return ""
	}
	return mimetype.Detect(f.Data).String()
}
