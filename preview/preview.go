// Package preview owns the lifecycle of the transient preview references
// attached images carry while they are still unpersisted. It is the only
// authority allowed to create or revoke a reference, which keeps acquisition
// and release symmetric and auditable.
package preview

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"
	"sync/atomic"

	"gallery/models"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Previews are bounded to this size on the longest side; big enough for a
// gallery tile, small enough to keep dozens of them in memory.
const thumbSize = 320

const jpegQuality = 90

// Resource is the renderable payload behind a live reference.
type Resource struct {
	Data     []byte // JPEG-encoded preview
	Width    uint16
	Height   uint16
	MimeType string
}

// Manager maps opaque reference tokens to preview resources. Tokens are
// random, so a revoked or foreign token can never be confused with a live one.
type Manager struct {
	refs     cmap.ConcurrentMap[string, *Resource]
	acquired uint64
	released uint64
}

func NewManager() *Manager {
	return &Manager{
		refs: cmap.New[*Resource](),
	}
}

// Acquire decodes the payload, renders a downscaled JPEG preview and registers
// it under a fresh token. A payload that cannot be decoded (zero bytes,
// corrupt data, unsupported format) returns models.ErrUnpreviewable and no
// token; the caller keeps the image and falls back to placeholder rendering.
func (m *Manager) Acquire(f models.File) (string, error) {
	if len(f.Data) == 0 {
		return "", models.ErrUnpreviewable
	}
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return "", models.ErrUnpreviewable
	}
	thumb := resize.Thumbnail(thumbSize, thumbSize, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", models.ErrUnpreviewable
	}
	rect := thumb.Bounds().Size()
	token := uuid.NewString()
	m.refs.Set(token, &Resource{
		Data:     buf.Bytes(),
		Width:    uint16(rect.X),
		Height:   uint16(rect.Y),
		MimeType: "image/jpeg",
	})
	atomic.AddUint64(&m.acquired, 1)
	return token, nil
}

// Release revokes a reference. Releasing an empty, already-released or
// foreign token is a no-op, so duplicate UI events cannot double-free a
// reference still in use elsewhere.
func (m *Manager) Release(token string) {
	if token == "" {
		return
	}
	if _, ok := m.refs.Pop(token); !ok {
		log.Printf("preview: ignoring release of unknown ref %s", token)
		return
	}
	atomic.AddUint64(&m.released, 1)
}

// Lookup resolves a live token for a renderer. A revoked token returns false.
func (m *Manager) Lookup(token string) (*Resource, bool) {
	return m.refs.Get(token)
}

// ReleaseAll revokes every outstanding reference and returns how many there
// were. Called once when the owning session ends.
func (m *Manager) ReleaseAll() int {
	tokens := m.refs.Keys()
	for _, token := range tokens {
		m.Release(token)
	}
	return len(tokens)
}

// Outstanding is the number of currently live references.
func (m *Manager) Outstanding() int {
	return m.refs.Count()
}

// Stats reports lifetime acquire/release totals for leak accounting.
func (m *Manager) Stats() (acquired, released uint64) {
	return atomic.LoadUint64(&m.acquired), atomic.LoadUint64(&m.released)
}
