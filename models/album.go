package models

import "strings"

// DefaultAlbumName is the reserved name of the album every collection starts
// with. The album carrying it can never be deleted or renamed and always
// sorts first.
const DefaultAlbumName = "General"

type Album struct {
	ID        string
	Name      string
	Images    []Image
	CoverID   string // ID of the image shown as the album cover, empty for none
	CreatedAt int64
	IsDefault bool
}

// FindImage returns a pointer into the album's image list, or nil.
func (a *Album) FindImage(imageID string) *Image {
	for i := range a.Images {
		if a.Images[i].ID == imageID {
			return &a.Images[i]
		}
	}
	return nil
}

func (a *Album) Clone() Album {
	c := *a
	c.Images = make([]Image, len(a.Images))
	copy(c.Images, a.Images)
	return c
}

// Collection is the ordered set of albums owned by one editing session.
// Display order is slice order; the default album is kept at position 0.
type Collection []Album

func (c Collection) Find(albumID string) *Album {
	for i := range c {
		if c[i].ID == albumID {
			return &c[i]
		}
	}
	return nil
}

// FindName matches case-insensitively, the same rule used for uniqueness.
func (c Collection) FindName(name string) *Album {
	for i := range c {
		if EqualNames(c[i].Name, name) {
			return &c[i]
		}
	}
	return nil
}

func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i := range c {
		out[i] = c[i].Clone()
	}
	return out
}

// EqualNames is the album name equality rule: case-insensitive, ignoring
// surrounding whitespace.
func EqualNames(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ImageCount returns the total number of images across all albums.
func (c Collection) ImageCount() (n int) {
	for i := range c {
		n += len(c[i].Images)
	}
	return
}
