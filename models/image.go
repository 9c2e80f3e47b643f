package models

// Image is one attached file inside an album. The File payload is exclusively
// owned by the image until it is replaced or the image is removed; PreviewRef
// is the revocable handle a renderer uses to show the file before upload.
type Image struct {
	ID         string
	Name       string
	MimeType   string
	Size       int64
	PreviewRef string // empty when the payload could not produce a preview (placeholder rendering)
	File       File
	CreatedAt  int64
	UpdatedAt  int64
}

// HasPreview reports whether the image carries a live preview reference.
func (img *Image) HasPreview() bool {
	return img.PreviewRef != ""
}
