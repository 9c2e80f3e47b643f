package models

// File is a binary payload handed in by a file-picker or drag-drop source.
// A handle without a readable byte stream (nil Data) is rejected per-item by
// batch attach rather than failing the whole batch.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

func (f *File) Readable() bool {
	return f.Data != nil
}

func (f *File) Size() int64 {
	return int64(len(f.Data))
}
