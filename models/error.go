package models

import "errors"

// Every error here rejects a single operation and leaves the collection
// untouched. None of them is fatal to the session.
var (
	ErrEmptyName      = errors.New("album name is empty")
	ErrDuplicateName  = errors.New("an album with this name already exists")
	ErrProtectedAlbum = errors.New("the default album cannot be renamed or deleted")
	ErrUnknownAlbum   = errors.New("no such album")
	ErrUnknownImage   = errors.New("no such image in this album")
	ErrInvalidFile    = errors.New("file has no readable byte stream")
	ErrUnpreviewable  = errors.New("file cannot produce a preview")
)
