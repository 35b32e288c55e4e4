// server/domain/note.go
package domain

import "time"

type Note struct {
	ID       int64     `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Modified time.Time `json:"modified" db:"modified"`
	FolderID int64     `json:"folderid" db:"folderid"`
	Content  string    `json:"content" db:"content"`
}

// NoteInput holds the writable columns of a note. Modified is always set by
// the store.
type NoteInput struct {
	Name     string
	FolderID int64
	Content  string
}

// NoteFields is the request body accepted by note create and update. Pointer
// fields distinguish an absent or null value from a zero value.
type NoteFields struct {
	Name     *string `json:"name"`
	FolderID *int64  `json:"folderid"`
	Content  *string `json:"content"`
}

// MissingField reports the first required field, in declaration order, that
// is absent or null. It returns "" when the body is complete.
func (f NoteFields) MissingField() string {
	switch {
	case f.Name == nil:
		return "name"
	case f.FolderID == nil:
		return "folderid"
	case f.Content == nil:
		return "content"
	}
	return ""
}

// Input must only be called after MissingField returned "".
func (f NoteFields) Input() NoteInput {
	return NoteInput{
		Name:     *f.Name,
		FolderID: *f.FolderID,
		Content:  *f.Content,
	}
}
