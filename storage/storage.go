// server/storage/storage.go
package storage

import (
	"context"
	"errors"

	"github.com/ViniZap4/noteful-server/domain"
)

// ErrConstraint wraps integrity violations reported by a store, such as a
// note referencing a folder that does not exist.
var ErrConstraint = errors.New("storage: constraint violation")

// FolderStore persists folders. FindFolder returns nil, nil when the folder
// does not exist. DeleteFolder removes the folder's notes as well.
type FolderStore interface {
	ListFolders(ctx context.Context) ([]domain.Folder, error)
	InsertFolder(ctx context.Context, name string) (domain.Folder, error)
	FindFolder(ctx context.Context, id int64) (*domain.Folder, error)
	UpdateFolder(ctx context.Context, id int64, name string) error
	DeleteFolder(ctx context.Context, id int64) error
}

// NoteStore persists notes. FindNote returns nil, nil when the note does not
// exist. InsertNote and UpdateNote stamp Modified.
type NoteStore interface {
	ListNotes(ctx context.Context) ([]domain.Note, error)
	InsertNote(ctx context.Context, in domain.NoteInput) (domain.Note, error)
	FindNote(ctx context.Context, id int64) (*domain.Note, error)
	UpdateNote(ctx context.Context, id int64, in domain.NoteInput) error
	DeleteNote(ctx context.Context, id int64) error
}

// Store is the full storage handle injected into the HTTP server.
type Store interface {
	FolderStore
	NoteStore
	Ping(ctx context.Context) error
	Close() error
}
