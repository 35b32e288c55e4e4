// server/storage/postgres/postgres.go
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/ViniZap4/noteful-server/domain"
	"github.com/ViniZap4/noteful-server/storage"
)

// Schema is the DDL the store expects. The server never applies it.
//
//go:embed schema.sql
var Schema string

// Store implements storage.Store against PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.Store = (*Store)(nil)

// Open connects through the pgx stdlib driver and pings the database.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return New(db), nil
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	folders := []domain.Folder{}
	if err := s.db.SelectContext(ctx, &folders, `SELECT id, name FROM folders ORDER BY id`); err != nil {
		return nil, classify(err)
	}
	return folders, nil
}

func (s *Store) InsertFolder(ctx context.Context, name string) (domain.Folder, error) {
	var f domain.Folder
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO folders (name)
		VALUES ($1)
		RETURNING id, name
	`, name).StructScan(&f)
	if err != nil {
		return domain.Folder{}, classify(err)
	}
	return f, nil
}

func (s *Store) FindFolder(ctx context.Context, id int64) (*domain.Folder, error) {
	var f domain.Folder
	err := s.db.GetContext(ctx, &f, `SELECT id, name FROM folders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &f, nil
}

func (s *Store) UpdateFolder(ctx context.Context, id int64, name string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE folders SET name = $2 WHERE id = $1`, id, name)
	return classify(err)
}

// DeleteFolder relies on ON DELETE CASCADE to remove the folder's notes.
func (s *Store) DeleteFolder(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id)
	return classify(err)
}

func (s *Store) ListNotes(ctx context.Context) ([]domain.Note, error) {
	notes := []domain.Note{}
	err := s.db.SelectContext(ctx, &notes, `
		SELECT id, name, modified, folderid, content
		FROM notes
		ORDER BY id
	`)
	if err != nil {
		return nil, classify(err)
	}
	return notes, nil
}

func (s *Store) InsertNote(ctx context.Context, in domain.NoteInput) (domain.Note, error) {
	var n domain.Note
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO notes (name, folderid, content)
		VALUES ($1, $2, $3)
		RETURNING id, name, modified, folderid, content
	`, in.Name, in.FolderID, in.Content).StructScan(&n)
	if err != nil {
		return domain.Note{}, classify(err)
	}
	return n, nil
}

func (s *Store) FindNote(ctx context.Context, id int64) (*domain.Note, error) {
	var n domain.Note
	err := s.db.GetContext(ctx, &n, `
		SELECT id, name, modified, folderid, content
		FROM notes
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &n, nil
}

func (s *Store) UpdateNote(ctx context.Context, id int64, in domain.NoteInput) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE notes
		SET name = $2, folderid = $3, content = $4, modified = now()
		WHERE id = $1
	`, id, in.Name, in.FolderID, in.Content)
	return classify(err)
}

func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	return classify(err)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
