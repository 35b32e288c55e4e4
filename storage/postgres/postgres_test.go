package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/noteful-server/domain"
	"github.com/ViniZap4/noteful-server/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "pgx")), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestListFoldersEmpty(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("SELECT id, name FROM folders ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	folders, err := store.ListFolders(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, folders)
	assert.Empty(t, folders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertFolderReturnsRow(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("INSERT INTO folders (name)")).
		WithArgs("Groceries").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Groceries"))

	folder, err := store.InsertFolder(context.Background(), "Groceries")
	require.NoError(t, err)
	assert.Equal(t, domain.Folder{ID: 1, Name: "Groceries"}, folder)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFolderAbsent(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("SELECT id, name FROM folders WHERE id = $1")).
		WithArgs(int64(1234)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	folder, err := store.FindFolder(context.Background(), 1234)
	require.NoError(t, err)
	assert.Nil(t, folder)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDeleteFolder(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(q("UPDATE folders SET name = $2 WHERE id = $1")).
		WithArgs(int64(2), "Renamed").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM folders WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, store.UpdateFolder(ctx, 2, "Renamed"))
	require.NoError(t, store.DeleteFolder(ctx, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertNoteAndFind(t *testing.T) {
	store, mock := newMockStore(t)
	modified := time.Date(2100, 5, 22, 16, 28, 32, 615000000, time.UTC)
	cols := []string{"id", "name", "modified", "folderid", "content"}

	mock.ExpectQuery(q("INSERT INTO notes (name, folderid, content)")).
		WithArgs("test new note", int64(2), "test new content").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, "test new note", modified, 2, "test new content"))
	mock.ExpectQuery(q("FROM notes")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, "test new note", modified, 2, "test new content"))

	ctx := context.Background()
	created, err := store.InsertNote(ctx, domain.NoteInput{Name: "test new note", FolderID: 2, Content: "test new content"})
	require.NoError(t, err)
	want := domain.Note{ID: 5, Name: "test new note", Modified: modified, FolderID: 2, Content: "test new content"}
	assert.Equal(t, want, created)

	found, err := store.FindNote(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, want, *found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNoteRefreshesModified(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(q("SET name = $2, folderid = $3, content = $4, modified = now()")).
		WithArgs(int64(2), "n", int64(3), "c").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.UpdateNote(context.Background(), 2, domain.NoteInput{Name: "n", FolderID: 3, Content: "c"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertNoteForeignKeyViolation(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("INSERT INTO notes")).
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.ForeignKeyViolation,
			Message:        `insert or update on table "notes" violates foreign key constraint`,
			ConstraintName: "notes_folderid_fkey",
		})

	_, err := store.InsertNote(context.Background(), domain.NoteInput{Name: "n", FolderID: 99, Content: "c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrConstraint)
	assert.Contains(t, err.Error(), "notes_folderid_fkey")
}

func TestClassifyPassesOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	assert.Same(t, boom, classify(boom))
	assert.NoError(t, classify(nil))

	syntax := &pgconn.PgError{Code: pgerrcode.SyntaxError}
	assert.False(t, errors.Is(classify(syntax), storage.ErrConstraint))
}

func TestSchemaKeysAreBigint(t *testing.T) {
	for _, col := range []string{
		"id BIGINT PRIMARY KEY",
		"folderid BIGINT NOT NULL REFERENCES folders(id) ON DELETE CASCADE",
	} {
		assert.Contains(t, Schema, col)
	}
	assert.NotContains(t, Schema, "INTEGER")
}
