package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/noteful-server/domain"
	"github.com/ViniZap4/noteful-server/storage/memory"
)

var fixtureTime = time.Date(2100, 5, 22, 16, 28, 32, 615000000, time.UTC)

type response struct {
	Status   int
	Location string
	Body     []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), string(r.Body))
}

func (r response) errorMessage(t *testing.T) string {
	t.Helper()
	var body errorBody
	r.decode(t, &body)
	return body.Error.Message
}

func newTestServer(t *testing.T, opts Options) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.Now = func() time.Time { return fixtureTime }
	return NewServer(store, opts), store
}

func do(t *testing.T, s *Server, method, path string, body any) response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{Status: resp.StatusCode, Location: resp.Header.Get("Location"), Body: raw}
}

// seed mirrors the fixtures of the endpoint suites: four folders and one
// note per folder.
func seed(t *testing.T, store *memory.Store) ([]domain.Folder, []domain.Note) {
	t.Helper()
	ctx := context.Background()
	var folders []domain.Folder
	var notes []domain.Note
	for _, name := range []string{"Important", "Super", "Spangley", "Test"} {
		f, err := store.InsertFolder(ctx, name)
		require.NoError(t, err)
		folders = append(folders, f)
	}
	for i, f := range folders {
		n, err := store.InsertNote(ctx, domain.NoteInput{
			Name:     "testnote" + string(rune('1'+i)),
			FolderID: f.ID,
			Content:  "test content",
		})
		require.NoError(t, err)
		notes = append(notes, n)
	}
	return folders, notes
}

// countingStore records mutation calls so tests can assert a 404 never
// reached the store.
type countingStore struct {
	*memory.Store
	mutations int
}

func (c *countingStore) UpdateFolder(ctx context.Context, id int64, name string) error {
	c.mutations++
	return c.Store.UpdateFolder(ctx, id, name)
}

func (c *countingStore) DeleteFolder(ctx context.Context, id int64) error {
	c.mutations++
	return c.Store.DeleteFolder(ctx, id)
}

func (c *countingStore) UpdateNote(ctx context.Context, id int64, in domain.NoteInput) error {
	c.mutations++
	return c.Store.UpdateNote(ctx, id, in)
}

func (c *countingStore) DeleteNote(ctx context.Context, id int64) error {
	c.mutations++
	return c.Store.DeleteNote(ctx, id)
}

var errStorageDown = errors.New("dial tcp 127.0.0.1:5432: connection refused")

type brokenStore struct {
	*memory.Store
}

func (brokenStore) ListFolders(context.Context) ([]domain.Folder, error) {
	return nil, errStorageDown
}

func (brokenStore) Ping(context.Context) error {
	return errStorageDown
}
