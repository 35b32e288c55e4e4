// server/storage/memory/memory.go
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ViniZap4/noteful-server/domain"
	"github.com/ViniZap4/noteful-server/storage"
)

// Store keeps folders and notes in process memory. It enforces the same
// foreign key and cascade rules as the postgres schema and is meant for tests
// and local development.
type Store struct {
	mu           sync.RWMutex
	nextFolderID int64
	nextNoteID   int64
	folders      map[int64]domain.Folder
	notes        map[int64]domain.Note

	// Now stamps Modified. Defaults to time.Now.
	Now func() time.Time
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		nextFolderID: 1,
		nextNoteID:   1,
		folders:      make(map[int64]domain.Folder),
		notes:        make(map[int64]domain.Note),
		Now:          time.Now,
	}
}

func (s *Store) ListFolders(_ context.Context) ([]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) InsertFolder(_ context.Context, name string) (domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := domain.Folder{ID: s.nextFolderID, Name: name}
	s.nextFolderID++
	s.folders[f.ID] = f
	return f, nil
}

func (s *Store) FindFolder(_ context.Context, id int64) (*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.folders[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (s *Store) UpdateFolder(_ context.Context, id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return nil
	}
	f.Name = name
	s.folders[id] = f
	return nil
}

func (s *Store) DeleteFolder(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.folders, id)
	for noteID, n := range s.notes {
		if n.FolderID == id {
			delete(s.notes, noteID)
		}
	}
	return nil
}

func (s *Store) ListNotes(_ context.Context) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) InsertNote(_ context.Context, in domain.NoteInput) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFolder(in.FolderID); err != nil {
		return domain.Note{}, err
	}
	n := domain.Note{
		ID:       s.nextNoteID,
		Name:     in.Name,
		Modified: s.stamp(),
		FolderID: in.FolderID,
		Content:  in.Content,
	}
	s.nextNoteID++
	s.notes[n.ID] = n
	return n, nil
}

func (s *Store) FindNote(_ context.Context, id int64) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (s *Store) UpdateNote(_ context.Context, id int64, in domain.NoteInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil
	}
	if err := s.checkFolder(in.FolderID); err != nil {
		return err
	}
	n.Name = in.Name
	n.FolderID = in.FolderID
	n.Content = in.Content
	n.Modified = s.stamp()
	s.notes[id] = n
	return nil
}

func (s *Store) DeleteNote(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notes, id)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// caller holds mu
func (s *Store) checkFolder(id int64) error {
	if _, ok := s.folders[id]; !ok {
		return fmt.Errorf("%w: folder %d does not exist", storage.ErrConstraint, id)
	}
	return nil
}

// Postgres keeps microseconds; match it so round trips compare equal.
func (s *Store) stamp() time.Time {
	return s.Now().UTC().Truncate(time.Microsecond)
}
