// server/http/notes.go
package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/noteful-server/domain"
	"github.com/ViniZap4/noteful-server/sanitize"
)

const msgNoteNotFound = "Note doesn't exist"

type noteKey struct{}

type noteResponse struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Modified time.Time `json:"modified"`
	FolderID int64     `json:"folderid"`
	Content  string    `json:"content"`
}

func serializeNote(n domain.Note) noteResponse {
	return noteResponse{
		ID:       n.ID,
		Name:     sanitize.Text(n.Name),
		Modified: n.Modified.UTC(),
		FolderID: n.FolderID,
		Content:  sanitize.Text(n.Content),
	}
}

func (s *Server) handleListNotes(c *fiber.Ctx) error {
	notes, err := s.store.ListNotes(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, serializeNote(n))
	}
	return c.JSON(out)
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var req domain.NoteFields
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, msgMalformedBody)
	}
	if field := req.MissingField(); field != "" {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Missing '%s' in request body", field))
	}

	note, err := s.store.InsertNote(c.UserContext(), req.Input())
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/%d", note.ID))
	return c.Status(fiber.StatusCreated).JSON(serializeNote(note))
}

func (s *Server) loadNote(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("noteId"))
	if !ok {
		return writeError(c, fiber.StatusNotFound, msgNoteNotFound)
	}

	note, err := s.store.FindNote(c.UserContext(), id)
	if err != nil {
		return err
	}
	if note == nil {
		return writeError(c, fiber.StatusNotFound, msgNoteNotFound)
	}

	c.Locals(noteKey{}, note)
	return c.Next()
}

func currentNote(c *fiber.Ctx) *domain.Note {
	return c.Locals(noteKey{}).(*domain.Note)
}

func (s *Server) handleGetNote(c *fiber.Ctx) error {
	return c.JSON(serializeNote(*currentNote(c)))
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	if err := s.store.DeleteNote(c.UserContext(), currentNote(c).ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handlePatchNote requires every field even though the verb is PATCH;
// unknown fields in the body are ignored.
func (s *Server) handlePatchNote(c *fiber.Ctx) error {
	var req domain.NoteFields
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, msgMalformedBody)
	}
	if field := req.MissingField(); field != "" {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Request body must contain '%s'", field))
	}

	if err := s.store.UpdateNote(c.UserContext(), currentNote(c).ID, req.Input()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
