// server/http/folders.go
package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/noteful-server/domain"
	"github.com/ViniZap4/noteful-server/sanitize"
)

const msgFolderNotFound = "Folder doesn't exist"

type folderKey struct{}

type folderResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func serializeFolder(f domain.Folder) folderResponse {
	return folderResponse{
		ID:   f.ID,
		Name: sanitize.Text(f.Name),
	}
}

func (s *Server) handleListFolders(c *fiber.Ctx) error {
	folders, err := s.store.ListFolders(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]folderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, serializeFolder(f))
	}
	return c.JSON(out)
}

func (s *Server) handleCreateFolder(c *fiber.Ctx) error {
	var req domain.FolderFields
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, msgMalformedBody)
	}
	if field := req.MissingField(); field != "" {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Missing '%s' in request body", field))
	}

	folder, err := s.store.InsertFolder(c.UserContext(), *req.Name)
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/%d", folder.ID))
	return c.Status(fiber.StatusCreated).JSON(serializeFolder(folder))
}

// loadFolder runs before every /:folderId handler and stops the chain with a
// 404 when the folder is absent.
func (s *Server) loadFolder(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("folderId"))
	if !ok {
		return writeError(c, fiber.StatusNotFound, msgFolderNotFound)
	}

	folder, err := s.store.FindFolder(c.UserContext(), id)
	if err != nil {
		return err
	}
	if folder == nil {
		return writeError(c, fiber.StatusNotFound, msgFolderNotFound)
	}

	c.Locals(folderKey{}, folder)
	return c.Next()
}

func currentFolder(c *fiber.Ctx) *domain.Folder {
	return c.Locals(folderKey{}).(*domain.Folder)
}

func (s *Server) handleGetFolder(c *fiber.Ctx) error {
	return c.JSON(serializeFolder(*currentFolder(c)))
}

func (s *Server) handleDeleteFolder(c *fiber.Ctx) error {
	if err := s.store.DeleteFolder(c.UserContext(), currentFolder(c).ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handlePatchFolder(c *fiber.Ctx) error {
	var req domain.FolderFields
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, msgMalformedBody)
	}
	if field := req.MissingField(); field != "" {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Request body must contain '%s'", field))
	}

	if err := s.store.UpdateFolder(c.UserContext(), currentFolder(c).ID, *req.Name); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseID accepts positive base-10 integers only. Anything else cannot name a
// stored row.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
