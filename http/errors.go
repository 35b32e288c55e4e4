// server/http/errors.go
package http

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/noteful-server/storage"
)

const msgMalformedBody = "Malformed JSON in request body"

var errMalformedBody = errors.New("malformed request body")

type errorDetail struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorBody{Error: errorDetail{Message: message}})
}

// handleError is the fiber ErrorHandler: every error a handler returns ends
// up here. Storage failures become a 500.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeError(c, fe.Code, fe.Message)
	}

	event := s.log.Error()
	if errors.Is(err, storage.ErrConstraint) {
		event = s.log.Warn()
	}
	event.Err(err).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")

	message := err.Error()
	if s.production {
		message = "server error"
	}
	return writeError(c, fiber.StatusInternalServerError, message)
}

// decodeBody treats an empty body like an empty object so that validation
// reports the missing field instead of a parse error.
func decodeBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, v); err != nil {
		return errMalformedBody
	}
	return nil
}
