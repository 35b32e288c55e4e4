// server/http/handlers.go
package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/noteful-server/metrics"
	"github.com/ViniZap4/noteful-server/storage"
)

type Options struct {
	Logger zerolog.Logger
	// Production replaces internal error text with a generic message.
	Production   bool
	CORSOrigins  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Metrics defaults to a fresh registry when nil.
	Metrics *metrics.Metrics
}

type Server struct {
	app        *fiber.App
	store      storage.Store
	log        zerolog.Logger
	production bool
}

func NewServer(store storage.Store, opts Options) *Server {
	s := &Server{
		store:      store,
		log:        opts.Logger,
		production: opts.Production,
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "noteful",
		ErrorHandler:          s.handleError,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		DisableStartupMessage: true,
	})

	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(helmet.New())
	s.app.Use(cors.New(cors.Config{AllowOrigins: opts.CORSOrigins}))
	s.app.Use(opts.Metrics.Middleware())
	s.app.Use(requestLogger(s.log))
	s.app.Use(recover.New())

	s.app.Get("/", s.handleRoot)
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", opts.Metrics.Handler())

	api := s.app.Group("/api")

	folders := api.Group("/folders")
	folders.Get("/", s.handleListFolders)
	folders.Post("/", s.handleCreateFolder)
	folders.Get("/:folderId", s.loadFolder, s.handleGetFolder)
	folders.Delete("/:folderId", s.loadFolder, s.handleDeleteFolder)
	folders.Patch("/:folderId", s.loadFolder, s.handlePatchFolder)

	notes := api.Group("/notes")
	notes.Get("/", s.handleListNotes)
	notes.Post("/", s.handleCreateNote)
	notes.Get("/:noteId", s.loadNote, s.handleGetNote)
	notes.Delete("/:noteId", s.loadNote, s.handleDeleteNote)
	notes.Patch("/:noteId", s.loadNote, s.handlePatchNote)

	return s
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Hello, world!"})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	if err := s.store.Ping(c.UserContext()); err != nil {
		s.log.Error().Err(err).Msg("health check failed")
		return writeError(c, fiber.StatusServiceUnavailable, "storage unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
