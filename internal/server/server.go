package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

// Server is the HTTP ingress: one upload endpoint driving the pipeline and
// two retrieval endpoints reading the store.
type Server struct {
	app      *fiber.App
	pipeline pipeline.Pipeline
	store    store.Store
	logger   logger.Logger
}

// New builds the Fiber app and registers the routes.
func New(pipe pipeline.Pipeline, st store.Store, log logger.Logger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             100 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:      app,
		pipeline: pipe,
		store:    st,
		logger:   log,
	}

	app.Post("/transcribe", s.handleTranscribe)
	app.Get("/get_transcriptions", s.handleList)
	app.Get("/get_transcription/:id", s.handleGet)

	return s
}

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
