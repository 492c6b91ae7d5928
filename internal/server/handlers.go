package server

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/meeting-flow/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

// readAudioPart drains a multipart file header into memory. A part that is
// present but unreadable is reported as a read failure, not a missing field.
func readAudioPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

type transcribeResponse struct {
	Message           string `json:"message"`
	Transcription     string `json:"transcription"`
	SummaryAndActions string `json:"summary_and_actions"`
}

// handleTranscribe accepts a multipart audio payload in the `audio` field
// and runs the full pipeline synchronously.
func (s *Server) handleTranscribe(c *fiber.Ctx) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No audio file provided"})
	}

	data, err := readAudioPart(fh)
	if err != nil {
		s.logger.Error(c.Context(), "Failed to read audio part %s: %v", fh.Filename, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read audio file"})
	}

	out, err := s.pipeline.Run(c.Context(), pipeline.Upload{
		// Base keeps path fragments a client might smuggle into the filename.
		Filename: filepath.Base(fh.Filename),
		Data:     data,
	})
	if err != nil {
		s.logger.Error(c.Context(), "Pipeline run failed for %s: %v", fh.Filename, err)
		status := fiber.StatusInternalServerError
		if errors.Is(err, pipeline.ErrMissingInput) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(transcribeResponse{
		Message:           "Transcription and summary generated successfully",
		Transcription:     out.Transcription,
		SummaryAndActions: out.SummaryAndActions,
	})
}

// handleList returns every persisted result, most recent first.
func (s *Server) handleList(c *fiber.Ctx) error {
	results, err := s.store.ListRecent(c.Context())
	if err != nil {
		s.logger.Error(c.Context(), "List results failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}

// handleGet resolves one identifier. Malformed ids are rejected without
// touching the store's data path.
func (s *Server) handleGet(c *fiber.Ctx) error {
	result, err := s.store.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
		default:
			s.logger.Error(c.Context(), "Get result %s failed: %v", c.Params("id"), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(result)
}
