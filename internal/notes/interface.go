package notes

import (
	"context"
	"errors"
)

// ErrSummarization covers every failure of the notes-generation service.
// No retry, no fallback template.
var ErrSummarization = errors.New("summarization failed")

// Generator turns a meeting transcript into structured prose notes.
// The transcript may be empty; length limits are the provider's concern.
type Generator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}
