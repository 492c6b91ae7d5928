package pipeline

import (
	"context"
	"errors"
)

// ErrMissingInput is returned when a run is attempted without an audio
// payload. No external service is engaged in that case.
var ErrMissingInput = errors.New("no audio file provided")

// Upload is the ephemeral input of one pipeline run. It lives exactly as
// long as the run that consumes it.
type Upload struct {
	Filename string
	Data     []byte
}

// Outcome is the success envelope of one pipeline run.
type Outcome struct {
	ID                string
	Transcription     string
	SummaryAndActions string
}

// Pipeline executes one end-to-end run: normalize, transcribe, summarize,
// persist. Any stage failure aborts the run; no partial result is persisted.
type Pipeline interface {
	Run(ctx context.Context, up Upload) (Outcome, error)
}
