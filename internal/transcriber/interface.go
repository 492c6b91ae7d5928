package transcriber

import (
	"context"
	"errors"
)

// ErrTranscription covers every failure of the speech-to-text service:
// network, auth, quota, malformed response. No local retry is performed.
var ErrTranscription = errors.New("transcription failed")

// Transcriber converts a canonical audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
