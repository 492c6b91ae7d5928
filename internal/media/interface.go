package media

import (
	"context"
	"errors"
)

// ErrConversion is returned when ffmpeg fails or is missing. Unconverted
// audio is never passed downstream.
var ErrConversion = errors.New("audio conversion failed")

// Normalizer owns the transient audio files of one pipeline run: it saves
// the upload under a per-request key and converts it to the canonical
// waveform the transcription service accepts.
type Normalizer interface {
	// SaveUpload writes the raw upload into the uploads work dir under a
	// generated key, preserving only the original extension.
	SaveUpload(ctx context.Context, filename string, data []byte) (string, error)
	// Normalize converts the file at inputPath to 16kHz mono PCM WAV and
	// returns the path of the converted file.
	Normalize(ctx context.Context, inputPath string) (string, error)
	// Remove deletes a transient file, logging on failure.
	Remove(ctx context.Context, path string)
}
