package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveUpload stages the raw upload on disk. The on-disk name is derived from
// a generated uuid, never from the caller-supplied filename, so concurrent
// uploads with the same name cannot clobber each other.
func (n *implNormalizer) SaveUpload(ctx context.Context, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(n.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	key := uuid.NewString()
	path := filepath.Join(n.uploadsDir, key+filepath.Ext(filename))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	n.logger.Debug(ctx, "Staged upload %s as %s (%d bytes)", filename, path, len(data))
	return path, nil
}

// Normalize converts the staged file to 16kHz mono PCM WAV.
// This format is optimal for Whisper processing.
func (n *implNormalizer) Normalize(ctx context.Context, inputPath string) (string, error) {
	wavPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_16k.wav"

	n.logger.Info(ctx, "Normalizing audio: %s", inputPath)

	// FFmpeg arguments for audio normalization
	// -vn: drop any video stream
	// -ar 16000: 16kHz sample rate
	// -ac 1: mono channel
	// -c:a pcm_s16le: PCM 16-bit little-endian (uncompressed)
	// -y: overwrite output file if exists
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := n.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		// ffmpeg may have left a partial output behind.
		if rmErr := os.Remove(wavPath); rmErr != nil && !os.IsNotExist(rmErr) {
			n.logger.Warn(ctx, "Failed to cleanup partial output %s: %v", wavPath, rmErr)
		}
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	n.logger.Info(ctx, "Audio normalized: %s", wavPath)
	return wavPath, nil
}

// Remove deletes a transient file, logging a warning if it fails.
func (n *implNormalizer) Remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		n.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	} else {
		n.logger.Debug(ctx, "Cleaned up temp file: %s", path)
	}
}
