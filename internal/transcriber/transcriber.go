package transcriber

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Transcribe submits the audio file as a single synchronous request and
// returns the full transcript text. No timestamp segmentation is requested;
// an empty transcript is passed through unchanged.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	t.logger.Info(ctx, "Transcribing audio with %s: %s", t.model, audioPath)

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	t.logger.Debug(ctx, "Transcription returned %d characters", len(resp.Text))
	return resp.Text, nil
}
