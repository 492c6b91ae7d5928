package pipeline

import (
	"context"
	"fmt"
	"time"
)

// Run executes one strictly linear pipeline run:
// save upload -> normalize -> transcribe -> generate notes -> persist ->
// best-effort snapshot. Transient files are removed on every exit path.
func (p *implPipeline) Run(ctx context.Context, up Upload) (Outcome, error) {
	if up.Filename == "" || len(up.Data) == 0 {
		return Outcome{}, ErrMissingInput
	}

	startTime := time.Now()
	p.logger.Info(ctx, "Starting pipeline run: %s (%d bytes)", up.Filename, len(up.Data))

	// Step 1: Stage the upload under a per-request key
	rawPath, err := p.media.SaveUpload(ctx, up.Filename, up.Data)
	if err != nil {
		return Outcome{}, fmt.Errorf("stage upload: %w", err)
	}
	defer p.media.Remove(ctx, rawPath)

	// Step 2: Normalize to the canonical waveform
	wavPath, err := p.media.Normalize(ctx, rawPath)
	if err != nil {
		return Outcome{}, err
	}
	defer p.media.Remove(ctx, wavPath)

	// Step 3: Transcribe
	text, err := p.transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		return Outcome{}, err
	}
	transcription := formatTranscription(text)

	// Step 4: Generate meeting notes from the raw transcript
	summary, err := p.notes.Generate(ctx, text)
	if err != nil {
		return Outcome{}, err
	}

	// Step 5: Persist. The store insert is the authoritative commit point.
	id, err := p.store.Insert(ctx, up.Filename, transcription, summary)
	if err != nil {
		return Outcome{}, err
	}

	// Step 6: Best-effort file snapshot. Never fails the run.
	if err := p.artifacts.WriteSnapshot(ctx, up.Filename, transcription, summary); err != nil {
		p.logger.Warn(ctx, "Failed to write snapshot for %s: %v", up.Filename, err)
	}

	p.logger.Info(ctx, "Pipeline run completed: %s -> %s in %s", up.Filename, id, time.Since(startTime))

	return Outcome{
		ID:                id,
		Transcription:     transcription,
		SummaryAndActions: summary,
	}, nil
}

// formatTranscription wraps the whole transcript as one span. Per-segment
// timestamps are never computed here.
func formatTranscription(text string) string {
	return fmt.Sprintf("[00:00 - END] Transcription: %s\n", text)
}
