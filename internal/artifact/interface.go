package artifact

import "context"

// Writer mirrors a pipeline result to per-request files. Purely an
// operational side-channel: nothing reads these back, and a write failure
// never affects the pipeline outcome.
type Writer interface {
	WriteSnapshot(ctx context.Context, filename, transcription, summaryAndActions string) error
}
