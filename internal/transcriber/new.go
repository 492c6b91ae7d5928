package transcriber

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

type implTranscriber struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// New creates a Transcriber backed by OpenAI's audio transcription API.
func New(apiKey, model string, log logger.Logger) Transcriber {
	return &implTranscriber{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: log,
	}
}
