package notes

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

type implOpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAI creates the default Generator: one chat completion against the
// configured OpenAI model, no history, no streaming, no tools.
func NewOpenAI(apiKey, model string, log logger.Logger) Generator {
	return &implOpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: log,
	}
}

func (g *implOpenAI) Generate(ctx context.Context, transcript string) (string, error) {
	g.logger.Info(ctx, "Generating meeting notes with %s", g.model)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(transcript)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarization, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion response", ErrSummarization)
	}

	return resp.Choices[0].Message.Content, nil
}
