package notes

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

type implGemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Generator that rotates through the supplied Gemini API
// keys when one hits its quota. Same prompt contract as the OpenAI provider.
func NewGemini(apiKeys []string, model string, log logger.Logger) Generator {
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

// Generate sends the transcript to Gemini and returns the notes text.
// Rotates API keys on 429 / quota errors; any other error aborts.
func (g *implGemini) Generate(ctx context.Context, transcript string) (string, error) {
	prompt := systemPrompt + "\n\n" + userPrompt(transcript)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, idx := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%w: %v", ErrSummarization, err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			if text != "" {
				return text, nil
			}
		}

		return "", fmt.Errorf("%w: empty Gemini response", ErrSummarization)
	}

	return "", fmt.Errorf("%w: all API keys exhausted: %v", ErrSummarization, lastErr)
}

// activeKey returns the current key and its index. The generator is shared
// by every in-flight request, so the index is read and written under a lock.
func (g *implGemini) activeKey() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *implGemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
