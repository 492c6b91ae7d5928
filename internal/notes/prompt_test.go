package notes

import (
	"strings"
	"testing"
)

func TestUserPrompt(t *testing.T) {
	transcript := "We agreed to ship Friday."
	prompt := userPrompt(transcript)

	if !strings.Contains(prompt, transcript) {
		t.Error("prompt must embed the transcript verbatim")
	}

	sections := []string{
		"Summary of Meeting",
		"Key Decisions",
		"Open Questions",
		"Action Items",
		"Next Steps",
	}
	for _, s := range sections {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt missing section %q", s)
		}
	}
}

func TestUserPromptEmptyTranscript(t *testing.T) {
	// Empty transcripts are not treated specially.
	prompt := userPrompt("")
	if !strings.Contains(prompt, "Meeting Transcription:") {
		t.Error("prompt template should survive an empty transcript")
	}
}
