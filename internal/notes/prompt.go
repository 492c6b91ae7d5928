package notes

import "fmt"

const systemPrompt = "You are an advanced AI assistant specializing in analyzing meeting transcriptions. " +
	"You provide structured, comprehensive meeting notes that capture the most important aspects of discussions. " +
	"Ensure the notes are organized into key sections to facilitate understanding and action."

const userPromptTemplate = `Please analyze the following meeting transcription and generate the following sections:

1. **Summary of Meeting:** A concise overview of the main points discussed.
2. **Key Decisions:** Specific decisions made during the meeting.
3. **Open Questions:** Any unresolved or follow-up questions raised.
4. **Action Items:** A list of explicit and implicit tasks assigned, with responsible parties.
5. **Next Steps:** Outline what needs to be done after the meeting.

Format your response in clear, labeled sections.

Meeting Transcription:

%s`

// userPrompt embeds the transcript verbatim into the fixed template.
func userPrompt(transcript string) string {
	return fmt.Sprintf(userPromptTemplate, transcript)
}
