package pipeline

import (
	"fmt"
	"strings"
)

// analysisPromptTemplate instructs the model to return exactly one JSON
// object. The roster is inlined so extracted assignee and wish names line up
// with real members instead of speaker labels.
const analysisPromptTemplate = `You are the note-taker for a small community group called a hive. You will receive the speaker-labeled transcript of one of its weekly meetings.

The members of this hive are: %s.

Respond with a single JSON object and nothing else, using this exact shape:
{
  "summary": "a few sentences of prose summarizing the meeting",
  "action_items": [{"description": "...", "assignee": "member name or empty", "due_date": "YYYY-MM-DD or empty"}],
  "wishes": [{"person": "member name", "description": "something they informally asked for or wished aloud"}],
  "highlights": ["short progress highlight", "..."]
}

Rules:
- Use member names from the roster above whenever you can identify who is meant.
- Leave "assignee" empty rather than guessing.
- "highlights" are short wins or progress notes worth celebrating, at most five.
- Do not wrap the JSON in markdown fences or add commentary.`

// buildSystemPrompt renders the fixed analysis prompt for a roster
func buildSystemPrompt(rosterNames []string) string {
	roster := strings.Join(rosterNames, ", ")
	if roster == "" {
		roster = "(roster unavailable)"
	}
	return fmt.Sprintf(analysisPromptTemplate, roster)
}
