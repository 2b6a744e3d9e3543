package pipeline

import (
	"encoding/json"
	"strings"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// Parser turns raw LLM output into a MeetingAnalysis. Parsing is best-effort
// and never fails: malformed output degrades to a plain-text summary with
// empty extraction lists instead of aborting the pipeline.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse applies the layered fallback ladder:
//  1. trim and strip a single optional markdown code fence
//  2. parse as JSON
//  3. a JSON string is treated as double-encoded and parsed again; if the
//     inner parse fails the string itself becomes the summary
//  4. a JSON object is used as-is, missing fields defaulting to empty
//  5. anything unparseable becomes the summary verbatim
func (p *Parser) Parse(raw string) *entities.MeetingAnalysis {
	text := stripFences(raw)

	analysis := parseValue(text)
	if analysis == nil {
		analysis = &entities.MeetingAnalysis{Summary: text}
	}
	analysis.Normalize()
	return analysis
}

// parseValue returns nil when text holds no usable JSON object
func parseValue(text string) *entities.MeetingAnalysis {
	var probe interface{}
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil
	}

	switch v := probe.(type) {
	case string:
		// Double-encoded JSON: the model returned a quoted JSON document.
		var inner entities.MeetingAnalysis
		if err := json.Unmarshal([]byte(v), &inner); err != nil {
			return &entities.MeetingAnalysis{Summary: v}
		}
		return &inner

	case map[string]interface{}:
		var result entities.MeetingAnalysis
		if err := json.Unmarshal([]byte(text), &result); err != nil {
			return nil
		}
		return &result

	default:
		// arrays, numbers, booleans: nothing to extract
		return nil
	}
}

// stripFences removes one optional leading/trailing markdown code fence
// (with or without a language tag), in either order
func stripFences(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		// drop a bare language tag on the fence line
		if idx := strings.Index(content, "\n"); idx != -1 {
			firstLine := strings.TrimSpace(content[:idx])
			if firstLine != "" && !strings.ContainsAny(firstLine, "{}[]\" ") {
				content = content[idx+1:]
			}
		}
	}

	content = strings.TrimSpace(content)
	if strings.HasSuffix(content, "```") {
		content = content[:len(content)-len("```")]
	}

	return strings.TrimSpace(content)
}
