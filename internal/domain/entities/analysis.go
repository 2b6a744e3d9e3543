package entities

// MeetingAnalysis is the structured result distilled from the LLM response.
// It is only ever constructed through the layered-fallback parser, so
// downstream code can rely on its shape: a degraded parse still yields a
// usable value with the raw text as Summary and empty lists elsewhere.
type MeetingAnalysis struct {
	Summary     string                `json:"summary"`
	ActionItems []ExtractedActionItem `json:"action_items"`
	Wishes      []ExtractedWish       `json:"wishes"`
	Highlights  []string              `json:"highlights"`
}

// ExtractedActionItem is an action item as named by the LLM, before assignee
// resolution against the roster
type ExtractedActionItem struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// ExtractedWish is an informal request surfaced from the conversation
type ExtractedWish struct {
	Person      string `json:"person"`
	Description string `json:"description"`
}

// Normalize replaces nil slices so serialized payloads always carry arrays
func (a *MeetingAnalysis) Normalize() {
	if a.ActionItems == nil {
		a.ActionItems = make([]ExtractedActionItem, 0)
	}
	if a.Wishes == nil {
		a.Wishes = make([]ExtractedWish, 0)
	}
	if a.Highlights == nil {
		a.Highlights = make([]string, 0)
	}
}
