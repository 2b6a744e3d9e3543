package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from ProcessingState
		to   ProcessingState
		want bool
	}{
		{ProcessingStatePending, ProcessingStateTranscribing, true},
		{ProcessingStateTranscribing, ProcessingStateSummarizing, true},
		{ProcessingStateSummarizing, ProcessingStateComplete, true},

		// no skipping stages
		{ProcessingStatePending, ProcessingStateSummarizing, false},
		{ProcessingStatePending, ProcessingStateComplete, false},
		{ProcessingStateTranscribing, ProcessingStateComplete, false},

		// no moving backwards
		{ProcessingStateSummarizing, ProcessingStateTranscribing, false},
		{ProcessingStateComplete, ProcessingStateTranscribing, false},
		{ProcessingStateComplete, ProcessingStatePending, false},

		// failed is reachable from anywhere except complete
		{ProcessingStatePending, ProcessingStateFailed, true},
		{ProcessingStateTranscribing, ProcessingStateFailed, true},
		{ProcessingStateSummarizing, ProcessingStateFailed, true},
		{ProcessingStateComplete, ProcessingStateFailed, false},

		// failed only re-enters the pipeline at transcribing
		{ProcessingStateFailed, ProcessingStateTranscribing, true},
		{ProcessingStateFailed, ProcessingStatePending, false},
		{ProcessingStateFailed, ProcessingStateSummarizing, false},
		{ProcessingStateFailed, ProcessingStateComplete, false},
	}

	for _, tt := range tests {
		m := &Meeting{ProcessingState: tt.from}
		if got := m.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestMarkSummarizing_DefaultsAttributedTranscript(t *testing.T) {
	m := NewMeeting(uuid.New(), uuid.New(), time.Now(), "key")
	m.MarkTranscribing("job-1")

	m.MarkSummarizing("Speaker A: hello")
	if m.AttributedTranscript == nil || *m.AttributedTranscript != "Speaker A: hello" {
		t.Fatalf("attributed transcript should default to raw, got %v", m.AttributedTranscript)
	}

	// a later re-run must not clobber an operator-supplied attribution
	attributed := "Alice: hello"
	m.AttributedTranscript = &attributed
	m.MarkSummarizing("Speaker A: hello again")
	if *m.AttributedTranscript != "Alice: hello" {
		t.Fatalf("existing attribution was clobbered: %q", *m.AttributedTranscript)
	}
}

func TestMarkComplete_SetsTerminalState(t *testing.T) {
	m := NewMeeting(uuid.New(), uuid.New(), time.Now(), "key")
	m.MarkTranscribing("job-1")
	m.MarkSummarizing("text")
	m.MarkComplete(datatypes.JSON(`{"summary":"done"}`))

	if !m.IsTerminal() {
		t.Fatal("complete meeting must be terminal")
	}
	if m.CanTransitionTo(ProcessingStateFailed) {
		t.Fatal("complete must not transition to failed")
	}
}
