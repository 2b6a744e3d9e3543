package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProcessingState tracks a meeting recording through the pipeline.
// Transitions are monotonic: pending -> transcribing -> summarizing ->
// complete, with failed as the only terminal escape after transcribing.
type ProcessingState string

const (
	ProcessingStatePending      ProcessingState = "pending"
	ProcessingStateTranscribing ProcessingState = "transcribing"
	ProcessingStateSummarizing  ProcessingState = "summarizing"
	ProcessingStateComplete     ProcessingState = "complete"
	ProcessingStateFailed       ProcessingState = "failed"
)

// stateRank orders the non-terminal stages for monotonicity checks
var stateRank = map[ProcessingState]int{
	ProcessingStatePending:      0,
	ProcessingStateTranscribing: 1,
	ProcessingStateSummarizing:  2,
	ProcessingStateComplete:     3,
}

// Meeting represents a recorded hive meeting and everything derived from it
type Meeting struct {
	ID                   uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	HiveID               uuid.UUID       `json:"hive_id" gorm:"type:uuid;not null;index"`
	RecorderID           uuid.UUID       `json:"recorder_id" gorm:"type:uuid;not null"`
	OccurredOn           time.Time       `json:"occurred_on" gorm:"type:date;not null"`
	AudioObjectKey       string          `json:"audio_object_key" gorm:"type:text;not null"`
	RawTranscript        *string         `json:"raw_transcript,omitempty" gorm:"type:text"`
	AttributedTranscript *string         `json:"attributed_transcript,omitempty" gorm:"type:text"`
	Summary              datatypes.JSON  `json:"summary,omitempty" gorm:"type:jsonb"`
	ProcessingState      ProcessingState `json:"processing_state" gorm:"type:varchar(20);not null;default:'pending';index"`
	TranscriptJobID      *string         `json:"transcript_job_id,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt            time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting in the pending state
func NewMeeting(hiveID, recorderID uuid.UUID, occurredOn time.Time, audioObjectKey string) *Meeting {
	return &Meeting{
		ID:              uuid.New(),
		HiveID:          hiveID,
		RecorderID:      recorderID,
		OccurredOn:      occurredOn,
		AudioObjectKey:  audioObjectKey,
		ProcessingState: ProcessingStatePending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// CanTransitionTo reports whether moving to the target state preserves
// monotonic ordering. failed is reachable from any stage past pending and
// loops on itself; nothing leaves failed except an operator re-submission.
func (m *Meeting) CanTransitionTo(target ProcessingState) bool {
	if target == ProcessingStateFailed {
		return m.ProcessingState != ProcessingStateComplete
	}
	if m.ProcessingState == ProcessingStateFailed {
		// operator-triggered re-submission restarts at transcribing
		return target == ProcessingStateTranscribing
	}
	cur, ok := stateRank[m.ProcessingState]
	next, ok2 := stateRank[target]
	if !ok || !ok2 {
		return false
	}
	return next == cur+1
}

// MarkTranscribing records the provider job id and advances the state.
// The job id is set exactly once per submission attempt.
func (m *Meeting) MarkTranscribing(transcriptJobID string) {
	m.TranscriptJobID = &transcriptJobID
	m.ProcessingState = ProcessingStateTranscribing
	m.UpdatedAt = time.Now()
}

// MarkSummarizing stores the raw transcript and advances the state. The
// attributed transcript defaults to the raw one until speakers are resolved.
func (m *Meeting) MarkSummarizing(rawTranscript string) {
	m.RawTranscript = &rawTranscript
	if m.AttributedTranscript == nil {
		m.AttributedTranscript = &rawTranscript
	}
	m.ProcessingState = ProcessingStateSummarizing
	m.UpdatedAt = time.Now()
}

// MarkComplete stores the summary payload and finishes the pipeline
func (m *Meeting) MarkComplete(summary datatypes.JSON) {
	m.Summary = summary
	m.ProcessingState = ProcessingStateComplete
	m.UpdatedAt = time.Now()
}

// MarkFailed moves the meeting to the terminal failed state
func (m *Meeting) MarkFailed() {
	m.ProcessingState = ProcessingStateFailed
	m.UpdatedAt = time.Now()
}

// IsTerminal reports whether the pipeline is done with this meeting
func (m *Meeting) IsTerminal() bool {
	return m.ProcessingState == ProcessingStateComplete || m.ProcessingState == ProcessingStateFailed
}
