package meeting

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// MeetingResponse is the API view of a meeting and its pipeline state
type MeetingResponse struct {
	ID                   uuid.UUID       `json:"id"`
	HiveID               uuid.UUID       `json:"hive_id"`
	RecorderID           uuid.UUID       `json:"recorder_id"`
	OccurredOn           time.Time       `json:"occurred_on"`
	ProcessingState      string          `json:"processing_state"`
	RawTranscript        *string         `json:"raw_transcript,omitempty"`
	AttributedTranscript *string         `json:"attributed_transcript,omitempty"`
	Summary              json.RawMessage `json:"summary,omitempty"`
	TranscriptJobID      *string         `json:"transcript_job_id,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToMeetingResponse converts a meeting entity to its API view
func ToMeetingResponse(m *entities.Meeting) *MeetingResponse {
	resp := &MeetingResponse{
		ID:                   m.ID,
		HiveID:               m.HiveID,
		RecorderID:           m.RecorderID,
		OccurredOn:           m.OccurredOn,
		ProcessingState:      string(m.ProcessingState),
		RawTranscript:        m.RawTranscript,
		AttributedTranscript: m.AttributedTranscript,
		TranscriptJobID:      m.TranscriptJobID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if len(m.Summary) > 0 {
		resp.Summary = json.RawMessage(m.Summary)
	}
	return resp
}

// SubmissionResponse acknowledges an accepted transcription submission
type SubmissionResponse struct {
	MeetingID       uuid.UUID `json:"meeting_id"`
	TranscriptJobID string    `json:"transcript_job_id"`
	ProcessingState string    `json:"processing_state"`
}
