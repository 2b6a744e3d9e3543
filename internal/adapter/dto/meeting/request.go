package meeting

import (
	"time"

	"github.com/google/uuid"
)

// CreateMeetingRequest represents the request to register a recorded meeting
type CreateMeetingRequest struct {
	HiveID         uuid.UUID `json:"hive_id" validate:"required"`
	RecorderID     uuid.UUID `json:"recorder_id" validate:"required"`
	OccurredOn     time.Time `json:"occurred_on" validate:"required"`
	AudioObjectKey string    `json:"audio_object_key" validate:"required,min=1,max=1024"`
}

// AttributionRequest maps diarization labels to hive members
type AttributionRequest struct {
	Assignments map[string]uuid.UUID `json:"assignments" validate:"required,min=1"`
}

// TranscriptionWebhookRequest is the callback body from the transcription
// provider. Status and TranscriptID are set on completion and error
// callbacks; MeetingID is set for internal submission dispatch.
type TranscriptionWebhookRequest struct {
	Status       string     `json:"status,omitempty"`
	TranscriptID string     `json:"transcript_id,omitempty"`
	Error        string     `json:"error,omitempty"`
	MeetingID    *uuid.UUID `json:"meeting_id,omitempty"`
}
