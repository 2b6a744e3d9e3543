package entities

import (
	"time"

	"github.com/google/uuid"
)

// Highlight is a short progress note credited to the queen cycle active when
// the meeting was summarized. Highlights for a (cycle, meeting) pair are
// replaced wholesale on each summarization pass.
type Highlight struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CycleID      uuid.UUID `json:"cycle_id" gorm:"type:uuid;not null;index"`
	MeetingID    uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	DisplayOrder int       `json:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Highlight) TableName() string {
	return "highlights"
}

// NewHighlight creates a highlight at the given display position
func NewHighlight(cycleID, meetingID uuid.UUID, content string, order int) *Highlight {
	return &Highlight{
		ID:           uuid.New(),
		CycleID:      cycleID,
		MeetingID:    meetingID,
		Content:      content,
		DisplayOrder: order,
		CreatedAt:    time.Now(),
	}
}
