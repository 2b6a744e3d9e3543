package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItem is a task surfaced from a meeting transcript. Items are not
// deduplicated across reprocessing passes; a re-run appends a fresh set.
type ActionItem struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	HiveID      uuid.UUID  `json:"hive_id" gorm:"type:uuid;not null;index"`
	Description string     `json:"description" gorm:"type:text;not null"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty" gorm:"type:uuid;index"`
	DueDate     *time.Time `json:"due_date,omitempty" gorm:"type:date"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates an open action item for a meeting
func NewActionItem(meetingID, hiveID uuid.UUID, description string) *ActionItem {
	return &ActionItem{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		HiveID:      hiveID,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// SetCompleted toggles the completion flag and stamps the toggle time
func (a *ActionItem) SetCompleted(completed bool) {
	a.Completed = completed
	if completed {
		now := time.Now()
		a.CompletedAt = &now
	} else {
		a.CompletedAt = nil
	}
	a.UpdatedAt = time.Now()
}
