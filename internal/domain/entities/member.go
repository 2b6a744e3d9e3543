package entities

import (
	"time"

	"github.com/google/uuid"
)

// Member is a hive roster entry. Membership is owned by the community
// subsystem; this core only reads it for assignee resolution and speaker
// attribution.
type Member struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	HiveID      uuid.UUID `json:"hive_id" gorm:"type:uuid;not null;index"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}
