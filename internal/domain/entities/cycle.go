package entities

import (
	"time"

	"github.com/google/uuid"
)

// CycleStatus represents the lifecycle of a queen cycle
type CycleStatus string

const (
	CycleStatusActive CycleStatus = "active"
	CycleStatusClosed CycleStatus = "closed"
)

// Cycle is one rotation of the hive's queen role. At most one cycle per hive
// is active at a time; highlights extracted while it is active belong to it.
type Cycle struct {
	ID        uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	HiveID    uuid.UUID   `json:"hive_id" gorm:"type:uuid;not null;index"`
	MemberID  uuid.UUID   `json:"member_id" gorm:"type:uuid;not null"`
	Status    CycleStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	StartedOn time.Time   `json:"started_on" gorm:"type:date;not null"`
	EndedOn   *time.Time  `json:"ended_on,omitempty" gorm:"type:date"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Cycle) TableName() string {
	return "cycles"
}

// IsActive reports whether this cycle currently holds the queen role
func (c *Cycle) IsActive() bool {
	return c.Status == CycleStatusActive
}
