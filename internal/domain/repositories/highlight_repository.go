package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// HighlightRepository defines persistence for queen-cycle highlights
type HighlightRepository interface {
	// ReplaceForMeeting deletes this meeting's prior highlights and inserts
	// the given set in one transaction, keeping reprocessing idempotent.
	ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, highlights []*entities.Highlight) error
	ListByCycle(ctx context.Context, cycleID uuid.UUID) ([]entities.Highlight, error)
}
