package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// MeetingRepository defines persistence for meetings. Lookups return
// (nil, nil) when no row matches so callers can treat absence as benign.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	// FindByTranscriptJobID is the completion-callback lookup: the provider
	// only knows its own job id, never our meeting id.
	FindByTranscriptJobID(ctx context.Context, jobID string) (*entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
}
