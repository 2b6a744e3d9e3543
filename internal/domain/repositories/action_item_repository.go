package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// ActionItemRepository defines persistence for action items
type ActionItemRepository interface {
	CreateBatch(ctx context.Context, items []*entities.ActionItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]entities.ActionItem, error)
	Update(ctx context.Context, item *entities.ActionItem) error
}
