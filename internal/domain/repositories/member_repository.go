package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// MemberRepository defines read-only access to the hive roster
type MemberRepository interface {
	ListByHive(ctx context.Context, hiveID uuid.UUID) ([]entities.Member, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Member, error)
}
