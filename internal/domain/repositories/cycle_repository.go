package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// CycleRepository defines read access to queen cycles
type CycleRepository interface {
	// FindActiveByHive returns the hive's single active cycle, or (nil, nil)
	// when no cycle is currently active.
	FindActiveByHive(ctx context.Context, hiveID uuid.UUID) (*entities.Cycle, error)
}
