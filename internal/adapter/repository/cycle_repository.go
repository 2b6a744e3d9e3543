package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// CycleRepository handles queen cycle data operations
type CycleRepository struct {
	db *gorm.DB
}

// NewCycleRepository creates a new cycle repository
func NewCycleRepository(db *gorm.DB) *CycleRepository {
	return &CycleRepository{db: db}
}

// FindActiveByHive retrieves the hive's active cycle, or (nil, nil) when the
// hive has no active cycle. Missing cycles are expected between rotations.
func (r *CycleRepository) FindActiveByHive(ctx context.Context, hiveID uuid.UUID) (*entities.Cycle, error) {
	var cycle entities.Cycle
	if err := r.db.WithContext(ctx).
		Where("hive_id = ? AND status = ?", hiveID, entities.CycleStatusActive).
		Order("started_on DESC").
		First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cycle, nil
}
