package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// HighlightRepository handles highlight data operations
type HighlightRepository struct {
	db *gorm.DB
}

// NewHighlightRepository creates a new highlight repository
func NewHighlightRepository(db *gorm.DB) *HighlightRepository {
	return &HighlightRepository{db: db}
}

// ReplaceForMeeting deletes the meeting's existing highlights and inserts the
// new set in one transaction. Only this meeting's contribution is removed,
// never the whole cycle's.
func (r *HighlightRepository) ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, highlights []*entities.Highlight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.Highlight{}).Error; err != nil {
			return err
		}
		if len(highlights) == 0 {
			return nil
		}
		return tx.Create(highlights).Error
	})
}

// ListByCycle retrieves a cycle's highlights in display order
func (r *HighlightRepository) ListByCycle(ctx context.Context, cycleID uuid.UUID) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	if err := r.db.WithContext(ctx).
		Where("cycle_id = ?", cycleID).
		Order("display_order ASC").
		Find(&highlights).Error; err != nil {
		return nil, err
	}
	return highlights, nil
}
