package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lwhela12/the-hive-api/internal/domain/entities"
)

// MemberRepository handles read-only roster lookups
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// ListByHive retrieves the hive's roster
func (r *MemberRepository) ListByHive(ctx context.Context, hiveID uuid.UUID) ([]entities.Member, error) {
	var members []entities.Member
	if err := r.db.WithContext(ctx).
		Where("hive_id = ?", hiveID).
		Order("display_name ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FindByID retrieves a member by id
func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Member, error) {
	var member entities.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}
