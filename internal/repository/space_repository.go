package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskbank/internal/model"
)

// SpaceRepository handles CRUD for task spaces and their memberships.
type SpaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

func (r *SpaceRepository) Create(ctx context.Context, space *model.TaskSpace) error {
	if err := r.db.WithContext(ctx).Create(space).Error; err != nil {
		return fmt.Errorf("create space: %w", err)
	}
	return nil
}

// GetByID loads a space with its members in join order.
func (r *SpaceRepository) GetByID(ctx context.Context, id string) (*model.TaskSpace, error) {
	var space model.TaskSpace
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Members.User").
		First(&space, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *SpaceRepository) ListAll(ctx context.Context) ([]model.TaskSpace, error) {
	var spaces []model.TaskSpace
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Members.User").
		Order("created_at ASC").
		Find(&spaces).Error
	if err != nil {
		return nil, err
	}
	return spaces, nil
}

func (r *SpaceRepository) Save(ctx context.Context, space *model.TaskSpace) error {
	if err := r.db.WithContext(ctx).Omit("Members").Save(space).Error; err != nil {
		return fmt.Errorf("save space: %w", err)
	}
	return nil
}

// AddMember appends a membership row; join order is the append order.
func (r *SpaceRepository) AddMember(ctx context.Context, spaceID, userID string) error {
	member := model.SpaceMember{SpaceID: spaceID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&member).Error; err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// RemoveMember deletes the membership row only; the user record and any task
// references to the user are left untouched.
func (r *SpaceRepository) RemoveMember(ctx context.Context, spaceID, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("space_id = ? AND user_id = ?", spaceID, userID).
		Delete(&model.SpaceMember{}).Error; err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

// ApplyPenalty adds amount to the space's bank and marks the task's penalty
// as applied in one transaction, so a task can never be charged twice.
func (r *SpaceRepository) ApplyPenalty(ctx context.Context, space *model.TaskSpace, task *model.Task, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		space.PenaltyBank = space.PenaltyBank.Add(amount).Round(2)
		if err := tx.Omit("Members").Save(space).Error; err != nil {
			return fmt.Errorf("save space: %w", err)
		}
		if err := tx.Model(&model.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{"penalty_applied": true, "updated_at": time.Now()}).Error; err != nil {
			return fmt.Errorf("mark penalty applied: %w", err)
		}
		task.PenaltyApplied = true
		return nil
	})
}
