package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskbank/internal/model"
)

// TaskRepository handles CRUD for tasks, their stages and their
// assignee/completion sets.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task together with its stages, assignees and
// completions in one transaction.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindByID loads a task with stages in position order and both user sets.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Assignees").
		Preload("Completions").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListBySpace(ctx context.Context, spaceID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Assignees").
		Preload("Completions").
		Where("space_id = ?", spaceID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListCompletedBySpace backs the read-only ledger of finished tasks.
func (r *TaskRepository) ListCompletedBySpace(ctx context.Context, spaceID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees").
		Preload("Completions").
		Where("space_id = ? AND status = ?", spaceID, model.StatusCompleted).
		Order("updated_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOverduePending returns pending tasks past due that have not yet been
// charged to their space's penalty bank.
func (r *TaskRepository) ListOverduePending(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status = ? AND penalty_applied = ? AND due_date < ?", model.StatusPending, false, now).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveToggle persists a completion-set change: the task's completion rows are
// replaced with the set on the struct, the status field is saved, and the
// optional recurrence successor is inserted — all in one transaction, so the
// updated task and its successor become visible together.
func (r *TaskRepository) SaveToggle(ctx context.Context, task *model.Task, successor *model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskCompletion{}).Error; err != nil {
			return fmt.Errorf("clear completions: %w", err)
		}
		if len(task.Completions) > 0 {
			if err := tx.Create(&task.Completions).Error; err != nil {
				return fmt.Errorf("save completions: %w", err)
			}
		}
		if err := tx.Model(&model.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{"status": task.Status, "updated_at": time.Now()}).Error; err != nil {
			return fmt.Errorf("save status: %w", err)
		}
		if successor != nil {
			if err := tx.Create(successor).Error; err != nil {
				return fmt.Errorf("create successor: %w", err)
			}
		}
		return nil
	})
}

// SaveStage persists a single stage flip.
func (r *TaskRepository) SaveStage(ctx context.Context, stage *model.TaskStage) error {
	if err := r.db.WithContext(ctx).Save(stage).Error; err != nil {
		return fmt.Errorf("save stage: %w", err)
	}
	return nil
}
