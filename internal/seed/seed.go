// Package seed loads the demo dataset into an empty store: two users sharing
// one space, a handful of categories, and a few tasks in various states.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskbank/internal/currency"
	"taskbank/internal/model"
)

// Run populates the store unless it already holds users.
func Run(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	endOfDay := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, t.Location())
	}

	users := []model.User{
		{ID: "u1", Name: "Alex Doe", Email: "alex@example.com", Avatar: "https://picsum.photos/100/100?random=1"},
		{ID: "u2", Name: "Jordan Smith", Email: "jordan@example.com", Avatar: "https://picsum.photos/100/100?random=2"},
	}

	categories := []model.Category{
		{ID: "c1", Name: "Household", Color: "bg-blue-500", Icon: "Home"},
		{ID: "c2", Name: "Work", Color: "bg-emerald-500", Icon: "Briefcase"},
		{ID: "c3", Name: "Health", Color: "bg-rose-500", Icon: "Heart"},
		{ID: "c4", Name: "Social", Color: "bg-purple-500", Icon: "Users"},
	}

	space := model.TaskSpace{
		ID:          "s1",
		Name:        "Roommates 101",
		PenaltyBank: decimal.RequireFromString("45.50"),
		Currency:    currency.USD,
	}

	members := []model.SpaceMember{
		{SpaceID: "s1", UserID: "u1"},
		{SpaceID: "s1", UserID: "u2"},
	}

	tasks := []model.Task{
		{
			ID:              "t1",
			SpaceID:         "s1",
			CategoryID:      "c1",
			Title:           "Clean the kitchen",
			Description:     "Scrub the counters and mop the floor.",
			Summary:         "Kitchen Clean",
			Worth:           decimal.NewFromInt(15),
			Currency:        currency.USD,
			DueDate:         endOfDay(now),
			Recurrence:      model.RecurrenceWeekly,
			IsCollaborative: true,
			CreatedBy:       "u1",
			Assignees: []model.TaskAssignee{
				{TaskID: "t1", UserID: "u1"},
				{TaskID: "t1", UserID: "u2"},
			},
			// Waiting for u2.
			Completions: []model.TaskCompletion{
				{TaskID: "t1", UserID: "u1", CompletedAt: now},
			},
			Stages: []model.TaskStage{
				{ID: "t1-s1", TaskID: "t1", Title: "Wipe counters", Position: 0, IsCompleted: true},
				{ID: "t1-s2", TaskID: "t1", Title: "Mop floor", Position: 1},
				{ID: "t1-s3", TaskID: "t1", Title: "Empty trash", Position: 2},
			},
		},
		{
			ID:          "t2",
			SpaceID:     "s1",
			CategoryID:  "c3",
			Title:       "Morning Jog",
			Description: "Run 5km before 8am.",
			Summary:     "Morning Jog",
			Worth:       decimal.NewFromInt(10),
			Currency:    currency.USD,
			DueDate:     endOfDay(now.AddDate(0, 0, 1)),
			Recurrence:  model.RecurrenceDaily,
			CreatedBy:   "u1",
			Assignees:   []model.TaskAssignee{{TaskID: "t2", UserID: "u1"}},
		},
		{
			ID:          "t3",
			SpaceID:     "s1",
			CategoryID:  "c1",
			Title:       "Pay Electricity Bill",
			Description: "Online payment via portal.",
			Summary:     "Pay Electric",
			Worth:       decimal.NewFromInt(50),
			Currency:    currency.USD,
			DueDate:     endOfDay(now.AddDate(0, 0, -2)),
			Recurrence:  model.RecurrenceMonthly,
			CreatedBy:   "u2",
			Assignees:   []model.TaskAssignee{{TaskID: "t3", UserID: "u2"}},
			Completions: []model.TaskCompletion{
				{TaskID: "t3", UserID: "u2", CompletedAt: now.AddDate(0, 0, -2)},
			},
		},
	}
	for i := range tasks {
		tasks[i].Status = tasks[i].ComputeStatus()
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		if err := tx.Create(&space).Error; err != nil {
			return fmt.Errorf("seed space: %w", err)
		}
		if err := tx.Create(&members).Error; err != nil {
			return fmt.Errorf("seed members: %w", err)
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return fmt.Errorf("seed tasks: %w", err)
		}
		return nil
	})
}
