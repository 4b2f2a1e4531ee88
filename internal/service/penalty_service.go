package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskbank/internal/currency"
	"taskbank/internal/repository"
)

// PenaltyService charges unmet obligations to their space's penalty bank.
type PenaltyService struct {
	taskRepo  *repository.TaskRepository
	spaceRepo *repository.SpaceRepository
}

func NewPenaltyService(taskRepo *repository.TaskRepository, spaceRepo *repository.SpaceRepository) *PenaltyService {
	return &PenaltyService{taskRepo: taskRepo, spaceRepo: spaceRepo}
}

// AccrueOverdue sweeps pending tasks past their due date and adds each
// task's worth, converted to the space currency, to the space's bank.
// Every task is charged at most once, even across repeated sweeps.
// Returns the number of tasks charged.
func (s *PenaltyService) AccrueOverdue(ctx context.Context, now time.Time) (int, error) {
	tasks, err := s.taskRepo.ListOverduePending(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list overdue: %w", err)
	}

	charged := 0
	for i := range tasks {
		task := &tasks[i]
		space, err := s.spaceRepo.GetByID(ctx, task.SpaceID)
		if err != nil {
			return charged, fmt.Errorf("find space for task %s: %w", task.ID, err)
		}

		amount, err := currency.Convert(task.Worth, task.Currency, space.Currency)
		if err != nil {
			// A task carrying an unknown currency is skipped, not fatal.
			log.Printf("task %s: skipping penalty: %v", task.ID, err)
			continue
		}

		if err := s.spaceRepo.ApplyPenalty(ctx, space, task, amount); err != nil {
			return charged, err
		}
		charged++
	}
	return charged, nil
}
