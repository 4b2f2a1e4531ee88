package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taskbank/internal/ai"
	"taskbank/internal/currency"
	"taskbank/internal/model"
	"taskbank/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	SpaceID         string
	CreatorID       string
	Title           string
	Description     string
	CategoryID      string
	Worth           decimal.Decimal
	Currency        string // defaults to the space currency
	DueDate         *time.Time
	DueTime         string // HH:MM, defaults to 23:59
	Recurrence      string
	IsCollaborative bool
	Stages          []string
	Summary         string
	SuggestWorth    bool // ask the evaluator for worth/summary
}

// WorthEvaluator suggests a penalty worth and summary for a task.
// Implementations must be safe to fail; the engine always falls back.
type WorthEvaluator interface {
	EvaluateWorth(ctx context.Context, title, description, currencyCode string) (ai.Evaluation, error)
}

// TaskService wraps task-related business logic: creation, completion
// toggling with recurrence, and stage toggling.
type TaskService struct {
	taskRepo  *repository.TaskRepository
	spaceRepo *repository.SpaceRepository
	evaluator WorthEvaluator
}

func NewTaskService(taskRepo *repository.TaskRepository, spaceRepo *repository.SpaceRepository, evaluator WorthEvaluator) *TaskService {
	return &TaskService{taskRepo: taskRepo, spaceRepo: spaceRepo, evaluator: evaluator}
}

// Create validates the input, snapshots the assignee set from the space's
// current membership, and inserts a pending task. Worth and summary may be
// suggested by the evaluator; evaluator failure never fails creation.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.Worth.IsNegative() {
		return nil, ErrNegativeWorth
	}

	space, err := s.spaceRepo.GetByID(ctx, input.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("find space: %w", err)
	}

	currencyCode := input.Currency
	if currencyCode == "" {
		currencyCode = space.Currency
	}
	if !currency.Supported(currencyCode) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, currencyCode)
	}

	recurrence := input.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceNone
	}
	switch recurrence {
	case model.RecurrenceNone, model.RecurrenceDaily, model.RecurrenceWeekly, model.RecurrenceMonthly:
	default:
		return nil, fmt.Errorf("invalid recurrence %q", recurrence)
	}

	dueDate, err := resolveDueDate(input.DueDate, input.DueTime, time.Now())
	if err != nil {
		return nil, err
	}

	worth := input.Worth
	summary := strings.TrimSpace(input.Summary)
	if input.SuggestWorth && s.evaluator != nil {
		if eval, evalErr := s.evaluator.EvaluateWorth(ctx, title, input.Description, currencyCode); evalErr == nil {
			worth = eval.Worth
			if summary == "" {
				summary = eval.Summary
			}
		} else {
			log.Printf("worth evaluation unavailable, using defaults: %v", evalErr)
		}
	}
	if summary == "" {
		summary = ai.Summarize(title)
	}

	task := &model.Task{
		ID:              uuid.NewString(),
		SpaceID:         space.ID,
		CategoryID:      input.CategoryID,
		Title:           title,
		Description:     input.Description,
		Summary:         summary,
		Worth:           worth.Round(2),
		Currency:        currencyCode,
		DueDate:         dueDate,
		Recurrence:      recurrence,
		IsCollaborative: input.IsCollaborative,
		CreatedBy:       input.CreatorID,
	}

	// Assignee snapshot: later membership changes never alter it.
	if input.IsCollaborative {
		for _, id := range space.MemberIDs() {
			task.Assignees = append(task.Assignees, model.TaskAssignee{TaskID: task.ID, UserID: id})
		}
	} else {
		task.Assignees = []model.TaskAssignee{{TaskID: task.ID, UserID: input.CreatorID}}
	}

	for i, stageTitle := range input.Stages {
		trimmed := strings.TrimSpace(stageTitle)
		if trimmed == "" {
			continue
		}
		task.Stages = append(task.Stages, model.TaskStage{
			ID:       uuid.NewString(),
			TaskID:   task.ID,
			Title:    trimmed,
			Position: i,
		})
	}

	task.Status = task.ComputeStatus()

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleCompletion flips the user's membership in the task's completion set
// and recomputes the status. When a recurring task transitions from pending
// to completed, exactly one successor is created in the same transaction;
// toggling back off never removes it. The successor, if any, is returned
// alongside the updated task.
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID, userID string) (*model.Task, *model.Task, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("user id is required")
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("find task: %w", err)
	}

	if task.HasCompleted(userID) {
		kept := task.Completions[:0]
		for _, c := range task.Completions {
			if c.UserID != userID {
				kept = append(kept, c)
			}
		}
		task.Completions = kept
	} else {
		task.Completions = append(task.Completions, model.TaskCompletion{
			TaskID:      task.ID,
			UserID:      userID,
			CompletedAt: time.Now(),
		})
	}

	prevStatus := task.Status
	task.Status = task.ComputeStatus()

	var successor *model.Task
	if prevStatus == model.StatusPending && task.Status == model.StatusCompleted && task.Recurrence != model.RecurrenceNone {
		successor = nextOccurrence(task)
	}

	if err := s.taskRepo.SaveToggle(ctx, task, successor); err != nil {
		return nil, nil, err
	}
	return task, successor, nil
}

// ToggleStage flips the completion flag of exactly one stage. Stage progress
// is informational and never feeds into the task's own status.
func (s *TaskService) ToggleStage(ctx context.Context, taskID, stageID string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}

	for i := range task.Stages {
		if task.Stages[i].ID == stageID {
			task.Stages[i].IsCompleted = !task.Stages[i].IsCompleted
			if err := s.taskRepo.SaveStage(ctx, &task.Stages[i]); err != nil {
				return nil, err
			}
			return task, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStageNotFound, stageID)
}

func (s *TaskService) Get(ctx context.Context, taskID string) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, taskID)
}

func (s *TaskService) ListBySpace(ctx context.Context, spaceID string) ([]model.Task, error) {
	return s.taskRepo.ListBySpace(ctx, spaceID)
}

// Ledger lists a space's completed tasks, newest first.
func (s *TaskService) Ledger(ctx context.Context, spaceID string) ([]model.Task, error) {
	return s.taskRepo.ListCompletedBySpace(ctx, spaceID)
}

// nextOccurrence builds the recurrence successor: a fresh pending task with
// the due date advanced by the period, an empty completion set, and all
// stages reset to incomplete.
func nextOccurrence(task *model.Task) *model.Task {
	next := &model.Task{
		ID:              uuid.NewString(),
		SpaceID:         task.SpaceID,
		CategoryID:      task.CategoryID,
		Title:           task.Title,
		Description:     task.Description,
		Summary:         task.Summary,
		Worth:           task.Worth,
		Currency:        task.Currency,
		DueDate:         advanceDueDate(task.DueDate, task.Recurrence),
		Recurrence:      task.Recurrence,
		IsCollaborative: task.IsCollaborative,
		Status:          model.StatusPending,
		CreatedBy:       task.CreatedBy,
	}
	for _, a := range task.Assignees {
		next.Assignees = append(next.Assignees, model.TaskAssignee{TaskID: next.ID, UserID: a.UserID})
	}
	for _, st := range task.Stages {
		next.Stages = append(next.Stages, model.TaskStage{
			ID:       uuid.NewString(),
			TaskID:   next.ID,
			Title:    st.Title,
			Position: st.Position,
		})
	}
	return next
}

// advanceDueDate moves the due date forward by one recurrence period.
// Monthly keeps the day-of-month, clamped to the length of the target month
// (Jan 31 -> Feb 28/29), and preserves the time of day.
func advanceDueDate(due time.Time, recurrence string) time.Time {
	switch recurrence {
	case model.RecurrenceDaily:
		return due.AddDate(0, 0, 1)
	case model.RecurrenceWeekly:
		return due.AddDate(0, 0, 7)
	case model.RecurrenceMonthly:
		year, month, day := due.Date()
		firstOfNext := time.Date(year, month, 1, 0, 0, 0, 0, due.Location()).AddDate(0, 1, 0)
		if max := daysInMonth(firstOfNext.Month(), firstOfNext.Year()); day > max {
			day = max
		}
		hour, minute, sec := due.Clock()
		return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, hour, minute, sec, due.Nanosecond(), due.Location())
	default:
		return due
	}
}

func daysInMonth(month time.Month, year int) int {
	// Move to next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstOfNextMonth := firstOfMonth.AddDate(0, 1, 0)
	lastOfMonth := firstOfNextMonth.AddDate(0, 0, -1)
	return lastOfMonth.Day()
}

// resolveDueDate combines the chosen date (defaulting to today) with the
// chosen time (defaulting to end of day, 23:59).
func resolveDueDate(date *time.Time, timeStr string, now time.Time) (time.Time, error) {
	day := now
	if date != nil {
		day = *date
	}

	hour, minute := 23, 59
	if timeStr != "" {
		parts := strings.Split(timeStr, ":")
		if len(parts) != 2 {
			return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
		}
		h, err := strconv.Atoi(parts[0])
		if err != nil || h < 0 || h > 23 {
			return time.Time{}, fmt.Errorf("invalid hour in %q", timeStr)
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil || m < 0 || m > 59 {
			return time.Time{}, fmt.Errorf("invalid minute in %q", timeStr)
		}
		hour, minute = h, m
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}
