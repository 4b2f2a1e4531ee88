package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurrence policies: a new task instance is spawned when the current one
// completes, with the due date advanced by the period.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Task statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task is the central entity: an obligation with a monetary penalty worth.
// Assignees is the snapshot taken at creation time; Completions records who
// has individually marked the task done. Status is stored for querying but
// is only ever written as ComputeStatus(assignees, completions).
type Task struct {
	ID              string `gorm:"primaryKey"`
	SpaceID         string `gorm:"index"`
	CategoryID      string // may reference a missing category
	Title           string
	Description     string
	Summary         string
	Worth           decimal.Decimal `gorm:"type:decimal(15,2)"`
	Currency        string
	DueDate         time.Time
	Recurrence      string `gorm:"default:none"`
	IsCollaborative bool   `gorm:"default:false"`
	Status          string `gorm:"index;default:pending"`
	CreatedBy       string
	PenaltyApplied  bool `gorm:"default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Stages      []TaskStage      `gorm:"foreignKey:TaskID"`
	Assignees   []TaskAssignee   `gorm:"foreignKey:TaskID"`
	Completions []TaskCompletion `gorm:"foreignKey:TaskID"`
}

// TaskStage is an ordered informational sub-step of a task. Stage completion
// is tracked independently of the task's own status.
type TaskStage struct {
	ID          string `gorm:"primaryKey"`
	TaskID      string `gorm:"index"`
	Title       string
	Position    int
	IsCompleted bool `gorm:"default:false"`
}

// TaskAssignee records a user the task was assigned to at creation time.
type TaskAssignee struct {
	TaskID string `gorm:"primaryKey"`
	UserID string `gorm:"primaryKey"`
}

// TaskCompletion records a user who has marked the task done.
type TaskCompletion struct {
	TaskID      string `gorm:"primaryKey"`
	UserID      string `gorm:"primaryKey"`
	CompletedAt time.Time
}

// AssigneeIDs returns the assignee user ids.
func (t *Task) AssigneeIDs() []string {
	ids := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		ids = append(ids, a.UserID)
	}
	return ids
}

// CompletedBy returns the ids of users who marked the task done.
func (t *Task) CompletedBy() []string {
	ids := make([]string, 0, len(t.Completions))
	for _, c := range t.Completions {
		ids = append(ids, c.UserID)
	}
	return ids
}

// HasCompleted reports whether the user has marked the task done.
func (t *Task) HasCompleted(userID string) bool {
	for _, c := range t.Completions {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// ComputeStatus derives the task status from its assignee and completion
// sets. A collaborative task completes only when every assignee has marked
// it done; an individual task completes as soon as anyone has.
func (t *Task) ComputeStatus() string {
	if t.IsCollaborative {
		for _, a := range t.Assignees {
			if !t.HasCompleted(a.UserID) {
				return StatusPending
			}
		}
		return StatusCompleted
	}
	if len(t.Completions) > 0 {
		return StatusCompleted
	}
	return StatusPending
}
