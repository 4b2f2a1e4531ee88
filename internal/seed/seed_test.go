package seed

import (
	"context"
	"testing"

	"taskbank/internal/model"
	"taskbank/internal/repository"
)

func TestRun(t *testing.T) {
	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	ctx := context.Background()

	if err := Run(ctx, db); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Seeding an already-populated store is a no-op.
	if err := Run(ctx, db); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	var users int64
	if err := db.Model(&model.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 2 {
		t.Errorf("users = %d, want 2", users)
	}

	tasks, err := repository.NewTaskRepository(db).ListBySpace(ctx, "s1")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("tasks = %d, want 3", len(tasks))
	}
	for _, task := range tasks {
		if want := task.ComputeStatus(); task.Status != want {
			t.Errorf("task %s: status %q, derived %q", task.ID, task.Status, want)
		}
	}

	space, err := repository.NewSpaceRepository(db).GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("load space: %v", err)
	}
	if len(space.Members) != 2 {
		t.Errorf("members = %d, want 2", len(space.Members))
	}
	if space.PenaltyBank.StringFixed(2) != "45.50" {
		t.Errorf("bank = %s, want 45.50", space.PenaltyBank.StringFixed(2))
	}
}
