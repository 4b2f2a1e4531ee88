package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"taskbank/internal/currency"
	"taskbank/internal/model"
	"taskbank/internal/repository"
)

// engine bundles a fresh in-memory store with the services under test.
type engine struct {
	db         *gorm.DB
	users      *repository.UserRepository
	taskRepo   *repository.TaskRepository
	spaceRepo  *repository.SpaceRepository
	tasks      *TaskService
	spaces     *SpaceService
	categories *CategoryService
	penalties  *PenaltyService
}

func newEngine(t *testing.T, evaluator WorthEvaluator) *engine {
	t.Helper()

	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return &engine{
		db:         db,
		users:      userRepo,
		taskRepo:   taskRepo,
		spaceRepo:  spaceRepo,
		tasks:      NewTaskService(taskRepo, spaceRepo, evaluator),
		spaces:     NewSpaceService(spaceRepo, userRepo),
		categories: NewCategoryService(categoryRepo),
		penalties:  NewPenaltyService(taskRepo, spaceRepo),
	}
}

func (e *engine) createUser(t *testing.T, id, name, email string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Name: name, Email: email}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// createSpace builds a space whose membership is the given users, first one
// as founder.
func (e *engine) createSpace(t *testing.T, name string, users ...*model.User) *model.TaskSpace {
	t.Helper()
	ctx := context.Background()

	space, err := e.spaces.Create(ctx, name, currency.USD, users[0].ID)
	if err != nil {
		t.Fatalf("create space: %v", err)
	}
	for _, u := range users[1:] {
		if space, err = e.spaces.AddMember(ctx, space.ID, u.Email); err != nil {
			t.Fatalf("add member %s: %v", u.Email, err)
		}
	}
	return space
}

// assertStatusInvariant checks that every task in the space carries exactly
// the status derived from its assignee and completion sets.
func (e *engine) assertStatusInvariant(t *testing.T, spaceID string) {
	t.Helper()
	tasks, err := e.taskRepo.ListBySpace(context.Background(), spaceID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	for _, task := range tasks {
		if want := task.ComputeStatus(); task.Status != want {
			t.Errorf("task %s: stored status %q, derived %q", task.ID, task.Status, want)
		}
	}
}
