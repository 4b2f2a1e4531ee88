package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskbank/internal/model"
	"taskbank/internal/repository"
)

// FallbackCategory is what a dangling category reference resolves to, so the
// view layer always has something displayable.
var FallbackCategory = model.Category{
	ID:    "",
	Name:  "General",
	Color: "bg-neutral-500",
	Icon:  "Tag",
}

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Add creates a category. Categories are never deleted in current scope.
func (s *CategoryService) Add(ctx context.Context, name, color, icon string) (*model.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	category := &model.Category{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Color: color,
		Icon:  icon,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListAll(ctx)
}

// Resolve returns the category for a task's reference, degrading to the
// fallback display category when the reference dangles.
func (s *CategoryService) Resolve(ctx context.Context, id string) model.Category {
	if id == "" {
		return FallbackCategory
	}
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return FallbackCategory
	}
	return *category
}
