package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskbank/internal/currency"
	"taskbank/internal/model"
	"taskbank/internal/repository"
)

// SpaceService wraps space-level business logic: membership, renames and
// the penalty bank operations.
type SpaceService struct {
	spaceRepo *repository.SpaceRepository
	userRepo  *repository.UserRepository
}

func NewSpaceService(spaceRepo *repository.SpaceRepository, userRepo *repository.UserRepository) *SpaceService {
	return &SpaceService{spaceRepo: spaceRepo, userRepo: userRepo}
}

// Create starts a new space with a zero penalty bank and the founder as its
// first member.
func (s *SpaceService) Create(ctx context.Context, name, currencyCode, founderID string) (*model.TaskSpace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if !currency.Supported(currencyCode) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, currencyCode)
	}
	if _, err := s.userRepo.GetByID(ctx, founderID); err != nil {
		return nil, fmt.Errorf("find founder: %w", err)
	}

	space := &model.TaskSpace{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		PenaltyBank: decimal.Zero,
		Currency:    currencyCode,
	}
	if err := s.spaceRepo.Create(ctx, space); err != nil {
		return nil, err
	}
	if err := s.spaceRepo.AddMember(ctx, space.ID, founderID); err != nil {
		return nil, err
	}
	return s.spaceRepo.GetByID(ctx, space.ID)
}

func (s *SpaceService) Get(ctx context.Context, spaceID string) (*model.TaskSpace, error) {
	return s.spaceRepo.GetByID(ctx, spaceID)
}

func (s *SpaceService) List(ctx context.Context) ([]model.TaskSpace, error) {
	return s.spaceRepo.ListAll(ctx)
}

// UpdateName renames a space.
func (s *SpaceService) UpdateName(ctx context.Context, spaceID, name string) (*model.TaskSpace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("find space: %w", err)
	}
	space.Name = strings.TrimSpace(name)
	if err := s.spaceRepo.Save(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

// AddMember adds the user with the given email to the space. The email is
// compared trimmed and lowercased; if a member with that address already
// exists the call is a no-op. Unknown addresses get a fresh User record.
func (s *SpaceService) AddMember(ctx context.Context, spaceID, email string) (*model.TaskSpace, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, ErrEmailRequired
	}

	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("find space: %w", err)
	}

	for _, m := range space.Members {
		if strings.ToLower(strings.TrimSpace(m.User.Email)) == normalized {
			return space, nil
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, normalized)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{
			ID:     uuid.NewString(),
			Name:   strings.SplitN(normalized, "@", 2)[0],
			Email:  strings.TrimSpace(email),
			Avatar: fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", strings.SplitN(normalized, "@", 2)[0]),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.spaceRepo.AddMember(ctx, space.ID, user.ID); err != nil {
		return nil, err
	}
	return s.spaceRepo.GetByID(ctx, space.ID)
}

// RemoveMember drops the membership only. Tasks that reference the removed
// user keep that id in their assignee and completion sets; historical
// records are never rewritten.
func (s *SpaceService) RemoveMember(ctx context.Context, spaceID, userID string) (*model.TaskSpace, error) {
	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("find space: %w", err)
	}
	if err := s.spaceRepo.RemoveMember(ctx, space.ID, userID); err != nil {
		return nil, err
	}
	return s.spaceRepo.GetByID(ctx, space.ID)
}

// CashOutBank clears the penalty bank unconditionally. The cleared amount is
// logged but not recorded anywhere else; calling twice is the same as once.
func (s *SpaceService) CashOutBank(ctx context.Context, spaceID string) (*model.TaskSpace, error) {
	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("find space: %w", err)
	}
	if !space.PenaltyBank.IsZero() {
		log.Printf("space %s: cashing out %s %s", space.ID, space.PenaltyBank.StringFixed(2), space.Currency)
	}
	space.PenaltyBank = decimal.Zero
	if err := s.spaceRepo.Save(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

// ConvertBankCurrency re-denominates the stored balance at the current table
// rate and switches the space currency. This converts the point-in-time
// balance only; round-tripping may drift by up to a cent.
func (s *SpaceService) ConvertBankCurrency(ctx context.Context, spaceID, target string) (*model.TaskSpace, error) {
	if !currency.Supported(target) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, target)
	}
	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("find space: %w", err)
	}

	converted, err := currency.Convert(space.PenaltyBank, space.Currency, target)
	if err != nil {
		return nil, err
	}
	space.PenaltyBank = converted
	space.Currency = target
	if err := s.spaceRepo.Save(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}
