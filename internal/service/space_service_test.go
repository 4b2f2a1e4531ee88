package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"taskbank/internal/currency"
)

func TestAddMember_NormalizedEmailDedup(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()
	u1 := e.createUser(t, "u1", "Alex Doe", "alex@example.com")
	u2 := e.createUser(t, "u2", "Jordan Smith", "jordan@example.com")
	space := e.createSpace(t, "Roommates 101", u1, u2)

	space, err := e.spaces.AddMember(ctx, space.ID, "  JORDAN@EXAMPLE.com ")
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if len(space.Members) != 2 {
		t.Errorf("duplicate member added: %v", space.MemberIDs())
	}
}

func TestAddMember_SynthesizesUnknownUser(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()
	u1 := e.createUser(t, "u1", "Alex Doe", "alex@example.com")
	space := e.createSpace(t, "Roommates 101", u1)

	space, err := e.spaces.AddMember(ctx, space.ID, "casey@example.com")
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if len(space.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(space.Members))
	}

	// Append order preserved: the new member comes last.
	added := space.Members[1].User
	if added.Email != "casey@example.com" {
		t.Errorf("unexpected member order: %v", space.MemberIDs())
	}
	if added.Name != "casey" {
		t.Errorf("synthesized name = %q, want local part", added.Name)
	}
	if added.ID == "" {
		t.Error("synthesized user has no id")
	}
}

func TestRemoveMember_KeepsTaskReferences(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()
	u1 := e.createUser(t, "u1", "Alex Doe", "alex@example.com")
	u2 := e.createUser(t, "u2", "Jordan Smith", "jordan@example.com")
	space := e.createSpace(t, "Roommates 101", u1, u2)

	task, err := e.tasks.Create(ctx, TaskInput{
		SpaceID:         space.ID,
		CreatorID:       u1.ID,
		Title:           "Clean the kitchen",
		IsCollaborative: true,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, _, err := e.tasks.ToggleCompletion(ctx, task.ID, u2.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	space, err = e.spaces.RemoveMember(ctx, space.ID, u2.ID)
	if err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	if len(space.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(space.Members))
	}

	// Historical task records keep the orphaned id in both sets.
	reloaded, err := e.tasks.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if got := reloaded.AssigneeIDs(); len(got) != 2 {
		t.Errorf("assignees rewritten on removal: %v", got)
	}
	if !reloaded.HasCompleted(u2.ID) {
		t.Error("completion record dropped on removal")
	}
}

func TestCashOutBank_ZeroesAndIsIdempotent(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()
	u1 := e.createUser(t, "u1", "Alex Doe", "alex@example.com")
	space := e.createSpace(t, "Roommates 101", u1)

	space.PenaltyBank = decimal.RequireFromString("45.50")
	if err := e.spaceRepo.Save(ctx, space); err != nil {
		t.Fatalf("seed bank: %v", err)
	}

	space, err := e.spaces.CashOutBank(ctx, space.ID)
	if err != nil {
		t.Fatalf("CashOutBank() error = %v", err)
	}
	if !space.PenaltyBank.IsZero() {
		t.Errorf("bank = %s, want 0", space.PenaltyBank)
	}

	space, err = e.spaces.CashOutBank(ctx, space.ID)
	if err != nil {
		t.Fatalf("second CashOutBank() error = %v", err)
	}
	if !space.PenaltyBank.IsZero() {
		t.Errorf("bank after second cash-out = %s, want 0", space.PenaltyBank)
	}
}

func TestConvertBankCurrency_RoundTripWithinTolerance(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()
	u1 := e.createUser(t, "u1", "Alex Doe", "alex@example.com")
	space := e.createSpace(t, "Roommates 101", u1)

	original := decimal.RequireFromString("45.50")
	space.PenaltyBank = original
	if err := e.spaceRepo.Save(ctx, space); err != nil {
		t.Fatalf("seed bank: %v", err)
	}

	space, err := e.spaces.ConvertBankCurrency(ctx, space.ID, currency.GBP)
	if err != nil {
		t.Fatalf("convert to GBP: %v", err)
	}
	if space.Currency != currency.GBP {
		t.Errorf("currency = %q, want GBP", space.Currency)
	}

	space, err = e.spaces.ConvertBankCurrency(ctx, space.ID, currency.USD)
	if err != nil {
		t.Fatalf("convert back to USD: %v", err)
	}

	drift := space.PenaltyBank.Sub(original).Abs()
	if drift.GreaterThan(decimal.RequireFromString("0.01")) {
		t.Errorf("round trip drifted by %s, want <= 0.01", drift)
	}
}

func TestConvertBankCurrency_UnknownTarget(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()
	u1 := e.createUser(t, "u1", "Alex Doe", "alex@example.com")
	space := e.createSpace(t, "Roommates 101", u1)

	if _, err := e.spaces.ConvertBankCurrency(ctx, space.ID, "XXX"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}

	// State untouched on rejection.
	reloaded, err := e.spaces.Get(ctx, space.ID)
	if err != nil {
		t.Fatalf("reload space: %v", err)
	}
	if reloaded.Currency != currency.USD {
		t.Errorf("currency changed to %q on failed conversion", reloaded.Currency)
	}
}

func TestUpdateName(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()
	u1 := e.createUser(t, "u1", "Alex Doe", "alex@example.com")
	space := e.createSpace(t, "Roommates 101", u1)

	space, err := e.spaces.UpdateName(ctx, space.ID, "Flat 4B")
	if err != nil {
		t.Fatalf("UpdateName() error = %v", err)
	}
	if space.Name != "Flat 4B" {
		t.Errorf("name = %q, want Flat 4B", space.Name)
	}

	if _, err := e.spaces.UpdateName(ctx, space.ID, "  "); !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}
