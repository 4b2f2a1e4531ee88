package service

import "errors"

// Validation and lookup failures the engine reports before touching state.
// Reference lookups that miss surface gorm.ErrRecordNotFound from the
// repositories; these sentinels cover everything else callers need to
// distinguish.
var (
	ErrTitleRequired   = errors.New("title is required")
	ErrNegativeWorth   = errors.New("worth must not be negative")
	ErrStageNotFound   = errors.New("stage not found")
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrNameRequired    = errors.New("name is required")
	ErrEmailRequired   = errors.New("email is required")
)
