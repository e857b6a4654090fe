package types

import "errors"

// Domain value errors
var (
	// ErrInvalidPeriod is returned when a period is not a valid DD/MM/YYYY date
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidOrigin is returned for an unknown evaluation workflow
	ErrInvalidOrigin = errors.New("invalid origin")

	// ErrInvalidCategory is returned for a category outside the fixed set
	ErrInvalidCategory = errors.New("invalid category")
)
