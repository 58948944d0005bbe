package domain

import "errors"

var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input")

	// Catalog errors
	ErrCalculatorNotFound = errors.New("calculator not found")

	// Storage errors
	ErrHistoryUnavailable  = errors.New("history store unavailable")
	ErrPreferencesNotFound = errors.New("preferences not found")
)
