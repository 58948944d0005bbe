package domain

import (
	"fmt"
	"time"
)

// MaxHistoryEntries caps the number of retained history entries.
const MaxHistoryEntries = 50

// HistoryEntry is a recorded calculation result.
type HistoryEntry struct {
	ID             string
	CalculatorName string
	Result         string
	Timestamp      time.Time
}

// Validate validates a history entry before it is stored.
func (e *HistoryEntry) Validate() error {
	if err := ValidateCalculatorName(e.CalculatorName); err != nil {
		return err
	}

	if e.Result == "" {
		return fmt.Errorf("%w: result cannot be empty", ErrInvalidInput)
	}

	if len(e.Result) > MaxResultLength {
		return fmt.Errorf("%w: result exceeds %d characters", ErrInvalidInput, MaxResultLength)
	}

	return nil
}

// PrependHistory returns entries with entry placed first and the oldest
// entries dropped beyond MaxHistoryEntries.
func PrependHistory(entries []*HistoryEntry, entry *HistoryEntry) []*HistoryEntry {
	n := len(entries) + 1
	if n > MaxHistoryEntries {
		n = MaxHistoryEntries
	}

	out := make([]*HistoryEntry, 0, n)
	out = append(out, entry)
	out = append(out, entries[:n-1]...)
	return out
}
