package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxPrincipal         = "1000000000000" // 1 trillion
	MaxAnnualRatePercent = 100
	MaxTermMonths        = 1200 // 100 years
	MaxCalculatorName    = 64
	MaxResultLength      = 2048

	// MaxAmount bounds the magnitude of every money or percentage input.
	MaxAmount = MaxPrincipal
	// MaxDecimalPlaces bounds the fractional digits of every input.
	MaxDecimalPlaces = 18
)

// maxAmountDigits is the number of integer digits in MaxAmount.
const maxAmountDigits = len(MaxAmount)

var (
	maxPrincipal = decimal.RequireFromString(MaxPrincipal)
	maxAmount    = decimal.RequireFromString(MaxAmount)
	maxRate      = decimal.NewFromInt(MaxAnnualRatePercent)
)

// ValidateAmount rejects values whose magnitude exceeds MaxAmount or that
// carry more than MaxDecimalPlaces fractional digits. It only inspects the
// exponent and digit count before comparing, so inputs such as "1e20000000"
// are refused without being expanded.
func ValidateAmount(field string, amount decimal.Decimal) error {
	exp := int(amount.Exponent())
	if exp < -MaxDecimalPlaces {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidInput, field, MaxDecimalPlaces)
	}
	if exp > maxAmountDigits ||
		amount.Coefficient().BitLen() > 4*(maxAmountDigits+MaxDecimalPlaces) ||
		amount.NumDigits()+exp > maxAmountDigits ||
		amount.Abs().GreaterThan(maxAmount) {
		return fmt.Errorf("%w: %s exceeds %s", ErrInvalidInput, field, MaxAmount)
	}
	return nil
}

// ValidatePrincipal validates a loan principal.
func ValidatePrincipal(principal decimal.Decimal) error {
	if err := ValidateAmount("principal", principal); err != nil {
		return err
	}

	if !principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}

	if principal.GreaterThan(maxPrincipal) {
		return fmt.Errorf("%w: principal exceeds %s", ErrInvalidInput, MaxPrincipal)
	}

	return nil
}

// ValidateAnnualRate validates an annual interest rate expressed in percent.
func ValidateAnnualRate(rate decimal.Decimal) error {
	if err := ValidateAmount("annual rate", rate); err != nil {
		return err
	}

	if rate.IsNegative() {
		return fmt.Errorf("%w: annual rate must not be negative", ErrInvalidInput)
	}

	if rate.GreaterThan(maxRate) {
		return fmt.Errorf("%w: annual rate exceeds %d%%", ErrInvalidInput, MaxAnnualRatePercent)
	}

	return nil
}

// ValidateTermMonths validates a loan term.
func ValidateTermMonths(months int) error {
	if months < 1 {
		return fmt.Errorf("%w: term must be at least one month", ErrInvalidInput)
	}

	if months > MaxTermMonths {
		return fmt.Errorf("%w: term exceeds %d months", ErrInvalidInput, MaxTermMonths)
	}

	return nil
}

// ValidateNonNegative rejects negative amounts for the named field.
func ValidateNonNegative(field string, amount decimal.Decimal) error {
	if err := ValidateAmount(field, amount); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, field)
	}
	return nil
}

// ValidatePositive rejects zero and negative amounts for the named field.
func ValidatePositive(field string, amount decimal.Decimal) error {
	if err := ValidateAmount(field, amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, field)
	}
	return nil
}

// ValidateCalculatorName validates a calculator name used in history records.
func ValidateCalculatorName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: calculator name cannot be empty", ErrInvalidInput)
	}

	if len(name) > MaxCalculatorName {
		return fmt.Errorf("%w: calculator name exceeds %d characters", ErrInvalidInput, MaxCalculatorName)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = MaxHistoryEntries
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
