package domain

import "github.com/shopspring/decimal"

// LoanTerms describes a fixed-rate loan. It is built fresh from user input on
// every calculation and passed by value.
type LoanTerms struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
}

// Validate checks the loan invariants.
func (t LoanTerms) Validate() error {
	if err := ValidatePrincipal(t.Principal); err != nil {
		return err
	}

	if err := ValidateAnnualRate(t.AnnualRatePercent); err != nil {
		return err
	}

	return ValidateTermMonths(t.TermMonths)
}

// MonthlyRate returns the periodic (monthly) interest rate as a fraction.
func (t LoanTerms) MonthlyRate() decimal.Decimal {
	return MonthlyRate(t.AnnualRatePercent)
}
