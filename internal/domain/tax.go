package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket taxes the slice of income above Lower and up to Upper at
// RatePercent. A zero Upper means the bracket is unbounded.
type TaxBracket struct {
	Lower       decimal.Decimal `json:"lower"`
	Upper       decimal.Decimal `json:"upper"`
	RatePercent decimal.Decimal `json:"rate_percent"`
}

// DefaultTaxBrackets is the salaried-individual annual slab table.
var DefaultTaxBrackets = []TaxBracket{
	{Lower: decimal.NewFromInt(0), Upper: decimal.NewFromInt(600000), RatePercent: decimal.Zero},
	{Lower: decimal.NewFromInt(600000), Upper: decimal.NewFromInt(1200000), RatePercent: decimal.NewFromInt(5)},
	{Lower: decimal.NewFromInt(1200000), Upper: decimal.NewFromInt(2200000), RatePercent: decimal.NewFromInt(15)},
	{Lower: decimal.NewFromInt(2200000), Upper: decimal.NewFromInt(3200000), RatePercent: decimal.NewFromInt(25)},
	{Lower: decimal.NewFromInt(3200000), Upper: decimal.NewFromInt(4100000), RatePercent: decimal.NewFromInt(30)},
	{Lower: decimal.NewFromInt(4100000), Upper: decimal.Zero, RatePercent: decimal.NewFromInt(35)},
}

// IncomeTaxInput is the input of the income tax calculator. Brackets default
// to DefaultTaxBrackets.
type IncomeTaxInput struct {
	AnnualIncome decimal.Decimal `json:"annual_income"`
	Brackets     []TaxBracket    `json:"brackets,omitempty"`
}

// IncomeTaxResult holds income tax outputs.
type IncomeTaxResult struct {
	Tax                  decimal.Decimal `json:"tax"`
	EffectiveRatePercent decimal.Decimal `json:"effective_rate_percent"`
	NetIncome            decimal.Decimal `json:"net_income"`
	MonthlyTax           decimal.Decimal `json:"monthly_tax"`
}

// IncomeTax applies a progressive bracket table to the annual income.
func IncomeTax(in IncomeTaxInput) (IncomeTaxResult, error) {
	if err := ValidateNonNegative("annual_income", in.AnnualIncome); err != nil {
		return IncomeTaxResult{}, err
	}

	brackets := in.Brackets
	if len(brackets) == 0 {
		brackets = DefaultTaxBrackets
	}
	if err := ValidateTaxBrackets(brackets); err != nil {
		return IncomeTaxResult{}, err
	}

	tax := decimal.Zero
	for _, b := range brackets {
		if in.AnnualIncome.LessThanOrEqual(b.Lower) {
			break
		}
		top := in.AnnualIncome
		if !b.Upper.IsZero() && top.GreaterThan(b.Upper) {
			top = b.Upper
		}
		tax = tax.Add(top.Sub(b.Lower).Mul(b.RatePercent).Div(hundred))
	}
	tax = RoundMoney(tax)

	result := IncomeTaxResult{
		Tax:                  tax,
		EffectiveRatePercent: decimal.Zero,
		NetIncome:            RoundMoney(in.AnnualIncome.Sub(tax)),
		MonthlyTax:           RoundMoney(tax.Div(monthsPerYear)),
	}
	if in.AnnualIncome.IsPositive() {
		result.EffectiveRatePercent = Percent(tax, in.AnnualIncome)
	}

	return result, nil
}

// ValidateTaxBrackets checks that brackets are contiguous, ascending and that
// only the last one is unbounded.
func ValidateTaxBrackets(brackets []TaxBracket) error {
	for i, b := range brackets {
		for _, v := range []decimal.Decimal{b.Lower, b.Upper, b.RatePercent} {
			if err := ValidateAmount(fmt.Sprintf("bracket %d", i), v); err != nil {
				return err
			}
		}
		if b.Lower.IsNegative() || b.RatePercent.IsNegative() || b.RatePercent.GreaterThan(hundred) {
			return fmt.Errorf("%w: bracket %d has an invalid bound or rate", ErrInvalidInput, i)
		}

		last := i == len(brackets)-1
		if b.Upper.IsZero() && !last {
			return fmt.Errorf("%w: only the last bracket may be unbounded", ErrInvalidInput)
		}
		if !b.Upper.IsZero() && b.Upper.LessThanOrEqual(b.Lower) {
			return fmt.Errorf("%w: bracket %d upper bound must exceed lower bound", ErrInvalidInput, i)
		}
		if i > 0 && !b.Lower.Equal(brackets[i-1].Upper) {
			return fmt.Errorf("%w: bracket %d does not start where bracket %d ends", ErrInvalidInput, i, i-1)
		}
	}
	return nil
}
