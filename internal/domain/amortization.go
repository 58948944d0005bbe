package domain

import "github.com/shopspring/decimal"

// PeriodicPayment is one row of an amortization schedule.
type PeriodicPayment struct {
	Period           int
	Payment          decimal.Decimal
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	RemainingBalance decimal.Decimal
}

// AmortizationResult is the full reducing-balance breakdown of a loan.
type AmortizationResult struct {
	Terms           LoanTerms
	PeriodicPayment decimal.Decimal
	Schedule        []PeriodicPayment
	TotalInterest   decimal.Decimal
	TotalPayment    decimal.Decimal
	// FinalAdjustment is how far the last payment deviates from PeriodicPayment
	// after it is corrected to retire the outstanding balance.
	FinalAdjustment decimal.Decimal
}

// ComputePeriodicPayment returns the fixed monthly installment for the loan.
func ComputePeriodicPayment(terms LoanTerms) (decimal.Decimal, error) {
	terms, err := terms.normalize()
	if err != nil {
		return decimal.Zero, err
	}

	return periodicPayment(terms), nil
}

// BuildSchedule computes the installment and the period-by-period split of every
// payment into interest and principal. Interest accrues on the outstanding
// balance only. The last period always absorbs the rounding residual so the
// schedule closes at exactly zero.
func BuildSchedule(terms LoanTerms) (*AmortizationResult, error) {
	terms, err := terms.normalize()
	if err != nil {
		return nil, err
	}

	payment := periodicPayment(terms)
	rate := terms.MonthlyRate()

	schedule := make([]PeriodicPayment, 0, terms.TermMonths)
	balance := terms.Principal
	totalInterest := decimal.Zero
	totalPayment := decimal.Zero

	for period := 1; period <= terms.TermMonths; period++ {
		interest := decimal.Zero
		if !rate.IsZero() {
			interest = RoundMoney(balance.Mul(rate))
		}

		principal := payment.Sub(interest)
		if period == terms.TermMonths || principal.GreaterThan(balance) {
			principal = balance
		}
		if principal.IsNegative() {
			principal = decimal.Zero
		}

		balance = balance.Sub(principal)
		row := PeriodicPayment{
			Period:           period,
			Payment:          principal.Add(interest),
			Principal:        principal,
			Interest:         interest,
			RemainingBalance: balance,
		}

		totalInterest = totalInterest.Add(row.Interest)
		totalPayment = totalPayment.Add(row.Payment)
		schedule = append(schedule, row)
	}

	return &AmortizationResult{
		Terms:           terms,
		PeriodicPayment: payment,
		Schedule:        schedule,
		TotalInterest:   totalInterest,
		TotalPayment:    totalPayment,
		FinalAdjustment: schedule[len(schedule)-1].Payment.Sub(payment),
	}, nil
}

// normalize validates the terms, then rounds the principal to minor units so
// every schedule row is expressible in whole minor units. A principal that
// rounds to zero is rejected.
func (t LoanTerms) normalize() (LoanTerms, error) {
	if err := t.Validate(); err != nil {
		return t, err
	}
	t.Principal = RoundMoney(t.Principal)
	return t, ValidatePrincipal(t.Principal)
}

// periodicPayment applies the annuity formula, falling back to straight-line
// repayment for interest-free loans. Terms must already be valid.
func periodicPayment(terms LoanTerms) decimal.Decimal {
	months := decimal.NewFromInt(int64(terms.TermMonths))
	rate := terms.MonthlyRate()

	var payment decimal.Decimal
	if rate.IsZero() {
		payment = terms.Principal.Div(months)
	} else {
		growth := compound(one.Add(rate), terms.TermMonths)
		payment = terms.Principal.Mul(rate).Mul(growth).Div(growth.Sub(one))
	}

	payment = RoundMoney(payment)
	if payment.LessThan(minorUnit) {
		payment = minorUnit
	}

	return payment
}
