package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func terms(principal, rate string, months int) LoanTerms {
	return LoanTerms{
		Principal:         decimal.RequireFromString(principal),
		AnnualRatePercent: decimal.RequireFromString(rate),
		TermMonths:        months,
	}
}

func TestComputePeriodicPayment(t *testing.T) {
	tests := []struct {
		name     string
		terms    LoanTerms
		expected string
	}{
		{name: "standard loan", terms: terms("1000000", "12", 60), expected: "22244.45"},
		{name: "thirty year mortgage", terms: terms("250000", "7.5", 360), expected: "1748.04"},
		{name: "repeating monthly rate", terms: terms("500000", "10", 360), expected: "4387.86"},
		{name: "zero interest", terms: terms("1200", "0", 12), expected: "100"},
		{name: "zero interest uneven split", terms: terms("100", "0", 3), expected: "33.33"},
		{name: "single period", terms: terms("1000", "12", 1), expected: "1010"},
		{name: "payment never rounds to zero", terms: terms("0.01", "0", 3), expected: "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := ComputePeriodicPayment(tt.terms)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !payment.Equal(mustDecimal(t, tt.expected)) {
				t.Fatalf("expected payment %s, got %s", tt.expected, payment)
			}

			if !payment.IsPositive() {
				t.Fatalf("expected positive payment, got %s", payment)
			}
		})
	}
}

func TestComputePeriodicPayment_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		terms LoanTerms
	}{
		{name: "zero principal", terms: terms("0", "12", 60)},
		{name: "negative principal", terms: terms("-5", "12", 60)},
		{name: "principal below one minor unit", terms: terms("0.004", "12", 60)},
		{name: "negative rate", terms: terms("1000", "-1", 60)},
		{name: "zero term", terms: terms("1000", "12", 0)},
		{name: "negative term", terms: terms("1000", "12", -3)},
		{name: "term too long", terms: terms("1000", "12", MaxTermMonths+1)},
		{name: "huge exponent principal", terms: terms("1e20000000", "12", 60)},
		{name: "tiny exponent principal", terms: terms("1e-20000000", "12", 60)},
		{name: "huge exponent rate", terms: terms("1000", "1e20000000", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputePeriodicPayment(tt.terms)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestBuildSchedule_StandardLoan(t *testing.T) {
	result, err := BuildSchedule(terms("1000000", "12", 60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Schedule) != 60 {
		t.Fatalf("expected 60 periods, got %d", len(result.Schedule))
	}

	if !result.PeriodicPayment.Equal(mustDecimal(t, "22244.45")) {
		t.Fatalf("expected payment 22244.45, got %s", result.PeriodicPayment)
	}

	if !result.TotalInterest.Equal(mustDecimal(t, "334666.80")) {
		t.Fatalf("expected total interest 334666.80, got %s", result.TotalInterest)
	}

	if !result.TotalPayment.Equal(mustDecimal(t, "1334666.80")) {
		t.Fatalf("expected total payment 1334666.80, got %s", result.TotalPayment)
	}

	first := result.Schedule[0]
	if first.Period != 1 ||
		!first.Interest.Equal(mustDecimal(t, "10000")) ||
		!first.Principal.Equal(mustDecimal(t, "12244.45")) ||
		!first.RemainingBalance.Equal(mustDecimal(t, "987755.55")) {
		t.Fatalf("unexpected first row: %+v", first)
	}

	last := result.Schedule[59]
	if !last.RemainingBalance.IsZero() {
		t.Fatalf("expected final balance 0, got %s", last.RemainingBalance)
	}

	if !last.Payment.Equal(mustDecimal(t, "22244.25")) {
		t.Fatalf("expected corrected final payment 22244.25, got %s", last.Payment)
	}

	if !result.FinalAdjustment.Equal(mustDecimal(t, "-0.20")) {
		t.Fatalf("expected final adjustment -0.20, got %s", result.FinalAdjustment)
	}
}

func TestBuildSchedule_Properties(t *testing.T) {
	cases := []LoanTerms{
		terms("1000000", "12", 60),
		terms("250000", "7.5", 360),
		terms("500000", "10", 360),
		terms("100", "0", 3),
		terms("99999.99", "3.25", 84),
		terms("1500", "36", 7),
		terms("0.01", "0", 3),
		terms("1000000000", "0.01", 1200),
	}

	for _, lt := range cases {
		t.Run(lt.Principal.String()+"@"+lt.AnnualRatePercent.String(), func(t *testing.T) {
			result, err := BuildSchedule(lt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result.Schedule) != lt.TermMonths {
				t.Fatalf("expected %d periods, got %d", lt.TermMonths, len(result.Schedule))
			}

			sumPrincipal := decimal.Zero
			sumInterest := decimal.Zero
			previous := lt.Principal
			for i, row := range result.Schedule {
				if row.Period != i+1 {
					t.Fatalf("row %d has period %d", i, row.Period)
				}
				if !row.Principal.Add(row.Interest).Equal(row.Payment) {
					t.Fatalf("period %d: principal %s + interest %s != payment %s",
						row.Period, row.Principal, row.Interest, row.Payment)
				}
				if row.RemainingBalance.IsNegative() {
					t.Fatalf("period %d: negative balance %s", row.Period, row.RemainingBalance)
				}
				if row.RemainingBalance.GreaterThan(previous) {
					t.Fatalf("period %d: balance increased from %s to %s", row.Period, previous, row.RemainingBalance)
				}
				if lt.AnnualRatePercent.IsZero() && !row.Interest.IsZero() {
					t.Fatalf("period %d: expected zero interest, got %s", row.Period, row.Interest)
				}
				previous = row.RemainingBalance
				sumPrincipal = sumPrincipal.Add(row.Principal)
				sumInterest = sumInterest.Add(row.Interest)
			}

			if !previous.IsZero() {
				t.Fatalf("expected schedule to close at 0, got %s", previous)
			}
			if !sumPrincipal.Equal(lt.Principal) {
				t.Fatalf("principal not conserved: paid %s of %s", sumPrincipal, lt.Principal)
			}
			if !sumInterest.Equal(result.TotalInterest) {
				t.Fatalf("total interest %s != sum of rows %s", result.TotalInterest, sumInterest)
			}
			if !sumPrincipal.Add(sumInterest).Equal(result.TotalPayment) {
				t.Fatalf("total payment %s != principal %s + interest %s", result.TotalPayment, sumPrincipal, sumInterest)
			}
		})
	}
}

func TestBuildSchedule_ZeroInterestStraightLine(t *testing.T) {
	result, err := BuildSchedule(terms("100", "0", 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.PeriodicPayment.Equal(mustDecimal(t, "33.33")) {
		t.Fatalf("expected payment 33.33, got %s", result.PeriodicPayment)
	}

	if !result.TotalInterest.IsZero() {
		t.Fatalf("expected no interest, got %s", result.TotalInterest)
	}

	if !result.Schedule[2].Principal.Equal(mustDecimal(t, "33.34")) {
		t.Fatalf("expected last period to absorb residual, got %s", result.Schedule[2].Principal)
	}

	if !result.FinalAdjustment.Equal(mustDecimal(t, "0.01")) {
		t.Fatalf("expected final adjustment 0.01, got %s", result.FinalAdjustment)
	}
}

func TestBuildSchedule_SinglePeriod(t *testing.T) {
	result, err := BuildSchedule(terms("1000", "12", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Schedule) != 1 {
		t.Fatalf("expected exactly one period, got %d", len(result.Schedule))
	}

	row := result.Schedule[0]
	if !row.Principal.Equal(mustDecimal(t, "1000")) {
		t.Fatalf("expected principal portion 1000, got %s", row.Principal)
	}
	if !row.Interest.Equal(mustDecimal(t, "10")) {
		t.Fatalf("expected interest principal*r = 10, got %s", row.Interest)
	}
	if !result.FinalAdjustment.IsZero() {
		t.Fatalf("expected no final adjustment, got %s", result.FinalAdjustment)
	}
}

func TestBuildSchedule_ThirtyYearConservation(t *testing.T) {
	result, err := BuildSchedule(terms("250000", "7.5", 360))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.PrincipalPaid().Equal(mustDecimal(t, "250000")) {
		t.Fatalf("expected principal paid 250000, got %s", result.PrincipalPaid())
	}

	if !result.TotalInterest.Equal(mustDecimal(t, "379289.78")) {
		t.Fatalf("expected total interest 379289.78, got %s", result.TotalInterest)
	}

	if !result.Schedule[359].RemainingBalance.IsZero() {
		t.Fatalf("expected zero closing balance, got %s", result.Schedule[359].RemainingBalance)
	}
}

func TestBuildSchedule_Deterministic(t *testing.T) {
	lt := terms("730000", "9.9", 240)

	first, err := BuildSchedule(lt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildSchedule(lt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.PeriodicPayment.String() != second.PeriodicPayment.String() ||
		first.TotalInterest.String() != second.TotalInterest.String() ||
		first.TotalPayment.String() != second.TotalPayment.String() {
		t.Fatalf("totals differ between runs")
	}

	for i := range first.Schedule {
		a, b := first.Schedule[i], second.Schedule[i]
		if a.Payment.String() != b.Payment.String() ||
			a.Principal.String() != b.Principal.String() ||
			a.Interest.String() != b.Interest.String() ||
			a.RemainingBalance.String() != b.RemainingBalance.String() {
			t.Fatalf("period %d differs between runs: %+v vs %+v", i+1, a, b)
		}
	}
}

func TestBuildSchedule_InvalidInputReturnsNoResult(t *testing.T) {
	result, err := BuildSchedule(terms("0", "12", 60))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no partial result, got %+v", result)
	}
}

func TestBuildSchedule_RoundsPrincipalToMinorUnits(t *testing.T) {
	result, err := BuildSchedule(terms("1000.005", "0", 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Terms.Principal.Equal(mustDecimal(t, "1000.01")) {
		t.Fatalf("expected principal rounded to 1000.01, got %s", result.Terms.Principal)
	}
	if !result.PrincipalPaid().Equal(result.Terms.Principal) {
		t.Fatalf("expected principal paid %s, got %s", result.Terms.Principal, result.PrincipalPaid())
	}
}
