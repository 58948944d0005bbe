package domain

import "github.com/shopspring/decimal"

// YearSummary aggregates twelve consecutive schedule periods.
type YearSummary struct {
	Year           int
	Principal      decimal.Decimal
	Interest       decimal.Decimal
	Payment        decimal.Decimal
	ClosingBalance decimal.Decimal
}

// Window returns the first n rows of the schedule. A non-positive n or one
// larger than the schedule returns every row. The result shares no storage
// with the schedule.
func (r *AmortizationResult) Window(n int) []PeriodicPayment {
	if n <= 0 || n > len(r.Schedule) {
		n = len(r.Schedule)
	}

	rows := make([]PeriodicPayment, n)
	copy(rows, r.Schedule[:n])
	return rows
}

// YearlySummary folds the schedule into loan years. A trailing partial year is
// reported as its own entry.
func (r *AmortizationResult) YearlySummary() []YearSummary {
	years := make([]YearSummary, 0, (len(r.Schedule)+11)/12)

	for i, row := range r.Schedule {
		year := i/12 + 1
		if len(years) < year {
			years = append(years, YearSummary{
				Year:      year,
				Principal: decimal.Zero,
				Interest:  decimal.Zero,
				Payment:   decimal.Zero,
			})
		}

		current := &years[year-1]
		current.Principal = current.Principal.Add(row.Principal)
		current.Interest = current.Interest.Add(row.Interest)
		current.Payment = current.Payment.Add(row.Payment)
		current.ClosingBalance = row.RemainingBalance
	}

	return years
}

// PrincipalPaid sums the principal portions of the schedule.
func (r *AmortizationResult) PrincipalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, row := range r.Schedule {
		total = total.Add(row.Principal)
	}
	return total
}

// ChartSeries holds per-period series for plotting a schedule.
type ChartSeries struct {
	Periods   []int
	Balance   []decimal.Decimal
	Principal []decimal.Decimal
	Interest  []decimal.Decimal
}

// Chart returns the balance decay and the principal/interest split per period.
func (r *AmortizationResult) Chart() ChartSeries {
	n := len(r.Schedule)
	series := ChartSeries{
		Periods:   make([]int, n),
		Balance:   make([]decimal.Decimal, n),
		Principal: make([]decimal.Decimal, n),
		Interest:  make([]decimal.Decimal, n),
	}

	for i, row := range r.Schedule {
		series.Periods[i] = row.Period
		series.Balance[i] = row.RemainingBalance
		series.Principal[i] = row.Principal
		series.Interest[i] = row.Interest
	}

	return series
}
