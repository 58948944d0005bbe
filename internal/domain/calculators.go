package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SimpleInterestInput is the input of the simple interest calculator.
type SimpleInterestInput struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	Years             decimal.Decimal `json:"years"`
}

// SimpleInterestResult holds simple interest outputs.
type SimpleInterestResult struct {
	Interest decimal.Decimal `json:"interest"`
	Total    decimal.Decimal `json:"total"`
}

// SimpleInterest computes principal * rate * years.
func SimpleInterest(in SimpleInterestInput) (SimpleInterestResult, error) {
	if err := ValidatePositive("principal", in.Principal); err != nil {
		return SimpleInterestResult{}, err
	}
	if err := ValidateAnnualRate(in.AnnualRatePercent); err != nil {
		return SimpleInterestResult{}, err
	}
	if err := ValidateNonNegative("years", in.Years); err != nil {
		return SimpleInterestResult{}, err
	}
	if in.Years.GreaterThan(decimal.NewFromInt(MaxTermMonths / 12)) {
		return SimpleInterestResult{}, fmt.Errorf("%w: years must not exceed %d", ErrInvalidInput, MaxTermMonths/12)
	}

	interest := RoundMoney(in.Principal.Mul(in.AnnualRatePercent).Div(hundred).Mul(in.Years))
	return SimpleInterestResult{
		Interest: interest,
		Total:    RoundMoney(in.Principal).Add(interest),
	}, nil
}

// CompoundInterestInput is the input of the compound interest calculator.
type CompoundInterestInput struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	Years             int             `json:"years"`
	CompoundsPerYear  int             `json:"compounds_per_year"`
}

// CompoundInterestResult holds compound interest outputs.
type CompoundInterestResult struct {
	Amount   decimal.Decimal `json:"amount"`
	Interest decimal.Decimal `json:"interest"`
}

// CompoundInterest computes P(1 + r/k)^(k*t). Compounding defaults to yearly.
func CompoundInterest(in CompoundInterestInput) (CompoundInterestResult, error) {
	if err := ValidatePositive("principal", in.Principal); err != nil {
		return CompoundInterestResult{}, err
	}
	if err := ValidateAnnualRate(in.AnnualRatePercent); err != nil {
		return CompoundInterestResult{}, err
	}
	if in.Years < 0 || in.Years > MaxTermMonths/12 {
		return CompoundInterestResult{}, fmt.Errorf("%w: years must be between 0 and %d", ErrInvalidInput, MaxTermMonths/12)
	}
	if in.CompoundsPerYear == 0 {
		in.CompoundsPerYear = 1
	}
	if in.CompoundsPerYear < 0 || in.CompoundsPerYear > 365 {
		return CompoundInterestResult{}, fmt.Errorf("%w: compounds per year must be between 1 and 365", ErrInvalidInput)
	}

	periodRate := in.AnnualRatePercent.Div(hundred).Div(decimal.NewFromInt(int64(in.CompoundsPerYear)))
	growth := compound(one.Add(periodRate), in.Years*in.CompoundsPerYear)
	amount := RoundMoney(in.Principal.Mul(growth))

	return CompoundInterestResult{
		Amount:   amount,
		Interest: amount.Sub(RoundMoney(in.Principal)),
	}, nil
}

// LedgerInput is a simplified income statement.
type LedgerInput struct {
	Revenue           decimal.Decimal `json:"revenue"`
	CostOfGoodsSold   decimal.Decimal `json:"cogs"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
}

// ProfitLossResult holds profit and loss outputs.
type ProfitLossResult struct {
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	NetMarginPct   decimal.Decimal `json:"net_margin_percent"`
	GrossMarginPct decimal.Decimal `json:"gross_margin_percent"`
}

// ProfitLoss computes gross and net profit. Margins are zero when there is no revenue.
func ProfitLoss(in LedgerInput) (ProfitLossResult, error) {
	if err := ValidateNonNegative("revenue", in.Revenue); err != nil {
		return ProfitLossResult{}, err
	}
	if err := ValidateNonNegative("cogs", in.CostOfGoodsSold); err != nil {
		return ProfitLossResult{}, err
	}
	if err := ValidateNonNegative("operating_expenses", in.OperatingExpenses); err != nil {
		return ProfitLossResult{}, err
	}

	gross := in.Revenue.Sub(in.CostOfGoodsSold)
	net := gross.Sub(in.OperatingExpenses)

	result := ProfitLossResult{
		GrossProfit:    RoundMoney(gross),
		NetProfit:      RoundMoney(net),
		NetMarginPct:   decimal.Zero,
		GrossMarginPct: decimal.Zero,
	}
	if in.Revenue.IsPositive() {
		result.NetMarginPct = Percent(net, in.Revenue)
		result.GrossMarginPct = Percent(gross, in.Revenue)
	}

	return result, nil
}

// ROIInput is the input of the return-on-investment calculator.
type ROIInput struct {
	TotalCost  decimal.Decimal `json:"total_cost"`
	FinalValue decimal.Decimal `json:"final_value"`
}

// ROIResult holds ROI outputs.
type ROIResult struct {
	Gain       decimal.Decimal `json:"gain"`
	ROIPercent decimal.Decimal `json:"roi_percent"`
}

// ROI computes (final - cost) / cost * 100.
func ROI(in ROIInput) (ROIResult, error) {
	if err := ValidatePositive("total_cost", in.TotalCost); err != nil {
		return ROIResult{}, err
	}
	if err := ValidateNonNegative("final_value", in.FinalValue); err != nil {
		return ROIResult{}, err
	}

	gain := in.FinalValue.Sub(in.TotalCost)
	return ROIResult{
		Gain:       RoundMoney(gain),
		ROIPercent: Percent(gain, in.TotalCost),
	}, nil
}

// GratuityInput is the input of the end-of-service gratuity calculator.
type GratuityInput struct {
	LastMonthlySalary decimal.Decimal `json:"last_monthly_salary"`
	ServiceYears      int             `json:"service_years"`
	ServiceMonths     int             `json:"service_months"`
}

// GratuityResult holds gratuity outputs.
type GratuityResult struct {
	EligibleYears int             `json:"eligible_years"`
	Gratuity      decimal.Decimal `json:"gratuity"`
}

// Gratuity pays one month of the last salary per completed year of service. A
// remainder of six months or more counts as a full year.
func Gratuity(in GratuityInput) (GratuityResult, error) {
	if err := ValidatePositive("last_monthly_salary", in.LastMonthlySalary); err != nil {
		return GratuityResult{}, err
	}
	if in.ServiceYears < 0 || in.ServiceMonths < 0 || in.ServiceMonths > 11 {
		return GratuityResult{}, fmt.Errorf("%w: service must be whole years plus 0-11 months", ErrInvalidInput)
	}

	years := in.ServiceYears
	if in.ServiceMonths >= 6 {
		years++
	}

	return GratuityResult{
		EligibleYears: years,
		Gratuity:      RoundMoney(in.LastMonthlySalary.Mul(decimal.NewFromInt(int64(years)))),
	}, nil
}

// KPI is one weighted key performance indicator.
type KPI struct {
	Weight             decimal.Decimal `json:"weight"`
	AchievementPercent decimal.Decimal `json:"achievement_percent"`
}

// KPIScoreInput maps KPI names to their weight and achievement.
type KPIScoreInput struct {
	KPIs map[string]KPI `json:"kpis"`
}

// KPIScoreResult holds the weighted score.
type KPIScoreResult struct {
	TotalWeight  decimal.Decimal `json:"total_weight"`
	ScorePercent decimal.Decimal `json:"score_percent"`
}

// KPIScore computes sum(weight * achievement) / sum(weight).
func KPIScore(in KPIScoreInput) (KPIScoreResult, error) {
	if len(in.KPIs) == 0 {
		return KPIScoreResult{}, fmt.Errorf("%w: at least one KPI is required", ErrInvalidInput)
	}

	totalWeight := decimal.Zero
	weighted := decimal.Zero
	for name, kpi := range in.KPIs {
		if err := ValidateNonNegative(name+" weight", kpi.Weight); err != nil {
			return KPIScoreResult{}, err
		}
		if err := ValidateNonNegative(name+" achievement", kpi.AchievementPercent); err != nil {
			return KPIScoreResult{}, err
		}
		totalWeight = totalWeight.Add(kpi.Weight)
		weighted = weighted.Add(kpi.Weight.Mul(kpi.AchievementPercent))
	}

	if !totalWeight.IsPositive() {
		return KPIScoreResult{}, fmt.Errorf("%w: total KPI weight must be positive", ErrInvalidInput)
	}

	return KPIScoreResult{
		TotalWeight:  totalWeight,
		ScorePercent: weighted.Div(totalWeight).Round(2),
	}, nil
}
