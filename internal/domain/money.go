package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of minor-unit digits kept for monetary amounts.
const MoneyPlaces int32 = 2

// growthPlaces bounds the precision of intermediate compounding factors.
const growthPlaces int32 = 40

var (
	one           = decimal.NewFromInt(1)
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
	minorUnit     = decimal.New(1, -MoneyPlaces)
)

// RoundMoney rounds an amount to minor units, half away from zero.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// MinorUnit returns the smallest representable monetary amount.
func MinorUnit() decimal.Decimal {
	return minorUnit
}

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(monthsPerYear)
}

// Percent returns part/whole*100 rounded to two places.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	return part.Div(whole).Mul(hundred).Round(2)
}

// compound returns base^n for n >= 0 by repeated squaring, keeping growthPlaces
// digits after each multiplication.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(growthPlaces)
		}
		base = base.Mul(base).Round(growthPlaces)
		n >>= 1
	}
	return result
}
