package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIncomeTax_DefaultBrackets(t *testing.T) {
	tests := []struct {
		name      string
		income    string
		tax       string
		effective string
	}{
		{name: "exempt", income: "500000", tax: "0", effective: "0"},
		{name: "bracket boundary", income: "600000", tax: "0", effective: "0"},
		{name: "third bracket", income: "1500000", tax: "75000", effective: "5"},
		{name: "top bracket", income: "5000000", tax: "1015000", effective: "20.3"},
		{name: "no income", income: "0", tax: "0", effective: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IncomeTax(IncomeTaxInput{AnnualIncome: d(tt.income)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Tax.Equal(d(tt.tax)) {
				t.Fatalf("expected tax %s, got %s", tt.tax, got.Tax)
			}
			if !got.EffectiveRatePercent.Equal(d(tt.effective)) {
				t.Fatalf("expected effective rate %s, got %s", tt.effective, got.EffectiveRatePercent)
			}
			if !got.NetIncome.Add(got.Tax).Equal(d(tt.income)) {
				t.Fatalf("net income %s + tax %s != income %s", got.NetIncome, got.Tax, tt.income)
			}
		})
	}
}

func TestIncomeTax_CustomBrackets(t *testing.T) {
	brackets := []TaxBracket{
		{Lower: decimal.Zero, Upper: d("1000"), RatePercent: d("10")},
		{Lower: d("1000"), Upper: decimal.Zero, RatePercent: d("20")},
	}

	got, err := IncomeTax(IncomeTaxInput{AnnualIncome: d("1500"), Brackets: brackets})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Tax.Equal(d("200")) {
		t.Fatalf("expected tax 200, got %s", got.Tax)
	}
}

func TestValidateTaxBrackets(t *testing.T) {
	tests := []struct {
		name     string
		brackets []TaxBracket
	}{
		{
			name: "gap between brackets",
			brackets: []TaxBracket{
				{Lower: decimal.Zero, Upper: d("100"), RatePercent: d("0")},
				{Lower: d("200"), Upper: decimal.Zero, RatePercent: d("10")},
			},
		},
		{
			name: "unbounded bracket in the middle",
			brackets: []TaxBracket{
				{Lower: decimal.Zero, Upper: decimal.Zero, RatePercent: d("0")},
				{Lower: d("0"), Upper: d("100"), RatePercent: d("10")},
			},
		},
		{
			name: "rate above hundred",
			brackets: []TaxBracket{
				{Lower: decimal.Zero, Upper: decimal.Zero, RatePercent: d("101")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateTaxBrackets(tt.brackets); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if err := ValidateTaxBrackets(DefaultTaxBrackets); err != nil {
		t.Fatalf("default brackets should be valid: %v", err)
	}
}
