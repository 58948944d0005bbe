package domain

import (
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// CurrencyPrefix is prepended to every formatted amount.
const CurrencyPrefix = "Rs "

// groupChunk splits integers that do not fit in an int64 into 18-digit
// blocks; 18 is a multiple of the group size so separators line up.
const groupChunk = 1_000_000_000_000_000_000

var groupChunkBig = new(big.Int).SetUint64(groupChunk)

// FormatCurrency renders an amount rounded to whole currency units with
// locale-aware thousands grouping, e.g. "Rs 1,234,567". Amounts of any size
// are grouped exactly.
func FormatCurrency(amount decimal.Decimal, lang Language) string {
	units := amount.Round(0)

	sign := ""
	if units.IsNegative() {
		sign = "-"
		units = units.Neg()
	}

	p := message.NewPrinter(lang.Tag())
	return sign + CurrencyPrefix + groupDigits(p, units.BigInt())
}

// groupDigits formats a non-negative integer with p's grouping.
func groupDigits(p *message.Printer, n *big.Int) string {
	if n.IsInt64() {
		return p.Sprintf("%d", n.Int64())
	}

	high, low := new(big.Int).QuoRem(n, groupChunkBig, new(big.Int))
	// Adding groupChunk keeps the leading zeros of the low block; the extra
	// leading 1 is dropped, leaving the separator in front.
	block := p.Sprintf("%d", low.Uint64()+groupChunk)
	_, size := utf8.DecodeRuneInString(block)
	return groupDigits(p, high) + block[size:]
}

// FormatAmount formats a float amount. NaN and infinities are rejected.
func FormatAmount(amount float64, lang Language) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("%w: amount must be a finite number", ErrInvalidInput)
	}

	return FormatCurrency(decimal.NewFromFloat(amount), lang), nil
}
