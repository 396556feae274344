package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmountCell turns a raw cell like "$1,234.56", "(45.99)" or "-45.99"
// into a decimal. Parenthesized notation parses as negative. The bool is
// false for empty or non-numeric cells.
func parseAmountCell(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}
