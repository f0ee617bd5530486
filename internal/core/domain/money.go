package domain

import "github.com/shopspring/decimal"

// Money rounds a wire amount to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// SameAmount reports whether two amounts are equal once rounded to cents.
func SameAmount(a, b float64) bool {
	return Money(a).Equal(Money(b))
}

// FormatMoney renders an amount the way activity log details show it (e.g. "20", "12.5").
func FormatMoney(v float64) string {
	return Money(v).String()
}
