package model

import "github.com/shopspring/decimal"

// Money is a currency amount in the store currency.
type Money = decimal.Decimal

// MoneyFromString parses a decimal literal like "40.90". It panics on bad
// input and is meant for constants and test fixtures.
func MoneyFromString(s string) Money {
	return decimal.RequireFromString(s)
}

// RoundMoney rounds half away from zero to cents.
func RoundMoney(m Money) Money {
	return m.Round(2)
}

// IsCents reports whether m has no digits below the cent.
func IsCents(m Money) bool {
	return m.Equal(m.Round(2))
}

// FormatMoney renders m with exactly two decimal places.
func FormatMoney(m Money) string {
	return m.StringFixed(2)
}
