package domain

import "fmt"

// FormatCents renders integer cents as a 2-decimal amount string.
// Rounding to currency precision happens only here, at presentation time;
// all arithmetic stays in cents.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
