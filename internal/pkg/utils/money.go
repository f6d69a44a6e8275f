package utils

import "fmt"

// FormatMinorUnits renders an amount in minor units (paise, cents) as major
// units with two decimals, e.g. 50000 -> "500.00".
func FormatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

func MinorToMajorUnits(amount int64) float64 {
	return float64(amount) / 100
}
