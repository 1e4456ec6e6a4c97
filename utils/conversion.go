package utils

import "math"

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToMinorUnits converts a major-unit amount (rupees, dollars) to the
// integer minor units payment gateways expect.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
