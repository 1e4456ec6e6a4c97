package booking

import (
	"lawease/utils"
)

// DefaultPlatformFeeRate is the marketplace surcharge on top of the lawyer's fee.
const DefaultPlatformFeeRate = 0.15

// Price is the money breakdown snapshotted onto a booking.
type Price struct {
	HourlyRate  float64
	BaseAmount  float64
	PlatformFee float64
	TotalAmount float64
}

// Quote prices a consultation: the lawyer's hourly rate pro-rated by duration,
// plus the platform fee. Amounts are rounded to two decimals.
func Quote(hourlyRate float64, durationMinutes int, feeRate float64) Price {
	base := utils.RoundMoney(hourlyRate * float64(durationMinutes) / 60)
	fee := utils.RoundMoney(base * feeRate)
	return Price{
		HourlyRate:  hourlyRate,
		BaseAmount:  base,
		PlatformFee: fee,
		TotalAmount: utils.RoundMoney(base + fee),
	}
}
