package domain

import (
	"math"
	"time"
)

// FeePolicy describes how late fees accrue: nothing during the grace period,
// then DailyRate for every further day.
type FeePolicy struct {
	GraceDays int
	DailyRate float64
}

// DefaultFeePolicy is one week free, then 0.50 per day.
var DefaultFeePolicy = FeePolicy{GraceDays: 7, DailyRate: 0.5}

// LateFee computes the fee for a loan borrowed on borrowDate and returned on
// returnDate. The result is rounded to cents and is never negative.
func (p FeePolicy) LateFee(borrowDate, returnDate time.Time) float64 {
	overdue := DaysBetween(borrowDate, returnDate) - p.GraceDays
	if overdue <= 0 {
		return 0
	}
	return math.Round(float64(overdue)*p.DailyRate*100) / 100
}
