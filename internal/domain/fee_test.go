package domain

import (
	"math"
	"testing"
	"time"
)

func TestFeePolicyLateFee(t *testing.T) {
	borrowed := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	after := func(days int) time.Time { return borrowed.AddDate(0, 0, days) }

	tests := []struct {
		name string
		days int
		want float64
	}{
		{"same day", 0, 0},
		{"within grace", 5, 0},
		{"last grace day", 7, 0},
		{"one day late", 8, 0.5},
		{"ten days", 10, 1.5},
		{"thirty days", 30, 11.5},
		{"returned before borrowed", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultFeePolicy.LateFee(borrowed, after(tt.days))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LateFee after %d days = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}

func TestFeePolicyLateFee_Monotone(t *testing.T) {
	policies := []FeePolicy{
		DefaultFeePolicy,
		{GraceDays: 0, DailyRate: 0.25},
		{GraceDays: 14, DailyRate: 1},
	}
	borrowed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, p := range policies {
		prev := 0.0
		for d := 0; d <= 60; d++ {
			fee := p.LateFee(borrowed, borrowed.AddDate(0, 0, d))
			if fee < prev {
				t.Fatalf("policy %+v: fee decreased from %v to %v at day %d", p, prev, fee, d)
			}
			if d <= p.GraceDays && fee != 0 {
				t.Fatalf("policy %+v: expected no fee within grace period, got %v at day %d", p, fee, d)
			}
			prev = fee
		}
	}
}
