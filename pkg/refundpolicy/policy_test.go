package refundpolicy

import (
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start      time.Time
		price      float64
		wantPct    int
		wantAmount float64
		wantReason string
	}{
		{
			name:       "three days ahead refunds everything",
			start:      now.Add(72 * time.Hour),
			price:      500000,
			wantPct:    100,
			wantAmount: 500000,
			wantReason: ReasonFullRefund,
		},
		{
			name:       "exactly two days ahead refunds everything",
			start:      now.Add(48 * time.Hour),
			price:      500000,
			wantPct:    100,
			wantAmount: 500000,
			wantReason: ReasonFullRefund,
		},
		{
			name:       "just under two days drops to half",
			start:      now.Add(48*time.Hour - time.Minute),
			price:      500000,
			wantPct:    50,
			wantAmount: 250000,
			wantReason: ReasonHalfRefund,
		},
		{
			name:       "exactly one day ahead refunds half",
			start:      now.Add(24 * time.Hour),
			price:      200000,
			wantPct:    50,
			wantAmount: 100000,
			wantReason: ReasonHalfRefund,
		},
		{
			name:       "just under one day refunds nothing",
			start:      now.Add(24*time.Hour - time.Minute),
			price:      200000,
			wantPct:    0,
			wantAmount: 0,
			wantReason: ReasonNoRefund,
		},
		{
			name:       "appointment already started refunds nothing",
			start:      now.Add(-time.Hour),
			price:      200000,
			wantPct:    0,
			wantAmount: 0,
			wantReason: ReasonNoRefund,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.price, tt.start, now)
			if got.Percentage != tt.wantPct {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.wantPct)
			}
			if got.Amount != tt.wantAmount {
				t.Errorf("Amount = %f, want %f", got.Amount, tt.wantAmount)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}
