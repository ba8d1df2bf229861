package ledger

import (
	"errors"
	"testing"
	"time"
)

func TestApplyDebit(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		amount  int64
		want    int64
		wantErr error
	}{
		{name: "covers exactly", balance: 1000, amount: 1000, want: 0},
		{name: "covers with remainder", balance: 1500, amount: 1000, want: 500},
		{name: "insufficient", balance: 999, amount: 1000, wantErr: ErrInsufficientFunds},
		{name: "zero balance", balance: 0, amount: 100, wantErr: ErrInsufficientFunds},
		{name: "zero amount", balance: 1000, amount: 0, wantErr: ErrInvalidAmount},
		{name: "negative amount", balance: 1000, amount: -5, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyDebit(tt.balance, tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("applyDebit() error = %v, want %v", err, tt.wantErr)
				}
				// The balance passed back must be untouched on failure.
				if got != tt.balance {
					t.Errorf("applyDebit() balance = %d, want unchanged %d", got, tt.balance)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyDebit() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("applyDebit() = %d, want %d", got, tt.want)
			}
		})
	}
}

// The daily boundary is one claim per UTC calendar day: a claim at 23:59 UTC
// unlocks again at 00:00 UTC, not 24 hours later.
func TestClaimedOnSameDay(t *testing.T) {
	lateEvening := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastDaily time.Time
		now       time.Time
		want      bool
	}{
		{name: "never claimed", lastDaily: time.Time{}, now: lateEvening, want: false},
		{name: "same instant", lastDaily: lateEvening, now: lateEvening, want: true},
		{name: "same day earlier", lastDaily: lateEvening.Add(-10 * time.Hour), now: lateEvening, want: true},
		{name: "next day one minute later", lastDaily: lateEvening, now: lateEvening.Add(time.Minute), want: false},
		{name: "same wall clock next day", lastDaily: lateEvening, now: lateEvening.Add(24 * time.Hour), want: false},
		{
			name:      "non-utc zone normalized",
			lastDaily: time.Date(2024, 3, 11, 8, 0, 0, 0, time.FixedZone("JST", 9*3600)), // 23:00 UTC Mar 10
			now:       lateEvening,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := claimedOnSameDay(tt.lastDaily, tt.now); got != tt.want {
				t.Errorf("claimedOnSameDay(%v, %v) = %v, want %v", tt.lastDaily, tt.now, got, tt.want)
			}
		})
	}
}
