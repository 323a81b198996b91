package loan

import (
	"testing"
	"time"
)

func TestRemaining_Decomposition(t *testing.T) {
	disbursed := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want Countdown
	}{
		{"just disbursed", disbursed, Countdown{Days: 3, Hours: 0, Minutes: 0}},
		{"2 days 23 hours in", disbursed.Add(2*24*time.Hour + 23*time.Hour), Countdown{Days: 0, Hours: 1, Minutes: 0}},
		{"seconds truncate", disbursed.Add(1*24*time.Hour + 21*time.Hour + 29*time.Minute + 15*time.Second), Countdown{Days: 1, Hours: 2, Minutes: 30}},
		{"exactly due", disbursed.Add(RepaymentWindow), Countdown{}},
		{"a day overdue", disbursed.Add(4 * 24 * time.Hour), Countdown{}},
	}
	for _, tc := range cases {
		if got := Remaining(disbursed, tc.now); got != tc.want {
			t.Errorf("%s: Remaining = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestRemaining_MonotonicNonIncreasingAndNeverNegative(t *testing.T) {
	disbursed := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	prev := Remaining(disbursed, disbursed)
	for now := disbursed; now.Before(disbursed.Add(RepaymentWindow + 24*time.Hour)); now = now.Add(37 * time.Minute) {
		got := Remaining(disbursed, now)
		if got.Days < 0 || got.Hours < 0 || got.Minutes < 0 {
			t.Fatalf("negative component at now=%v: %+v", now, got)
		}
		if totalMinutes(got) > totalMinutes(prev) {
			t.Fatalf("countdown increased: %+v -> %+v at now=%v", prev, got, now)
		}
		prev = got
	}
	if !prev.Expired() {
		t.Fatalf("expected floor at zero past the window, got %+v", prev)
	}
}

func totalMinutes(c Countdown) int { return (c.Days*24+c.Hours)*60 + c.Minutes }

func TestRemainingFor(t *testing.T) {
	now := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)

	pending := &LoanRequest{Status: StatusPending, UpdatedAt: now.Add(-time.Hour)}
	if got := RemainingFor(pending, now); got != nil {
		t.Fatalf("pending record should have no countdown, got %+v", got)
	}

	disbursed := &LoanRequest{Status: StatusDisbursed, UpdatedAt: now.Add(-24 * time.Hour)}
	got := RemainingFor(disbursed, now)
	if got == nil {
		t.Fatal("disbursed record should have a countdown")
	}
	if *got != (Countdown{Days: 2}) {
		t.Fatalf("countdown = %+v, want 2 days", got)
	}
}

func TestScenario_ApproveDisburseCountdown(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	l := &LoanRequest{Amount: 500, Status: StatusPending}

	if err := Transition(l.Status, StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	l.Status = StatusApproved
	if err := Transition(l.Status, StatusDisbursed); err != nil {
		t.Fatalf("disburse: %v", err)
	}
	l.Status = StatusDisbursed
	l.UpdatedAt = t1

	got := RemainingFor(l, t1.Add(2*24*time.Hour+23*time.Hour))
	if got == nil || *got != (Countdown{Days: 0, Hours: 1, Minutes: 0}) {
		t.Fatalf("at T1+2d23h: got %+v, want {0,1,0}", got)
	}
	got = RemainingFor(l, t1.Add(4*24*time.Hour))
	if got == nil || !got.Expired() {
		t.Fatalf("at T1+4d: got %+v, want expired", got)
	}
}
