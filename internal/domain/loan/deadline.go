package loan

import "time"

// RepaymentWindow is the fixed interval between disbursement and the due
// instant. Not configurable per record.
const RepaymentWindow = 3 * 24 * time.Hour

// Countdown is the whole-unit decomposition of the time left until the
// repayment due instant. Seconds are discarded.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func (c Countdown) Expired() bool { return c.Days == 0 && c.Hours == 0 && c.Minutes == 0 }

// Remaining decomposes dueInstant-now into whole days, hours and minutes,
// truncating. Once now reaches the due instant it floors at zero; components
// are never negative. Callers must recompute on every render tick rather than
// cache the result, since now advances independently of the record.
func Remaining(disbursedAt, now time.Time) Countdown {
	left := disbursedAt.Add(RepaymentWindow).Sub(now)
	if left <= 0 {
		return Countdown{}
	}
	days := int(left / (24 * time.Hour))
	left -= time.Duration(days) * 24 * time.Hour
	hours := int(left / time.Hour)
	left -= time.Duration(hours) * time.Hour
	minutes := int(left / time.Minute)
	return Countdown{Days: days, Hours: hours, Minutes: minutes}
}

// RemainingFor returns the live countdown for a request, or nil when the
// request was never disbursed.
func RemainingFor(l *LoanRequest, now time.Time) *Countdown {
	disbursedAt, ok := l.DisbursedAt()
	if !ok {
		return nil
	}
	c := Remaining(disbursedAt, now)
	return &c
}
