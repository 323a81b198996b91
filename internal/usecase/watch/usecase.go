package watch

import (
	"context"
	"time"

	"edfund-backend/internal/domain/loan"
	domainwatch "edfund-backend/internal/domain/watch"
	"edfund-backend/internal/metrics"
)

// Scope selects which records a viewer's snapshots reflect. The zero value
// is the administrator scope (all records).
type Scope struct {
	Mobile string
}

func ScopeAll() Scope                 { return Scope{} }
func ScopeByMobile(mobile string) Scope { return Scope{Mobile: mobile} }

// RecordView is one record as a viewer sees it: stored fields plus the
// derived repayment amount and, for disbursed records, the live countdown.
type RecordView struct {
	ID              string          `json:"id"`
	ApplicantName   string          `json:"applicant_name"`
	MobileNumber    string          `json:"mobile_number"`
	MaskedMobile    string          `json:"masked_mobile"`
	PANNumber       string          `json:"pan_number"`
	AadhaarNumber   string          `json:"aadhaar_number"`
	Amount          float64         `json:"amount"`
	RepaymentAmount float64         `json:"repayment_amount"`
	Purpose         string          `json:"purpose,omitempty"`
	Status          string          `json:"status"`
	AllowedNext     []string        `json:"allowed_next"`
	Countdown       *loan.Countdown `json:"countdown,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Totals are the admin dashboard tallies.
type Totals struct {
	Pending        int     `json:"pending"`
	Approved       int     `json:"approved"`
	Rejected       int     `json:"rejected"`
	Disbursed      int     `json:"disbursed"`
	Completed      int     `json:"completed"`
	TotalDisbursed float64 `json:"total_disbursed"`
}

// Snapshot is one full scoped result, most recent application first. A
// failed refetch is delivered with Err set rather than dropped.
type Snapshot struct {
	Records []RecordView `json:"records"`
	Totals  Totals       `json:"totals"`
	Err     error        `json:"-"`
}

type Usecase struct {
	repo   loan.Repository
	broker domainwatch.Broker
	tick   time.Duration
}

// NewUsecase builds the synchronizer. tick is how often an idle subscription
// re-emits so displayed countdowns keep moving; zero means once a minute.
func NewUsecase(repo loan.Repository, broker domainwatch.Broker, tick time.Duration) *Usecase {
	if tick <= 0 {
		tick = time.Minute
	}
	return &Usecase{repo: repo, broker: broker, tick: tick}
}

// Snapshot performs one scoped fetch. Also serves the one-shot lookup
// surfaces (admin list, applicant search).
func (u *Usecase) Snapshot(ctx context.Context, scope Scope) (*Snapshot, error) {
	var (
		records []loan.LoanRequest
		err     error
	)
	if scope.Mobile == "" {
		records, err = u.repo.ListAll(ctx)
	} else {
		records, err = u.repo.ListByMobile(ctx, scope.Mobile)
	}
	if err != nil {
		return nil, err
	}
	return build(records, time.Now().UTC()), nil
}

// Subscribe emits the initial scoped snapshot, then a fresh one on every
// table-change signal and on each tick. Cancelling ctx releases the change
// listener and closes the channel; a fetch that completes after cancellation
// is discarded, never delivered.
func (u *Usecase) Subscribe(ctx context.Context, scope Scope) (<-chan Snapshot, error) {
	sub, err := u.broker.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	metrics.WatchSubscriptions.Inc()

	out := make(chan Snapshot, 1)
	go func() {
		defer func() {
			sub.Release()
			close(out)
			metrics.WatchSubscriptions.Dec()
		}()

		ticker := time.NewTicker(u.tick)
		defer ticker.Stop()

		emit := func() bool {
			snap, err := u.Snapshot(ctx, scope)
			if ctx.Err() != nil {
				return false
			}
			if err != nil {
				snap = &Snapshot{Err: err}
			}
			select {
			case out <- *snap:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.Changes():
				if !emit() {
					return
				}
			case <-ticker.C:
				if !emit() {
					return
				}
			}
		}
	}()
	return out, nil
}

func build(records []loan.LoanRequest, now time.Time) *Snapshot {
	snap := &Snapshot{Records: make([]RecordView, 0, len(records))}
	for i := range records {
		l := &records[i]
		next := loan.AllowedNext(l.Status)
		names := make([]string, len(next))
		for j, s := range next {
			names[j] = string(s)
		}
		snap.Records = append(snap.Records, RecordView{
			ID:              l.ID,
			ApplicantName:   l.ApplicantName,
			MobileNumber:    l.MobileNumber,
			MaskedMobile:    MaskMobile(l.MobileNumber),
			PANNumber:       l.PANNumber,
			AadhaarNumber:   l.AadhaarNumber,
			Amount:          l.Amount,
			RepaymentAmount: l.RepaymentAmount(),
			Purpose:         l.Purpose,
			Status:          string(l.Status),
			AllowedNext:     names,
			Countdown:       loan.RemainingFor(l, now),
			CreatedAt:       l.CreatedAt,
			UpdatedAt:       l.UpdatedAt,
		})

		switch l.Status {
		case loan.StatusPending:
			snap.Totals.Pending++
		case loan.StatusApproved:
			snap.Totals.Approved++
		case loan.StatusRejected:
			snap.Totals.Rejected++
		case loan.StatusDisbursed:
			snap.Totals.Disbursed++
			snap.Totals.TotalDisbursed += l.Amount
		case loan.StatusCompleted:
			snap.Totals.Completed++
			snap.Totals.TotalDisbursed += l.Amount
		}
	}
	return snap
}

// MaskMobile keeps only the last four digits for applicant-facing rendering.
func MaskMobile(mobile string) string {
	if len(mobile) < 4 {
		return "****"
	}
	return "****" + mobile[len(mobile)-4:]
}
