package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"edfund-backend/internal/domain/loan"
	"edfund-backend/internal/metrics"
)

// Usecase applies administrator lifecycle actions. It is the only writer of
// status changes; the applicant surface never reaches it.
type Usecase struct{ repo loan.Repository }

func NewUsecase(r loan.Repository) *Usecase { return &Usecase{repo: r} }

type LoanDTO struct {
	ID            string    `json:"id"`
	ApplicantName string    `json:"applicant_name"`
	MobileNumber  string    `json:"mobile_number"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	AllowedNext   []string  `json:"allowed_next"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Transition moves a request to the target status after validating the edge
// against the lifecycle graph. The store-side guarded update re-checks the
// current status, so two concurrent attempts can never both apply.
func (u *Usecase) Transition(ctx context.Context, id string, target loan.Status) (*LoanDTO, error) {
	l, err := u.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, loan.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %v", loan.ErrStoreUnavailable, err)
	}

	if err := loan.Transition(l.Status, target); err != nil {
		return nil, err
	}

	if err := u.repo.UpdateStatus(ctx, id, l.Status, target); err != nil {
		if errors.Is(err, loan.ErrNotFound) {
			// The row existed a moment ago: its status moved underneath
			// us, so the edge we validated no longer exists.
			return nil, loan.ErrInvalidTransition
		}
		return nil, fmt.Errorf("%w: %v", loan.ErrStoreUnavailable, err)
	}
	metrics.StatusTransitions.WithLabelValues(string(target)).Inc()

	// Re-read for the store-stamped updated_at.
	l, err = u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", loan.ErrStoreUnavailable, err)
	}
	return toDTO(l), nil
}

func toDTO(l *loan.LoanRequest) *LoanDTO {
	next := loan.AllowedNext(l.Status)
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = string(s)
	}
	return &LoanDTO{
		ID:            l.ID,
		ApplicantName: l.ApplicantName,
		MobileNumber:  l.MobileNumber,
		Amount:        l.Amount,
		Status:        string(l.Status),
		AllowedNext:   names,
		UpdatedAt:     l.UpdatedAt,
	}
}
