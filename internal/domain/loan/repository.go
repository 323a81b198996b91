package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *LoanRequest) error
	GetByID(ctx context.Context, id string) (*LoanRequest, error)
	// ListAll and ListByMobile return records ordered created_at descending.
	ListAll(ctx context.Context) ([]LoanRequest, error)
	ListByMobile(ctx context.Context, mobile string) ([]LoanRequest, error)
	LatestByMobile(ctx context.Context, mobile string) (*LoanRequest, error)
	// UpdateStatus persists the new status iff the row still holds `from`,
	// refreshing updated_at as part of the same write. Zero matched rows
	// surface as ErrNotFound so a raced transition can never double-apply.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}
