package mysql

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	loanDomain "edfund-backend/internal/domain/loan"
	watchDomain "edfund-backend/internal/domain/watch"
)

// LoanRepository persists loan requests and broadcasts a table-change signal
// after every successful write. The signal is best-effort: the row is already
// durable, so a failed publish is logged, not returned.
type LoanRepository struct {
	db     *gorm.DB
	broker watchDomain.Broker
}

func NewLoanRepository(db *gorm.DB, broker watchDomain.Broker) *LoanRepository {
	return &LoanRepository{db: db, broker: broker}
}

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.LoanRequest) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return err
	}
	r.notify(ctx)
	return nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (*loanDomain.LoanRequest, error) {
	var out loanDomain.LoanRequest
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.LoanRequest, error) {
	var out []loanDomain.LoanRequest
	res := r.db.WithContext(ctx).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByMobile(ctx context.Context, mobile string) ([]loanDomain.LoanRequest, error) {
	var out []loanDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Where("mobile_number = ?", mobile).
		Order("created_at DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) LatestByMobile(ctx context.Context, mobile string) (*loanDomain.LoanRequest, error) {
	var out loanDomain.LoanRequest
	res := r.db.WithContext(ctx).
		Where("mobile_number = ?", mobile).
		Order("created_at DESC").
		First(&out)
	return &out, res.Error
}

// UpdateStatus is a guarded single-row update: it matches on the expected
// current status so a raced transition affects zero rows instead of
// overwriting. gorm stamps updated_at on the same write, which is what makes
// updated_at the disbursement timestamp when `to` is disbursed.
func (r *LoanRepository) UpdateStatus(ctx context.Context, id string, from, to loanDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.LoanRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrNotFound
	}
	r.notify(ctx)
	return nil
}

func (r *LoanRepository) notify(ctx context.Context) {
	if r.broker == nil {
		return
	}
	if err := r.broker.Publish(ctx); err != nil {
		log.Printf("loan repository: change publish failed: %v", err)
	}
}
