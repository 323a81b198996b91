package loanmock

import (
	"context"

	domain "edfund-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only set the methods a test needs; unset getters fail loudly.
type Repo struct {
	CreateFn         func(ctx context.Context, l *domain.LoanRequest) error
	GetByIDFn        func(ctx context.Context, id string) (*domain.LoanRequest, error)
	ListAllFn        func(ctx context.Context) ([]domain.LoanRequest, error)
	ListByMobileFn   func(ctx context.Context, mobile string) ([]domain.LoanRequest, error)
	LatestByMobileFn func(ctx context.Context, mobile string) (*domain.LoanRequest, error)
	UpdateStatusFn   func(ctx context.Context, id string, from, to domain.Status) error
}

func (m *Repo) Create(ctx context.Context, l *domain.LoanRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.LoanRequest, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.LoanRequest, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByMobile(ctx context.Context, mobile string) ([]domain.LoanRequest, error) {
	if m.ListByMobileFn != nil {
		return m.ListByMobileFn(ctx, mobile)
	}
	return nil, context.Canceled
}

func (m *Repo) LatestByMobile(ctx context.Context, mobile string) (*domain.LoanRequest, error) {
	if m.LatestByMobileFn != nil {
		return m.LatestByMobileFn(ctx, mobile)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, from, to)
	}
	return nil
}
