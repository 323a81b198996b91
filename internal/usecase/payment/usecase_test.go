package payment

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"gorm.io/gorm"

	domain "edfund-backend/internal/domain/loan"
	"edfund-backend/internal/testutil/loanmock"
)

func repoWithStatus(status domain.Status) *loanmock.Repo {
	return &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.LoanRequest, error) {
			if id != "known" {
				return nil, gorm.ErrRecordNotFound
			}
			return &domain.LoanRequest{ID: "known", Amount: 500, Status: status}, nil
		},
	}
}

func TestLink_DisbursedRecord(t *testing.T) {
	uc := NewUsecase(repoWithStatus(domain.StatusDisbursed), Config{Address: "edfund@axl", PayeeName: "EdFund"})

	dto, err := uc.Link(context.Background(), "known")
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if dto.Amount != 510 {
		t.Fatalf("amount = %v, want principal plus surcharge", dto.Amount)
	}
	if !strings.HasPrefix(dto.UPILink, "upi://pay?") || !strings.HasPrefix(dto.PhonePeLink, "phonepe://pay?") {
		t.Fatalf("links = %q / %q", dto.UPILink, dto.PhonePeLink)
	}
	if !strings.HasPrefix(dto.Reference, "EDFUND") {
		t.Fatalf("reference = %q", dto.Reference)
	}

	q, err := url.ParseQuery(strings.TrimPrefix(dto.UPILink, "upi://pay?"))
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if q.Get("pa") != "edfund@axl" || q.Get("am") != "510" || q.Get("tr") != dto.Reference {
		t.Fatalf("query = %v", q)
	}
}

func TestLink_OnlyWhileDisbursed(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusCompleted} {
		uc := NewUsecase(repoWithStatus(status), Config{Address: "edfund@axl"})
		_, err := uc.Link(context.Background(), "known")
		if !errors.Is(err, ErrNotPayable) {
			t.Fatalf("%s: err = %v, want ErrNotPayable", status, err)
		}
	}
}

func TestLink_NotFound(t *testing.T) {
	uc := NewUsecase(repoWithStatus(domain.StatusDisbursed), Config{Address: "edfund@axl"})
	_, err := uc.Link(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
