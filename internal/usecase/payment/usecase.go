package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"gorm.io/gorm"

	"edfund-backend/internal/domain/loan"
)

// ErrNotPayable: payment links exist only while a request is disbursed.
var ErrNotPayable = errors.New("loan request is not awaiting repayment")

type Config struct {
	// UPI virtual payment address of the payee, e.g. "edfund@axl".
	Address   string
	PayeeName string
}

type Usecase struct {
	repo loan.Repository
	cfg  Config
}

func NewUsecase(r loan.Repository, cfg Config) *Usecase {
	if cfg.PayeeName == "" {
		cfg.PayeeName = "EdFund"
	}
	return &Usecase{repo: r, cfg: cfg}
}

type LinkDTO struct {
	Amount      float64 `json:"amount"`
	Reference   string  `json:"reference"`
	UPILink     string  `json:"upi_link"`
	PhonePeLink string  `json:"phonepe_link"`
}

// Link builds repayment deep links for a disbursed request. The amount is
// always principal plus the flat surcharge.
func (u *Usecase) Link(ctx context.Context, id string) (*LinkDTO, error) {
	l, err := u.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, loan.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %v", loan.ErrStoreUnavailable, err)
	}
	if l.Status != loan.StatusDisbursed {
		return nil, ErrNotPayable
	}

	amount := l.RepaymentAmount()
	ref := "EDFUND" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	q := url.Values{}
	q.Set("pa", u.cfg.Address)
	q.Set("pn", u.cfg.PayeeName)
	q.Set("am", strconv.FormatFloat(amount, 'f', -1, 64))
	q.Set("tn", "Loan Payment")
	q.Set("tr", ref)
	params := q.Encode()

	return &LinkDTO{
		Amount:      amount,
		Reference:   ref,
		UPILink:     "upi://pay?" + params,
		PhonePeLink: "phonepe://pay?" + params,
	}, nil
}
