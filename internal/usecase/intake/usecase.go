package intake

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"edfund-backend/internal/domain/loan"
	"edfund-backend/internal/metrics"
)

// ErrNoProfile: a top-up needs a prior record for the mobile number to copy
// identity fields from.
var ErrNoProfile = errors.New("no existing application for this mobile number")

// FieldError names the failing input field so the caller can point at it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + " " + e.Message }

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	reNonDigit = regexp.MustCompile(`\D`)
	rePAN      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

type Usecase struct{ repo loan.Repository }

func NewUsecase(r loan.Repository) *Usecase { return &Usecase{repo: r} }

type ApplyInput struct {
	ApplicantName string  `json:"applicant_name"`
	MobileNumber  string  `json:"mobile_number"`
	PANNumber     string  `json:"pan_number"`
	AadhaarNumber string  `json:"aadhaar_number"`
	Amount        float64 `json:"amount"`
	Purpose       string  `json:"purpose"`
}

type TopUpInput struct {
	MobileNumber string  `json:"mobile_number"`
	Amount       float64 `json:"amount"`
	Purpose      string  `json:"purpose"`
}

type LoanDTO struct {
	ID            string    `json:"id"`
	ApplicantName string    `json:"applicant_name"`
	MobileNumber  string    `json:"mobile_number"`
	PANNumber     string    `json:"pan_number"`
	AadhaarNumber string    `json:"aadhaar_number"`
	Amount        float64   `json:"amount"`
	Purpose       string    `json:"purpose,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NormalizeMobile strips non-digits and demands exactly 10 of them.
func NormalizeMobile(raw string) (string, error) {
	m := reNonDigit.ReplaceAllString(raw, "")
	if len(m) != 10 {
		return "", FieldError{Field: "mobile_number", Message: "must be exactly 10 digits"}
	}
	return m, nil
}

// Normalize cleans identity fields and validates them, reporting every
// failing field rather than stopping at the first.
func Normalize(in ApplyInput) (ApplyInput, ValidationErrors) {
	var errs ValidationErrors

	in.ApplicantName = strings.TrimSpace(in.ApplicantName)
	if in.ApplicantName == "" {
		errs = append(errs, FieldError{Field: "applicant_name", Message: "must not be empty"})
	}

	mobile, err := NormalizeMobile(in.MobileNumber)
	if err != nil {
		errs = append(errs, err.(FieldError))
	} else {
		in.MobileNumber = mobile
	}

	in.PANNumber = strings.ToUpper(strings.TrimSpace(in.PANNumber))
	if !rePAN.MatchString(in.PANNumber) {
		errs = append(errs, FieldError{Field: "pan_number", Message: "must match AAAAA9999A"})
	}

	in.AadhaarNumber = reNonDigit.ReplaceAllString(in.AadhaarNumber, "")
	if len(in.AadhaarNumber) != 12 {
		errs = append(errs, FieldError{Field: "aadhaar_number", Message: "must be exactly 12 digits"})
	}

	if in.Amount < 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "must not be negative"})
	}
	in.Purpose = strings.TrimSpace(in.Purpose)

	return in, errs
}

// Apply creates a new application. Amount zero is the profile-only path: the
// applicant registers identity first and requests an amount later via TopUp.
// Every record starts at pending; no other initial status exists.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	in, errs := Normalize(in)
	if len(errs) > 0 {
		return nil, errs
	}

	l := &loan.LoanRequest{
		ApplicantName: in.ApplicantName,
		MobileNumber:  in.MobileNumber,
		PANNumber:     in.PANNumber,
		AadhaarNumber: in.AadhaarNumber,
		Amount:        in.Amount,
		Purpose:       in.Purpose,
		Status:        loan.StatusPending,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("%w: %v", loan.ErrStoreUnavailable, err)
	}
	metrics.ApplicationsCreated.Inc()
	return toDTO(l), nil
}

// TopUp inserts a new pending record for an existing applicant, copying
// identity fields from their most recent record. Amount is never mutated on
// an existing row; each request is its own record.
func (u *Usecase) TopUp(ctx context.Context, in TopUpInput) (*LoanDTO, error) {
	mobile, err := NormalizeMobile(in.MobileNumber)
	if err != nil {
		return nil, ValidationErrors{err.(FieldError)}
	}
	if in.Amount <= 0 {
		return nil, ValidationErrors{{Field: "amount", Message: "must be a positive number"}}
	}

	prior, err := u.repo.LatestByMobile(ctx, mobile)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNoProfile
	case err != nil:
		return nil, fmt.Errorf("%w: %v", loan.ErrStoreUnavailable, err)
	}

	l := &loan.LoanRequest{
		ApplicantName: prior.ApplicantName,
		MobileNumber:  mobile,
		PANNumber:     prior.PANNumber,
		AadhaarNumber: prior.AadhaarNumber,
		Amount:        in.Amount,
		Purpose:       strings.TrimSpace(in.Purpose),
		Status:        loan.StatusPending,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("%w: %v", loan.ErrStoreUnavailable, err)
	}
	metrics.ApplicationsCreated.Inc()
	return toDTO(l), nil
}

func toDTO(l *loan.LoanRequest) *LoanDTO {
	return &LoanDTO{
		ID:            l.ID,
		ApplicantName: l.ApplicantName,
		MobileNumber:  l.MobileNumber,
		PANNumber:     l.PANNumber,
		AadhaarNumber: l.AadhaarNumber,
		Amount:        l.Amount,
		Purpose:       l.Purpose,
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt,
	}
}
