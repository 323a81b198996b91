package loan

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDisbursed Status = "disbursed"
	StatusCompleted Status = "completed"
)

// LoanRequest is one loan application tracked through its status lifecycle.
// A mobile number may own any number of requests; a top-up inserts a new row
// rather than mutating an existing one.
type LoanRequest struct {
	ID            string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	ApplicantName string    `gorm:"column:applicant_name;size:120;not null" json:"applicant_name"`
	MobileNumber  string    `gorm:"column:mobile_number;size:10;index:idx_loan_requests_mobile;not null" json:"mobile_number"`
	PANNumber     string    `gorm:"column:pan_number;size:10;not null" json:"pan_number"`
	AadhaarNumber string    `gorm:"column:aadhaar_number;size:12;not null" json:"aadhaar_number"`
	Amount        float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Purpose       string    `gorm:"column:purpose;type:text" json:"purpose,omitempty"`
	Status        Status    `gorm:"column:status;type:enum('pending','approved','rejected','disbursed','completed');default:'pending'" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LoanRequest) TableName() string { return "loan_requests" }

// RepaymentSurcharge is the flat fee added to the principal on repayment.
const RepaymentSurcharge = 10

// RepaymentAmount is computed on demand, never stored.
func (l *LoanRequest) RepaymentAmount() float64 { return l.Amount + RepaymentSurcharge }

// DisbursedAt reports the disbursement instant. updated_at is refreshed on
// every status change, so while the status is disbursed it doubles as the
// moment of disbursement and anchors the repayment window.
func (l *LoanRequest) DisbursedAt() (time.Time, bool) {
	if l.Status != StatusDisbursed {
		return time.Time{}, false
	}
	return l.UpdatedAt, true
}
