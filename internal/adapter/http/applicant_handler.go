package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"edfund-backend/internal/usecase/intake"
	"edfund-backend/internal/usecase/payment"
	watchuc "edfund-backend/internal/usecase/watch"
)

// ApplicantHandler serves the public applicant surface: apply, look up own
// records, top up, and fetch repayment links.
type ApplicantHandler struct {
	intake  *intake.Usecase
	watch   *watchuc.Usecase
	payment *payment.Usecase
}

func NewApplicantHandler(in *intake.Usecase, w *watchuc.Usecase, p *payment.Usecase) *ApplicantHandler {
	return &ApplicantHandler{intake: in, watch: w, payment: p}
}

type applyReq struct {
	ApplicantName string  `json:"applicant_name" validate:"required"`
	MobileNumber  string  `json:"mobile_number"  validate:"required"`
	PANNumber     string  `json:"pan_number"     validate:"required"`
	AadhaarNumber string  `json:"aadhaar_number" validate:"required"`
	Amount        float64 `json:"amount"         validate:"gte=0"`
	Purpose       string  `json:"purpose"`
}

func (h *ApplicantHandler) Apply(c echo.Context) error {
	var req applyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.intake.Apply(c.Request().Context(), intake.ApplyInput(req))
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type topUpReq struct {
	MobileNumber string  `json:"mobile_number" validate:"required"`
	Amount       float64 `json:"amount"        validate:"required,gt=0"`
	Purpose      string  `json:"purpose"`
}

func (h *ApplicantHandler) TopUp(c echo.Context) error {
	var req topUpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.intake.TopUp(c.Request().Context(), intake.TopUpInput(req))
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Lookup is the one-shot scoped search: every record for a mobile number,
// most recent first.
func (h *ApplicantHandler) Lookup(c echo.Context) error {
	mobile, err := intake.NormalizeMobile(c.QueryParam("mobile"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mobile must be a 10-digit number"})
	}
	snap, err := h.watch.Snapshot(c.Request().Context(), watchuc.ScopeByMobile(mobile))
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable, please retry"})
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *ApplicantHandler) PaymentLink(c echo.Context) error {
	dto, err := h.payment.Link(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
