package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"edfund-backend/internal/domain/loan"
	"edfund-backend/internal/usecase/intake"
	"edfund-backend/internal/usecase/payment"
)

// writeUsecaseError maps domain/usecase errors onto HTTP codes. Validation
// failures carry their per-field details; everything else is a single
// message. Store failures are 503 so the client knows a retry may help.
func writeUsecaseError(c echo.Context, err error) error {
	var verrs intake.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{Field: fe.Field, Message: fe.Message})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: details,
		})
	}

	switch {
	case errors.Is(err, loan.ErrNotFound), errors.Is(err, intake.ErrNoProfile):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrInvalidTransition), errors.Is(err, payment.ErrNotPayable):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable, please retry"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
