package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"edfund-backend/internal/adapter/middleware"
	"edfund-backend/internal/domain/loan"
	"edfund-backend/internal/usecase/review"
	watchuc "edfund-backend/internal/usecase/watch"
)

// AdminConfig carries the expected credential pair and token settings into
// the login gate. Purely an external gate: the lifecycle core never sees it.
type AdminConfig struct {
	Email    string
	Password string
	Secret   []byte
	TokenTTL time.Duration
}

type AdminHandler struct {
	review *review.Usecase
	watch  *watchuc.Usecase
	cfg    AdminConfig
}

func NewAdminHandler(r *review.Usecase, w *watchuc.Usecase, cfg AdminConfig) *AdminHandler {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	return &AdminHandler{review: r, watch: w, cfg: cfg}
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	if !strings.EqualFold(strings.TrimSpace(req.Email), h.cfg.Email) || req.Password != h.cfg.Password {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	}

	token, err := middleware.IssueAdminToken(h.cfg.Secret, h.cfg.Email, h.cfg.TokenTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not issue token"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token":      token,
		"expires_in": int(h.cfg.TokenTTL.Seconds()),
	})
}

// List returns every record plus the dashboard tallies.
func (h *AdminHandler) List(c echo.Context) error {
	snap, err := h.watch.Snapshot(c.Request().Context(), watchuc.ScopeAll())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable, please retry"})
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *AdminHandler) Approve(c echo.Context) error {
	return h.transition(c, loan.StatusApproved)
}

func (h *AdminHandler) Reject(c echo.Context) error {
	return h.transition(c, loan.StatusRejected)
}

func (h *AdminHandler) Disburse(c echo.Context) error {
	return h.transition(c, loan.StatusDisbursed)
}

// Complete records the administrator's manual assertion that repayment was
// received; no settlement is verified.
func (h *AdminHandler) Complete(c echo.Context) error {
	return h.transition(c, loan.StatusCompleted)
}

func (h *AdminHandler) transition(c echo.Context, target loan.Status) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing id path param"})
	}
	dto, err := h.review.Transition(c.Request().Context(), id, target)
	if err != nil {
		return writeUsecaseError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
