package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"edfund-backend/internal/usecase/intake"
	watchuc "edfund-backend/internal/usecase/watch"
)

// WatchHandler streams live snapshots over SSE. One subscription per open
// request; closing the connection cancels the request context, which
// releases the change listener.
type WatchHandler struct {
	uc *watchuc.Usecase
}

func NewWatchHandler(uc *watchuc.Usecase) *WatchHandler { return &WatchHandler{uc: uc} }

// ApplicantWatch streams the records for one mobile number.
func (h *WatchHandler) ApplicantWatch(c echo.Context) error {
	mobile, err := intake.NormalizeMobile(c.QueryParam("mobile"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mobile must be a 10-digit number"})
	}
	return h.stream(c, watchuc.ScopeByMobile(mobile))
}

// AdminWatch streams every record.
func (h *WatchHandler) AdminWatch(c echo.Context) error {
	return h.stream(c, watchuc.ScopeAll())
}

func (h *WatchHandler) stream(c echo.Context, scope watchuc.Scope) error {
	ctx := c.Request().Context()
	snapshots, err := h.uc.Subscribe(ctx, scope)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "could not subscribe to changes"})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for snap := range snapshots {
		if snap.Err != nil {
			payload, _ := json.Marshal(map[string]string{"error": snap.Err.Error()})
			fmt.Fprintf(res, "event: error\ndata: %s\n\n", payload)
			res.Flush()
			continue
		}
		payload, err := json.Marshal(snap)
		if err != nil {
			continue
		}
		fmt.Fprintf(res, "event: snapshot\ndata: %s\n\n", payload)
		res.Flush()
	}
	return nil
}
