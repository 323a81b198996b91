package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-signing-key")

func protectedEcho(secret []byte) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	g := e.Group("/admin", AdminAuth(secret))
	g.GET("/loans", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"admin": c.Get(ContextAdminEmail).(string),
		})
	})
	return e
}

func get(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/loans", nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminAuth_RoundTrip(t *testing.T) {
	token, err := IssueAdminToken(testSecret, "admin@edfund.test", time.Hour)
	if err != nil {
		t.Fatalf("IssueAdminToken: %v", err)
	}

	e := protectedEcho(testSecret)
	rec := get(e, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
	}
	if want := `"admin":"admin@edfund.test"`; !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestAdminAuth_MissingOrMalformedHeader(t *testing.T) {
	e := protectedEcho(testSecret)
	for _, authz := range []string{"", "Basic abc", "Bearer not-a-jwt"} {
		if rec := get(e, authz); rec.Code != http.StatusUnauthorized {
			t.Fatalf("authz %q: code = %d", authz, rec.Code)
		}
	}
}

func TestAdminAuth_WrongKeyAndExpiry(t *testing.T) {
	e := protectedEcho(testSecret)

	other, _ := IssueAdminToken([]byte("other-key"), "admin@edfund.test", time.Hour)
	if rec := get(e, "Bearer "+other); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key accepted: %d", rec.Code)
	}

	expired, _ := IssueAdminToken(testSecret, "admin@edfund.test", -time.Minute)
	if rec := get(e, "Bearer "+expired); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token accepted: %d", rec.Code)
	}
}
