package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/config"
)

// jsonContext builds an Echo context carrying a JSON body and, when claims
// is non-nil, the identity the JWT middleware would have injected.  The
// validation paths exercised here reject the request before any repository
// call, so the handlers run safely with nil repositories.
func jsonContext(t *testing.T, method, path, body string, claims map[string]any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	for k, v := range claims {
		c.Set(k, v)
	}
	return c, rec
}

func studentClaims() map[string]any {
	return map[string]any{"user_id": uint64(1), "role": "student"}
}

func newTestAuthHandler() *AuthHandler {
	return NewAuthHandler(config.Config{JWTSecret: "test-secret", AccessTTLMin: 60, RefreshTTLDays: 1, BcryptCost: 4}, nil, nil)
}

func TestRegisterMissingFields(t *testing.T) {
	h := newTestAuthHandler()
	for _, body := range []string{
		`{}`,
		`{"name":"A","email":"a@b.c"}`,
		`{"name":"A","password":"pw"}`,
		`{"email":"a@b.c","password":"pw"}`,
	} {
		c, rec := jsonContext(t, http.MethodPost, "/api/auth/register", body, nil)
		if err := h.Register(c); err != nil {
			t.Fatalf("Register(%s): %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Register(%s) status = %d, want 400", body, rec.Code)
		}
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	h := newTestAuthHandler()
	body := `{"name":"A","email":"a@b.c","password":"pw","role":"superuser"}`
	c, rec := jsonContext(t, http.MethodPost, "/api/auth/register", body, nil)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	h := newTestAuthHandler()
	c, rec := jsonContext(t, http.MethodPost, "/api/auth/login", `{"email":"a@b.c"}`, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRefreshMissingToken(t *testing.T) {
	h := newTestAuthHandler()
	c, rec := jsonContext(t, http.MethodPost, "/api/auth/refresh", `{}`, nil)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
