package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, mw...)
	return e
}

func doGet(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body["error"]
}

func TestJWTAuthMissingToken(t *testing.T) {
	e := protectedEcho(JWTAuth(testSecret))
	rec := doGet(e, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "missing bearer token" {
		t.Errorf("error = %q, want missing bearer token", msg)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 1, "student", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	e := protectedEcho(JWTAuth(testSecret))
	rec := doGet(e, tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "token expired" {
		t.Errorf("error = %q, want token expired", msg)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 1, "student", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	e := protectedEcho(JWTAuth(testSecret))
	for _, raw := range []string{"garbage", tok.Token} {
		rec := doGet(e, raw)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "invalid token" {
			t.Errorf("error = %q, want invalid token", msg)
		}
	}
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 99, "admin", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	e := protectedEcho(JWTAuth(testSecret))
	rec := doGet(e, tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["user_id"].(float64) != 99 {
		t.Errorf("user_id = %v, want 99", body["user_id"])
	}
	if body["role"] != "admin" {
		t.Errorf("role = %v, want admin", body["role"])
	}
}

func TestOptionalJWT(t *testing.T) {
	e := protectedEcho(OptionalJWT(testSecret))

	// Without a token the request still goes through, just anonymous.
	rec := doGet(e, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status without token = %d, want 200", rec.Code)
	}

	tok, err := utils.NewAccessToken(testSecret, 5, "staff", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec = doGet(e, tok.Token)
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["role"] != "staff" {
		t.Errorf("role = %v, want staff", body["role"])
	}
}
