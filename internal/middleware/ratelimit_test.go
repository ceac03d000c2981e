package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/config"
	"github.com/iliyamo/gym-management/internal/utils"
)

func TestRateKeyAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/student/videos", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/student/videos")

	key := rateKey("rl", c)
	if !strings.Contains(key, ":anon:") {
		t.Errorf("key = %q, want anonymous bucket", key)
	}
	if !strings.HasSuffix(key, "GET /api/student/videos") {
		t.Errorf("key = %q, want method and route suffix", key)
	}
}

func TestRateKeyAuthenticatedUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/student/videos", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/student/videos")
	c.Set("user_id", uint64(42))

	key := rateKey("rl", c)
	if !strings.Contains(key, ":42:") {
		t.Errorf("key = %q, want per-user bucket for 42", key)
	}
	if strings.Contains(key, ":anon:") {
		t.Errorf("key = %q, authenticated request fell into the anonymous bucket", key)
	}
}

// The limiter runs behind OptionalJWT, so a valid bearer token must reach it
// with the user claims already set.  Otherwise every caller would share one
// anonymous bucket.
func TestRateKeySeesOptionalJWTClaims(t *testing.T) {
	var key string
	capture := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key = rateKey("rl", c)
			return next(c)
		}
	}
	e := echo.New()
	e.Use(OptionalJWT(testSecret), capture)
	e.GET("/api/auth/profile", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	tok, err := utils.NewAccessToken(testSecret, 7, "student", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	e.ServeHTTP(httptest.NewRecorder(), req)
	if !strings.Contains(key, ":7:") {
		t.Errorf("key = %q, want per-user bucket for 7", key)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)
	if !strings.Contains(key, ":anon:") {
		t.Errorf("key = %q, want anonymous bucket without a token", key)
	}
}

func TestRateLimitDisabledIsNoOp(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(config.RateLimitConfig{Enabled: false}, nil))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "" {
		t.Errorf("disabled limiter set rate-limit headers")
	}
}
