package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/utils"
)

// rolesEcho mounts one group per role set the way the real routers do, so
// the matrix below exercises the same middleware chain production uses.
func rolesEcho() *echo.Echo {
	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	admin := e.Group("/api/admin", JWTAuth(testSecret), RequireRole("admin"))
	admin.GET("/users", ok)

	staff := e.Group("/api/staff", JWTAuth(testSecret), RequireRole("staff", "admin"))
	staff.GET("/students", ok)

	trainer := e.Group("/api/trainer", JWTAuth(testSecret), RequireRole("trainer", "admin"))
	trainer.GET("/members", ok)

	student := e.Group("/api/student", JWTAuth(testSecret), RequireRole("student", "staff", "admin"))
	student.GET("/videos", ok)

	return e
}

func TestRoleMatrix(t *testing.T) {
	e := rolesEcho()
	cases := []struct {
		role string
		path string
		want int
	}{
		// Admin passes everywhere.
		{"admin", "/api/admin/users", http.StatusOK},
		{"admin", "/api/staff/students", http.StatusOK},
		{"admin", "/api/trainer/members", http.StatusOK},
		{"admin", "/api/student/videos", http.StatusOK},

		// Staff reaches staff and student routes, nothing else.
		{"staff", "/api/admin/users", http.StatusForbidden},
		{"staff", "/api/staff/students", http.StatusOK},
		{"staff", "/api/trainer/members", http.StatusForbidden},
		{"staff", "/api/student/videos", http.StatusOK},

		// Trainer reaches trainer routes only; student routes exclude it.
		{"trainer", "/api/admin/users", http.StatusForbidden},
		{"trainer", "/api/staff/students", http.StatusForbidden},
		{"trainer", "/api/trainer/members", http.StatusOK},
		{"trainer", "/api/student/videos", http.StatusForbidden},

		// Student reaches student routes only.
		{"student", "/api/admin/users", http.StatusForbidden},
		{"student", "/api/staff/students", http.StatusForbidden},
		{"student", "/api/trainer/members", http.StatusForbidden},
		{"student", "/api/student/videos", http.StatusOK},
	}
	for _, tc := range cases {
		tok, err := utils.NewAccessToken(testSecret, 1, tc.role, 60)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("%s on %s: status = %d, want %d", tc.role, tc.path, rec.Code, tc.want)
		}
	}
}

// A valid credential with the wrong role must read as 403, while a missing
// credential on the same route reads as 401.
func TestAuthnVsAuthzDistinct(t *testing.T) {
	e := rolesEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	tok, err := utils.NewAccessToken(testSecret, 1, "student", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("student token: status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	// RequireRole behind no auth middleware sees no role in context and
	// denies rather than letting an anonymous request through.
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, RequireRole("admin"))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
