package handler // handler defines HTTP handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/repository"
)

// currentUserID extracts the authenticated user's id placed in context by
// the JWT middleware.
func currentUserID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("user_id").(uint64); ok && v != 0 {
		return v, nil
	}
	return 0, errors.New("no user_id in context")
}

// currentRole extracts the authenticated role from context.
func currentRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// pathID parses the named numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseUint decodes a numeric query parameter.
func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// internalError logs the underlying cause server-side and returns a generic
// 500 to the caller.  Raw error text never reaches the response body.
func internalError(c echo.Context, op string, err error) error {
	log.Printf("%s %s: %s: %v", c.Request().Method, c.Path(), op, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": op + " failed"})
}

// repoError maps the repository sentinels to their HTTP statuses and falls
// back to internalError for anything unexpected.
func repoError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	default:
		return internalError(c, op, err)
	}
}

// parseDate accepts a YYYY-MM-DD string.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// parseDateTime accepts RFC 3339 first and plain date-time second, matching
// what the web client submits.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
