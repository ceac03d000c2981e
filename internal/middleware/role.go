package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the authenticated user
// holds one of the listed roles.  Each route group declares its own explicit
// allow-list: the role sets in this API are not uniformly nested (student
// routes admit staff but not trainer, for example), so membership in the set
// is the whole policy and no rank comparison exists anywhere.  It assumes
// JWTAuth has already stored the role in context; a request that reaches
// this point carries a valid credential, so a miss here is 403, never 401.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
