package middleware // middleware contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request context.
// The provided secret must match the one used when issuing tokens.
// Handlers behind this middleware read the authenticated identity via
// c.Get("user_id") (uint64) and c.Get("role") (string).
//
// The three authentication failure shapes stay distinct so clients can tell
// them apart: no/garbled header, expired token, bad token.  Authorization
// failures (wrong role) are not handled here; RequireRole returns 403 for
// those so a genuine token problem is never conflated with an insufficient
// role.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// OptionalJWT injects the identity claims when a valid bearer token is
// present but lets the request through either way.  It runs globally ahead
// of the rate limiter so buckets key per authenticated user, and logout
// uses it: a refresh token in the body needs no session, while a bare
// bearer token identifies whose sessions to revoke.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				raw := strings.TrimPrefix(auth, "Bearer ")
				if claims, err := utils.VerifyAccessToken(secret, raw); err == nil {
					c.Set("user_id", claims.UserID)
					c.Set("role", claims.Role)
				}
			}
			return next(c)
		}
	}
}
