package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/iliyamo/gym-management/internal/handler"    // handlers implementing the business logic
	"github.com/iliyamo/gym-management/internal/middleware" // JWT + role middlewares
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems hit /healthz to verify that the
	// service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Register, login,
// refresh and logout live under /api/auth and need no existing session;
// /api/auth/profile requires a valid bearer token and is open to every role
// the token can carry, with the response looked up fresh from the store.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked and
	// a new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh token in the body; with only a bearer token
	// it revokes every session of the caller instead.
	g.POST("/logout", a.Logout, middleware.OptionalJWT(jwtSecret))

	g.GET("/profile", a.Profile, middleware.JWTAuth(jwtSecret))
}
