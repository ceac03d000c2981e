package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/handler"
	"github.com/iliyamo/gym-management/internal/middleware"
)

// RegisterAdmin registers admin-scoped endpoints under /api/admin.  Every
// route requires a valid JWT and the admin role; the allow-list contains
// exactly {admin}, so no other role reaches these handlers.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)

	// User administration.
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)

	// Equipment inventory.
	g.GET("/equipment", h.ListEquipment)
	g.POST("/equipment", h.CreateEquipment)
	g.GET("/equipment/:id", h.GetEquipment)
	g.PUT("/equipment/:id", h.UpdateEquipment)
	g.DELETE("/equipment/:id", h.DeleteEquipment)

	// Trainer directory and dashboard counts.
	g.GET("/trainers", h.ListTrainers)
	g.GET("/stats", h.Stats)
}
