package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/handler"
	"github.com/iliyamo/gym-management/internal/middleware"
)

// RegisterStaff registers staff-scoped endpoints under /api/staff.  The
// allow-list is {staff, admin}: admins pass everywhere, trainers and
// students are rejected with 403.
func RegisterStaff(e *echo.Echo, h *handler.StaffHandler, v *handler.VideoHandler, jwtSecret string) {
	g := e.Group(
		"/api/staff",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("staff", "admin"),
	)

	// Work profile, created lazily on first write.
	g.GET("/profile", h.Profile)
	g.POST("/profile", h.UpsertProfile)

	// Training videos owned by the caller.  Mutation is owner-or-admin,
	// checked in the handler.
	g.GET("/videos", v.ListMine)
	g.POST("/videos", v.Create)
	g.PUT("/videos/:id", v.Update)
	g.DELETE("/videos/:id", v.Delete)

	// Diet plan templates authored by the caller.
	g.GET("/diet-plans", h.ListDietPlans)
	g.POST("/diet-plans", h.CreateDietPlan)

	// Student roster with embedded profiles.
	g.GET("/students", h.ListStudents)

	// Group activities, department announcements and the faculty roster.
	g.GET("/activities", h.ListActivities)
	g.POST("/activities", h.CreateActivity)
	g.DELETE("/activities/:id", h.DeleteActivity)
	g.GET("/updates", h.ListUpdates)
	g.POST("/updates", h.CreateUpdate)
	g.GET("/faculty", h.ListFaculty)
	g.POST("/faculty", h.AddFaculty)
}
