package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/handler"
	"github.com/iliyamo/gym-management/internal/middleware"
)

// RegisterTrainer registers trainer-scoped endpoints under /api/trainer.
// The allow-list is {trainer, admin}.
func RegisterTrainer(e *echo.Echo, h *handler.TrainerHandler, v *handler.VideoHandler, jwtSecret string) {
	g := e.Group(
		"/api/trainer",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("trainer", "admin"),
	)

	g.GET("/profile", h.Profile)
	g.POST("/profile", h.UpsertProfile)

	// The members a trainer works with: students and staff.
	g.GET("/members", h.ListMembers)

	g.GET("/videos", v.ListMine)
	g.POST("/videos", v.Create)

	// Workout plans: one assignee per plan, mutation restricted to the
	// creator or an admin.
	g.GET("/workout-plans", h.ListWorkoutPlans)
	g.POST("/workout-plans", h.CreateWorkoutPlan)
	g.PUT("/workout-plans/:id", h.UpdateWorkoutPlan)
	g.DELETE("/workout-plans/:id", h.DeleteWorkoutPlan)

	// Diet plans: browse every template, assign one to a student.
	g.GET("/diet-plans", h.ListDietPlans)
	g.POST("/assign-diet", h.AssignDiet)

	// Sessions that reference the caller as trainer.
	g.GET("/schedule", h.ListSchedule)
	g.POST("/schedule", h.BookSession)

	g.GET("/medical-records", h.ListMedicalRecords)
	g.POST("/medical-records", h.CreateMedicalRecord)
}
