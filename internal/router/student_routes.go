package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/gym-management/internal/config"
	"github.com/iliyamo/gym-management/internal/handler"
	"github.com/iliyamo/gym-management/internal/middleware"
)

// RegisterStudent registers student-scoped endpoints under /api/student.
// The allow-list is {student, staff, admin}: staff supervise student-facing
// data, admins pass everywhere, and trainers are deliberately excluded so a
// trainer token on a student route gets 403, not 401.
//
// Read-only directory GETs additionally run through the Redis response
// cache when one is configured; rdb may be nil, which disables caching.
func RegisterStudent(e *echo.Echo, h *handler.StudentHandler, cacheCfg config.CacheConfig, rdb *redis.Client, jwtSecret string) {
	g := e.Group(
		"/api/student",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("student", "staff", "admin"),
	)

	// Fitness profile.  GET reports profile_status instead of 404-ing a
	// student who simply has not filled it in yet; POST is the only path
	// that creates the row.
	g.GET("/profile", h.Profile)
	g.POST("/profile", h.UpsertProfile)

	// Attendance: idempotent check-in per calendar date.
	g.GET("/attendance", h.ListAttendance)
	g.POST("/attendance", h.CheckIn)
	g.GET("/progress", h.Progress)

	// Read-only directories, cached per user.
	cached := middleware.CacheGET(cacheCfg, rdb)
	g.GET("/videos", h.ListVideos, cached)
	g.GET("/diet-plans", h.ListDietPlans, cached)
	g.GET("/my-diet-plans", h.MyDietPlans)
	g.GET("/equipment", h.ListEquipment, cached)
	g.GET("/trainers", h.ListTrainers, cached)
	g.GET("/schedule", h.ListSchedule)

	g.GET("/notifications", h.ListNotifications)
	g.PUT("/notifications/:id/read", h.MarkNotificationRead)
}
