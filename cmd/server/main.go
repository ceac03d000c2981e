package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/config"
	"github.com/iliyamo/gym-management/internal/database"
	"github.com/iliyamo/gym-management/internal/handler"
	"github.com/iliyamo/gym-management/internal/middleware"
	"github.com/iliyamo/gym-management/internal/queue"
	"github.com/iliyamo/gym-management/internal/repository"
	"github.com/iliyamo/gym-management/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Repositories over the shared pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	profiles := repository.NewProfileRepo(db)
	trainers := repository.NewTrainerRepo(db)
	equipment := repository.NewEquipmentRepo(db)
	videos := repository.NewVideoRepo(db)
	dietPlans := repository.NewDietPlanRepo(db)
	workoutPlans := repository.NewWorkoutPlanRepo(db)
	attendance := repository.NewAttendanceRepo(db)
	medical := repository.NewMedicalRecordRepo(db)
	notifications := repository.NewNotificationRepo(db)
	schedules := repository.NewScheduleRepo(db)
	activities := repository.NewActivityRepo(db)
	updates := repository.NewUpdateRepo(db)
	faculty := repository.NewFacultyRepo(db)

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	// OptionalJWT runs first so the limiter buckets authenticated traffic
	// per user; requests without a valid bearer share the anonymous bucket.
	e.Use(
		middleware.OptionalJWT(cfg.JWTSecret),
		middleware.RateLimit(config.LoadRateLimitConfig(), rdb),
	)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	adminH := handler.NewAdminHandler(users, equipment, trainers)
	staffH := handler.NewStaffHandler(trainers, dietPlans, profiles, activities, updates, faculty)
	trainerH := handler.NewTrainerHandler(users, trainers, workoutPlans, dietPlans, schedules, medical)
	studentH := handler.NewStudentHandler(profiles, attendance, videos, dietPlans, equipment, trainers, schedules, notifications)
	videoH := handler.NewVideoHandler(videos)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)
	router.RegisterStaff(e, staffH, videoH, cfg.JWTSecret)
	router.RegisterTrainer(e, trainerH, videoH, cfg.JWTSecret)
	router.RegisterStudent(e, studentH, config.LoadCacheConfig(), rdb, cfg.JWTSecret)

	// Background consumer turning queued events into notification rows.  It
	// reconnects on its own; a missing broker never blocks startup.
	go queue.StartNotificationConsumer(notifications)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
