package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/gym-management/internal/config"
	"github.com/iliyamo/gym-management/internal/database"
	"github.com/iliyamo/gym-management/internal/model"
	"github.com/iliyamo/gym-management/internal/repository"
	"github.com/iliyamo/gym-management/internal/utils"
)

// openTestDB connects to the database named by TEST_DB_DSN and applies the
// schema.  Without the variable the mutation tests below are skipped so the
// default `go test ./...` run stays hermetic.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping database-backed test")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, users *repository.UserRepo, role string) model.User {
	t.Helper()
	u := model.User{
		Name:  "Test " + role,
		Email: fmt.Sprintf("%s-%d@test.local", role, time.Now().UnixNano()),
		Role:  role,
	}
	id, err := users.Create(context.Background(), &u, "password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}
	u.ID = id
	t.Cleanup(func() { _ = users.Delete(context.Background(), id) })
	return u
}

func claimsFor(u model.User) map[string]any {
	return map[string]any{"user_id": u.ID, "role": u.Role}
}

// Editing or deleting a workout plan requires being its creator or an admin.
// Another trainer holds a perfectly valid token, so the rejection must be
// 403, and the row must be untouched.
func TestWorkoutPlanMutationCreatorOrAdmin(t *testing.T) {
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	plans := repository.NewWorkoutPlanRepo(db)
	ctx := context.Background()

	creator := seedUser(t, users, model.RoleTrainer)
	other := seedUser(t, users, model.RoleTrainer)
	admin := seedUser(t, users, model.RoleAdmin)
	student := seedUser(t, users, model.RoleStudent)

	plan := model.WorkoutPlan{Title: "Base strength", CreatedBy: creator.ID, AssignedTo: student.ID}
	if err := plans.Create(ctx, &plan); err != nil {
		t.Fatalf("create plan: %v", err)
	}

	h := NewTrainerHandler(users, nil, plans, nil, nil, nil)
	planID := strconv.FormatUint(plan.ID, 10)
	update := func(u model.User) int {
		c, rec := jsonContext(t, http.MethodPut, "/api/trainer/workout-plans/"+planID,
			`{"title":"Hijacked"}`, claimsFor(u))
		c.SetParamNames("id")
		c.SetParamValues(planID)
		if err := h.UpdateWorkoutPlan(c); err != nil {
			t.Fatalf("UpdateWorkoutPlan as %s: %v", u.Role, err)
		}
		return rec.Code
	}

	if code := update(other); code != http.StatusForbidden {
		t.Errorf("update by non-creator trainer = %d, want 403", code)
	}
	got, err := plans.GetByID(ctx, plan.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Base strength" {
		t.Errorf("rejected update still changed title to %q", got.Title)
	}

	if code := update(creator); code != http.StatusOK {
		t.Errorf("update by creator = %d, want 200", code)
	}
	if code := update(admin); code != http.StatusOK {
		t.Errorf("update by admin = %d, want 200", code)
	}

	del := func(u model.User) int {
		c, rec := jsonContext(t, http.MethodDelete, "/api/trainer/workout-plans/"+planID, "", claimsFor(u))
		c.SetParamNames("id")
		c.SetParamValues(planID)
		if err := h.DeleteWorkoutPlan(c); err != nil {
			t.Fatalf("DeleteWorkoutPlan as %s: %v", u.Role, err)
		}
		return rec.Code
	}
	if code := del(other); code != http.StatusForbidden {
		t.Errorf("delete by non-creator trainer = %d, want 403", code)
	}
	if _, err := plans.GetByID(ctx, plan.ID); err != nil {
		t.Fatalf("plan gone after rejected delete: %v", err)
	}
	if code := del(admin); code != http.StatusNoContent {
		t.Errorf("delete by admin = %d, want 204", code)
	}
}

// Training videos follow the same rule: only the uploader or an admin may
// mutate one.
func TestVideoMutationOwnerOrAdmin(t *testing.T) {
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	videos := repository.NewVideoRepo(db)
	ctx := context.Background()

	owner := seedUser(t, users, model.RoleStaff)
	other := seedUser(t, users, model.RoleStaff)
	admin := seedUser(t, users, model.RoleAdmin)

	v := model.TrainingVideo{Title: "Warmup", VideoURL: "https://cdn.test/warmup.mp4", UploadedBy: owner.ID}
	if err := videos.Create(ctx, &v); err != nil {
		t.Fatalf("create video: %v", err)
	}

	h := NewVideoHandler(videos)
	videoID := strconv.FormatUint(v.ID, 10)
	update := func(u model.User) int {
		c, rec := jsonContext(t, http.MethodPut, "/api/staff/videos/"+videoID,
			`{"title":"Replaced"}`, claimsFor(u))
		c.SetParamNames("id")
		c.SetParamValues(videoID)
		if err := h.Update(c); err != nil {
			t.Fatalf("Update as %s: %v", u.Role, err)
		}
		return rec.Code
	}

	if code := update(other); code != http.StatusForbidden {
		t.Errorf("update by non-owner = %d, want 403", code)
	}
	got, err := videos.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Warmup" {
		t.Errorf("rejected update still changed title to %q", got.Title)
	}
	if code := update(owner); code != http.StatusOK {
		t.Errorf("update by owner = %d, want 200", code)
	}
	if code := update(admin); code != http.StatusOK {
		t.Errorf("update by admin = %d, want 200", code)
	}

	c, rec := jsonContext(t, http.MethodDelete, "/api/staff/videos/"+videoID, "", claimsFor(other))
	c.SetParamNames("id")
	c.SetParamValues(videoID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete by non-owner = %d, want 403", rec.Code)
	}

	c, rec = jsonContext(t, http.MethodDelete, "/api/staff/videos/"+videoID, "", claimsFor(owner))
	c.SetParamNames("id")
	c.SetParamValues(videoID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete by owner = %d, want 204", rec.Code)
	}
}

// Refresh rotates: after a successful exchange the old refresh token must be
// dead, so presenting it again yields 401.
func TestRefreshRotatesOldToken(t *testing.T) {
	db := openTestDB(t)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	ctx := context.Background()

	u := seedUser(t, users, model.RoleStudent)
	refresh, err := utils.NewRefreshToken(1)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if err := tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		t.Fatalf("StoreRefresh: %v", err)
	}

	h := NewAuthHandler(config.Config{
		JWTSecret: "test-secret", AccessTTLMin: 5, RefreshTTLDays: 1, BcryptCost: bcrypt.MinCost,
	}, users, tokens)

	body := `{"refresh_token":"` + refresh.Raw + `"}`
	c, rec := jsonContext(t, http.MethodPost, "/api/auth/refresh", body, nil)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("first refresh = %d, want 200", rec.Code)
	}

	c, rec = jsonContext(t, http.MethodPost, "/api/auth/refresh", body, nil)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("replayed refresh = %d, want 401", rec.Code)
	}
}
