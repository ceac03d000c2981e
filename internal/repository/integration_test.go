package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/gym-management/internal/database"
	"github.com/iliyamo/gym-management/internal/model"
	"github.com/iliyamo/gym-management/internal/utils"
)

// openTestDB connects to the database named by TEST_DB_DSN and applies the
// schema.  Tests that need a live MySQL are skipped when the variable is
// unset, so the default `go test ./...` run stays hermetic.  The DSN must
// include parseTime=true.
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

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@test.local", prefix, time.Now().UnixNano())
}

func createTestUser(t *testing.T, users *UserRepo, role string) model.User {
	t.Helper()
	u := model.User{Name: "Test " + role, Email: uniqueEmail(role), Role: role}
	id, err := users.Create(context.Background(), &u, "password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}
	u.ID = id
	t.Cleanup(func() { _ = users.Delete(context.Background(), id) })
	return u
}

func TestUserEmailUnique(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	ctx := context.Background()

	u := createTestUser(t, users, model.RoleStudent)

	dup := model.User{Name: "Dup", Email: u.Email, Role: model.RoleStudent}
	if _, err := users.Create(ctx, &dup, "password123", bcrypt.MinCost); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate create err = %v, want ErrEmailExists", err)
	}
}

func TestUserPasswordStoredHashed(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)

	u := createTestUser(t, users, model.RoleStaff)
	stored, err := users.GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.PasswordHash == "password123" {
		t.Fatal("password stored in plaintext")
	}
	if !utils.VerifyPassword(stored.PasswordHash, "password123") {
		t.Error("stored hash does not verify the original password")
	}
}

func TestProfileUpsertKeepsOneRow(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	profiles := NewProfileRepo(db)
	ctx := context.Background()

	u := createTestUser(t, users, model.RoleStudent)

	age := 21
	first, err := profiles.Upsert(ctx, &model.StudentProfile{
		UserID: u.ID, Age: &age, FitnessGoal: "bulk", MembershipStatus: model.MembershipPending,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	age2 := 22
	second, err := profiles.Upsert(ctx, &model.StudentProfile{
		UserID: u.ID, Age: &age2, FitnessGoal: "cut", MembershipStatus: model.MembershipActive,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("upsert produced a second row: %d then %d", first.ID, second.ID)
	}
	if second.FitnessGoal != "cut" || second.MembershipStatus != model.MembershipActive {
		t.Errorf("second upsert did not update fields: %+v", second)
	}

	var n int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM student_profiles WHERE user_id=?", u.ID).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("profile rows = %d, want 1", n)
	}
}

func TestAttendanceCheckInIdempotent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	profiles := NewProfileRepo(db)
	attendance := NewAttendanceRepo(db)
	ctx := context.Background()

	u := createTestUser(t, users, model.RoleStudent)
	profileID, err := profiles.EnsureForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("EnsureForUser: %v", err)
	}

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	first, created, err := attendance.CheckIn(ctx, profileID, day, model.AttendancePresent)
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if !created {
		t.Error("first check-in reported as duplicate")
	}
	second, created, err := attendance.CheckIn(ctx, profileID, day, model.AttendancePresent)
	if err != nil {
		t.Fatalf("second check-in: %v", err)
	}
	if created {
		t.Error("second check-in reported as new")
	}
	if first.ID != second.ID {
		t.Errorf("check-ins resolved to different rows: %d then %d", first.ID, second.ID)
	}

	var n int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance_records WHERE student_profile_id=? AND date=?",
		profileID, "2026-03-14").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("attendance rows = %d, want 1", n)
	}
}

func TestAttendanceCheckInConcurrent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	profiles := NewProfileRepo(db)
	attendance := NewAttendanceRepo(db)
	ctx := context.Background()

	u := createTestUser(t, users, model.RoleStudent)
	profileID, err := profiles.EnsureForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("EnsureForUser: %v", err)
	}

	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := attendance.CheckIn(ctx, profileID, day, model.AttendancePresent); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent check-in: %v", err)
	}

	var n int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance_records WHERE student_profile_id=? AND date=?",
		profileID, "2026-03-15").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("attendance rows = %d, want 1", n)
	}
}

func TestRefreshTokenLifecycle(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	tokens := NewTokenRepo(db)
	ctx := context.Background()

	u := createTestUser(t, users, model.RoleTrainer)

	refresh, err := utils.NewRefreshToken(1)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	hash := utils.HashRefreshRaw(refresh.Raw)
	if err := tokens.StoreRefresh(ctx, u.ID, hash, refresh.Exp); err != nil {
		t.Fatalf("StoreRefresh: %v", err)
	}

	uid, err := tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		t.Fatalf("ValidateRefresh: %v", err)
	}
	if uid != u.ID {
		t.Errorf("ValidateRefresh user = %d, want %d", uid, u.ID)
	}

	if err := tokens.RevokeByHash(ctx, hash); err != nil {
		t.Fatalf("RevokeByHash: %v", err)
	}
	if _, err := tokens.ValidateRefresh(ctx, hash); !errors.Is(err, ErrNotFound) {
		t.Errorf("revoked token validated: err = %v, want ErrNotFound", err)
	}
}
