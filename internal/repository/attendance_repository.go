package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/gym-management/internal/model"
)

// AttendanceRepo provides access to the 'attendance_records' table.  The
// unique key on (student_profile_id, date) is what makes check-in
// idempotent; this layer never checks-then-inserts.
type AttendanceRepo struct{ DB *sql.DB }

func NewAttendanceRepo(db *sql.DB) *AttendanceRepo { return &AttendanceRepo{DB: db} }

// CheckIn records attendance for a profile on a calendar date.  When a row
// for that date already exists the insert collapses onto it via
// LAST_INSERT_ID, the existing row is returned and created is false.  Two
// concurrent check-ins therefore produce exactly one row.
func (r *AttendanceRepo) CheckIn(ctx context.Context, profileID uint64, date time.Time, status string) (model.AttendanceRecord, bool, error) {
	day := date.UTC().Format("2006-01-02")
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO attendance_records (student_profile_id, date, status)
		 VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`,
		profileID, day, status)
	if err != nil {
		if isFKViolation(err) {
			return model.AttendanceRecord{}, false, ErrNotFound
		}
		return model.AttendanceRecord{}, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.AttendanceRecord{}, false, err
	}
	// MySQL reports 1 affected row for an insert and 0 for the duplicate
	// no-op path (same values).
	n, err := res.RowsAffected()
	if err != nil {
		return model.AttendanceRecord{}, false, err
	}
	rec, err := r.getByID(ctx, uint64(id))
	return rec, n == 1, err
}

func (r *AttendanceRepo) getByID(ctx context.Context, id uint64) (model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,student_profile_id,date,status,created_at FROM attendance_records WHERE id=? LIMIT 1",
		id).Scan(&rec.ID, &rec.StudentProfileID, &rec.Date, &rec.Status, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	return rec, err
}

// ListByProfile returns a profile's attendance history newest first.
func (r *AttendanceRepo) ListByProfile(ctx context.Context, profileID uint64) ([]model.AttendanceRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,student_profile_id,date,status,created_at FROM attendance_records WHERE student_profile_id=? ORDER BY date DESC",
		profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AttendanceRecord{}
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentProfileID, &rec.Date, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summary holds attendance counts used by the student progress endpoint.
type Summary struct {
	TotalDays   int
	PresentDays int
	AbsentDays  int
}

// Summarize returns attendance counts for a profile.
func (r *AttendanceRepo) Summarize(ctx context.Context, profileID uint64) (Summary, error) {
	var s Summary
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(status='present'),0),
		        COALESCE(SUM(status='absent'),0)
		 FROM attendance_records WHERE student_profile_id=?`,
		profileID).Scan(&s.TotalDays, &s.PresentDays, &s.AbsentDays)
	return s, err
}
