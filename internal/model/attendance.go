package model

import "time"

// Attendance status values.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// AttendanceRecord holds one row per (student profile, calendar date).  The
// unique key on that pair makes check-in idempotent: a second check-in on
// the same day resolves to the existing row.
type AttendanceRecord struct {
	ID               uint64
	StudentProfileID uint64
	Date             time.Time // date only; time component is zero
	Status           string
	CreatedAt        time.Time
}
