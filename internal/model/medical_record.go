package model

import "time"

// Medical record types.
const (
	RecordInjury    = "injury"
	RecordCondition = "medical condition"
)

// ValidRecordType reports whether s is a known medical record type.
func ValidRecordType(s string) bool {
	return s == RecordInjury || s == RecordCondition
}

// MedicalRecord documents an injury or condition for a user.
type MedicalRecord struct {
	ID          uint64
	UserID      uint64
	RecordType  string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}
