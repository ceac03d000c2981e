package model

import "time"

// Membership status values for a student profile.
const (
	MembershipActive  = "active"
	MembershipExpired = "expired"
	MembershipPending = "pending"
)

// ValidMembershipStatus reports whether s is a known membership status.
func ValidMembershipStatus(s string) bool {
	switch s {
	case MembershipActive, MembershipExpired, MembershipPending:
		return true
	}
	return false
}

// StudentProfile is the 1:1 extension of a student user.  Rows are created
// lazily by the first profile write (upsert) and are removed together with
// the owning user.
type StudentProfile struct {
	ID                uint64
	UserID            uint64
	Age               *int
	Height            *float64
	Weight            *float64
	FitnessGoal       string
	MedicalConditions string
	Department        string
	MembershipStatus  string
	AdmissionDate     time.Time
}

// Trainer is the 1:1 extension of a trainer user.  The Schedule field holds
// a free-text weekly schedule blob exactly as submitted.
type Trainer struct {
	ID              uint64
	UserID          uint64
	Specialization  string
	ExperienceYears int
	Bio             string
	Schedule        string
}
