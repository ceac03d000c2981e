package model

import "time"

// Role values form a closed set.  Authorization is an explicit allow-list
// per route group, never a rank comparison, so these are plain strings with
// no ordering attached.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleTrainer = "trainer"
	RoleStudent = "student"
)

// ValidRole reports whether s is one of the four known roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleStaff, RoleTrainer, RoleStudent:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users` table.
// Each field corresponds to a column.  JSON tags are omitted because these
// structs are used internally by the repository layer; handlers define
// separate response shapes and never expose PasswordHash.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Name          – display name.
//  Email         – unique email address (stored lowercased).
//  PasswordHash  – bcrypt hashed password; never serialized or logged.
//  Role          – one of admin, staff, trainer, student.
//  Gender        – optional physical attribute captured at registration.
//  BloodGroup    – optional physical attribute.
//  Height        – optional, in cm (nil when not provided).
//  Weight        – optional, in kg (nil when not provided).
//  PaymentMethod – optional billing hint.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
	ID            uint64
	Name          string
	Email         string
	PasswordHash  string
	Role          string
	Gender        string
	BloodGroup    string
	Height        *float64
	Weight        *float64
	PaymentMethod string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
