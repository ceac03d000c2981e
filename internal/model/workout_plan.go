package model

import "time"

// WorkoutPlan is assigned to exactly one user, unlike diet plans which go
// through an assignment join table.
type WorkoutPlan struct {
	ID          uint64
	Title       string
	Description string
	CreatedBy   uint64
	AssignedTo  uint64
	CreatedAt   time.Time
}
