package model

import "time"

// Assignment status values for a diet plan handed to a student.
const (
	AssignmentActive    = "active"
	AssignmentCompleted = "completed"
	AssignmentCancelled = "cancelled"
)

// ValidAssignmentStatus reports whether s is a known assignment status.
func ValidAssignmentStatus(s string) bool {
	switch s {
	case AssignmentActive, AssignmentCompleted, AssignmentCancelled:
		return true
	}
	return false
}

// DietPlan is a nutritional template.  A plan is not tied to any student by
// itself; the pairing lives in DietPlanAssignment so one template can be
// assigned to many students with independent per-assignment status.
type DietPlan struct {
	ID          uint64
	Title       string
	Description string
	Calories    *int
	Protein     *float64
	Carbs       *float64
	Fat         *float64
	CreatedBy   uint64
	CreatedAt   time.Time
}

// DietPlanAssignment joins a diet plan to a student with the trainer who
// made the assignment.
type DietPlanAssignment struct {
	ID         uint64
	StudentID  uint64
	DietPlanID uint64
	AssignedBy uint64
	Status     string
	Notes      string
	AssignedAt time.Time
}
