package model

import "time"

// Activity is a group event hosted by the gym (a class, an open session, a
// tournament), distinct from a Schedule which books one attendee with one
// trainer.  Participants is a headcount, not a join table.
type Activity struct {
	ID           uint64
	Title        string
	StartsAt     time.Time
	Participants uint
	Location     string
	CreatedBy    uint64
	CreatedAt    time.Time
}

// DepartmentUpdate is an announcement posted by staff for their department.
type DepartmentUpdate struct {
	ID        uint64
	Title     string
	Content   string
	PostedBy  uint64
	CreatedAt time.Time
}

// FacultyMember is a directory entry for department personnel.  Faculty are
// roster data, not accounts: a member has no login and no role, so the row
// lives in its own table instead of users.
type FacultyMember struct {
	ID         uint64
	Name       string
	Email      string
	Department string
	Position   string
	JoinedDate time.Time
	CreatedBy  uint64
}
