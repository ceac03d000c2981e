package model

import "time"

// Schedule is a booked session owned by the attending user.  TrainerID is
// optional; a trainer may own many schedules while a schedule references at
// most one trainer.
type Schedule struct {
	ID          uint64
	UserID      uint64
	TrainerID   *uint64
	Title       string
	Description string
	ScheduledAt time.Time
	Location    string
	CreatedAt   time.Time
}
