package model

import "time"

// Notification belongs to its recipient and is removed with the user.
type Notification struct {
	ID        uint64
	UserID    uint64
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
