package model

import "time"

// TrainingVideo is an owned resource: UploadedBy is set from the caller's
// verified identity at creation and mutation requires owner-or-admin.
type TrainingVideo struct {
	ID          uint64
	Title       string
	Description string
	VideoURL    string
	Category    string
	UploadedBy  uint64
	CreatedAt   time.Time
}
