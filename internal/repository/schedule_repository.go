package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/gym-management/internal/model"
)

// ScheduleRepo provides access to the 'schedules' table.
type ScheduleRepo struct{ DB *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{DB: db} }

// Create inserts a booked session and populates its ID.  Unknown user or
// trainer ids are rejected by the foreign keys as ErrNotFound.
func (r *ScheduleRepo) Create(ctx context.Context, s *model.Schedule) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO schedules (user_id,trainer_id,title,description,scheduled_at,location) VALUES (?,?,?,?,?,?)",
		s.UserID, s.TrainerID, s.Title, s.Description, s.ScheduledAt, s.Location)
	if err != nil {
		if isFKViolation(err) {
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ScheduleWithNames joins a schedule with display names resolved at read
// time: the attendee's and, when present, the trainer's.
type ScheduleWithNames struct {
	Schedule    model.Schedule
	UserName    string
	TrainerName string
}

const scheduleJoin = `SELECT s.id, s.user_id, s.trainer_id, s.title, s.description, s.scheduled_at, s.location, s.created_at,
	   u.name, COALESCE(tu.name, '')
  FROM schedules s
  JOIN users u ON u.id = s.user_id
  LEFT JOIN trainers t ON t.id = s.trainer_id
  LEFT JOIN users tu ON tu.id = t.user_id`

// ListByUser returns sessions booked by one attendee, soonest first.
func (r *ScheduleRepo) ListByUser(ctx context.Context, userID uint64) ([]ScheduleWithNames, error) {
	return r.query(ctx, scheduleJoin+" WHERE s.user_id=? ORDER BY s.scheduled_at", userID)
}

// ListByTrainerUser returns sessions that reference the trainer owned by the
// given user, soonest first.
func (r *ScheduleRepo) ListByTrainerUser(ctx context.Context, trainerUserID uint64) ([]ScheduleWithNames, error) {
	return r.query(ctx, scheduleJoin+" WHERE t.user_id=? ORDER BY s.scheduled_at", trainerUserID)
}

func (r *ScheduleRepo) query(ctx context.Context, q string, args ...any) ([]ScheduleWithNames, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ScheduleWithNames{}
	for rows.Next() {
		var (
			sn   ScheduleWithNames
			desc sql.NullString
		)
		if err := rows.Scan(&sn.Schedule.ID, &sn.Schedule.UserID, &sn.Schedule.TrainerID,
			&sn.Schedule.Title, &desc, &sn.Schedule.ScheduledAt, &sn.Schedule.Location,
			&sn.Schedule.CreatedAt, &sn.UserName, &sn.TrainerName); err != nil {
			return nil, err
		}
		sn.Schedule.Description = desc.String
		out = append(out, sn)
	}
	return out, rows.Err()
}
