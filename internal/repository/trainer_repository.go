package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/gym-management/internal/model"
)

// TrainerRepo provides access to the 'trainers' table.  Like student
// profiles, trainer rows are created lazily on first write and the unique
// key on user_id makes creation an upsert.
type TrainerRepo struct{ DB *sql.DB }

func NewTrainerRepo(db *sql.DB) *TrainerRepo { return &TrainerRepo{DB: db} }

// GetByUserID fetches the trainer row owned by a user.
func (r *TrainerRepo) GetByUserID(ctx context.Context, userID uint64) (model.Trainer, error) {
	var (
		t        model.Trainer
		bio      sql.NullString
		schedule sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,specialization,experience_years,bio,schedule FROM trainers WHERE user_id=? LIMIT 1",
		userID).Scan(&t.ID, &t.UserID, &t.Specialization, &t.ExperienceYears, &bio, &schedule)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	t.Bio = bio.String
	t.Schedule = schedule.String
	return t, err
}

// Upsert creates the trainer row on first write and updates it afterwards,
// returning the stored row.
func (r *TrainerRepo) Upsert(ctx context.Context, t *model.Trainer) (model.Trainer, error) {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO trainers (user_id,specialization,experience_years,bio,schedule)
		 VALUES (?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   specialization=VALUES(specialization), experience_years=VALUES(experience_years),
		   bio=VALUES(bio), schedule=VALUES(schedule)`,
		t.UserID, t.Specialization, t.ExperienceYears, t.Bio, t.Schedule)
	if err != nil {
		if isFKViolation(err) {
			return model.Trainer{}, ErrNotFound
		}
		return model.Trainer{}, err
	}
	return r.GetByUserID(ctx, t.UserID)
}

// EnsureForUser returns the trainer ID for a user, creating an empty row if
// none exists.  Scheduling operations that reference a trainer go through
// this so booking a session with a trainer who never filled in a profile
// still works.
func (r *TrainerRepo) EnsureForUser(ctx context.Context, userID uint64) (uint64, error) {
	if _, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO trainers (user_id) VALUES (?)", userID); err != nil {
		if isFKViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM trainers WHERE user_id=? LIMIT 1", userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

// TrainerWithName pairs a trainer row with the owner's display name and
// email, resolved at read time for directory listings.
type TrainerWithName struct {
	Trainer model.Trainer
	Name    string
	Email   string
}

// ListWithNames returns all trainers joined with their user record.
func (r *TrainerRepo) ListWithNames(ctx context.Context) ([]TrainerWithName, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.user_id, t.specialization, t.experience_years, t.bio, t.schedule, u.name, u.email
		 FROM trainers t
		 JOIN users u ON u.id = t.user_id
		 ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []TrainerWithName{}
	for rows.Next() {
		var (
			tw       TrainerWithName
			bio      sql.NullString
			schedule sql.NullString
		)
		if err := rows.Scan(&tw.Trainer.ID, &tw.Trainer.UserID, &tw.Trainer.Specialization,
			&tw.Trainer.ExperienceYears, &bio, &schedule, &tw.Name, &tw.Email); err != nil {
			return nil, err
		}
		tw.Trainer.Bio = bio.String
		tw.Trainer.Schedule = schedule.String
		out = append(out, tw)
	}
	return out, rows.Err()
}
