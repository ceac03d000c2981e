package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/gym-management/internal/model"
)

// ProfileRepo provides access to the 'student_profiles' table.  Profiles are
// created lazily: the first write (or the first attendance check-in) creates
// the row.  The unique key on user_id makes every create path an upsert, so
// two concurrent first-writes for the same student cannot produce two rows.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const profileColumns = "id,user_id,age,height,weight,fitness_goal,medical_conditions,department,membership_status,admission_date"

// GetByUserID fetches the profile owned by a user.  ErrNotFound when the
// profile has not been created yet.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.StudentProfile, error) {
	var (
		p       model.StudentProfile
		medical sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM student_profiles WHERE user_id=? LIMIT 1", userID).
		Scan(&p.ID, &p.UserID, &p.Age, &p.Height, &p.Weight, &p.FitnessGoal,
			&medical, &p.Department, &p.MembershipStatus, &p.AdmissionDate)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	p.MedicalConditions = medical.String
	return p, err
}

// Upsert creates the profile on first write and updates it afterwards.  A
// single INSERT ... ON DUPLICATE KEY UPDATE statement keeps the row count at
// one under concurrency.  The populated row is read back and returned.
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.StudentProfile) (model.StudentProfile, error) {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO student_profiles (user_id,age,height,weight,fitness_goal,medical_conditions,department,membership_status)
		 VALUES (?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   age=VALUES(age), height=VALUES(height), weight=VALUES(weight),
		   fitness_goal=VALUES(fitness_goal), medical_conditions=VALUES(medical_conditions),
		   department=VALUES(department), membership_status=VALUES(membership_status)`,
		p.UserID, p.Age, p.Height, p.Weight, p.FitnessGoal, p.MedicalConditions,
		p.Department, p.MembershipStatus)
	if err != nil {
		if isFKViolation(err) {
			return model.StudentProfile{}, ErrNotFound
		}
		return model.StudentProfile{}, err
	}
	return r.GetByUserID(ctx, p.UserID)
}

// EnsureForUser returns the profile ID for a user, creating an empty profile
// row if none exists yet.  Used by attendance check-in, which may run before
// the student has ever written a profile.
func (r *ProfileRepo) EnsureForUser(ctx context.Context, userID uint64) (uint64, error) {
	if _, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO student_profiles (user_id) VALUES (?)", userID); err != nil {
		if isFKViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM student_profiles WHERE user_id=? LIMIT 1", userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

// StudentWithProfile pairs a student user with their profile (when created)
// for the staff roster view.
type StudentWithProfile struct {
	User    model.User
	Profile *model.StudentProfile
}

// ListStudents returns every student user together with their profile if one
// exists.  The LEFT JOIN keeps students who have not created a profile yet.
func (r *ProfileRepo) ListStudents(ctx context.Context) ([]StudentWithProfile, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, u.role, u.created_at,
		        p.id, p.age, p.height, p.weight, p.fitness_goal, p.department, p.membership_status, p.admission_date
		 FROM users u
		 LEFT JOIN student_profiles p ON p.user_id = u.id
		 WHERE u.role = 'student'
		 ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []StudentWithProfile{}
	for rows.Next() {
		var (
			s         StudentWithProfile
			pid       sql.NullInt64
			age       sql.NullInt64
			height    sql.NullFloat64
			weight    sql.NullFloat64
			goal      sql.NullString
			dept      sql.NullString
			status    sql.NullString
			admission sql.NullTime
		)
		if err := rows.Scan(&s.User.ID, &s.User.Name, &s.User.Email, &s.User.Role, &s.User.CreatedAt,
			&pid, &age, &height, &weight, &goal, &dept, &status, &admission); err != nil {
			return nil, err
		}
		if pid.Valid {
			p := model.StudentProfile{
				ID:               uint64(pid.Int64),
				UserID:           s.User.ID,
				FitnessGoal:      goal.String,
				Department:       dept.String,
				MembershipStatus: status.String,
				AdmissionDate:    admission.Time,
			}
			if age.Valid {
				v := int(age.Int64)
				p.Age = &v
			}
			if height.Valid {
				v := height.Float64
				p.Height = &v
			}
			if weight.Valid {
				v := weight.Float64
				p.Weight = &v
			}
			s.Profile = &p
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
