package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/gym-management/internal/model"
)

// WorkoutPlanRepo provides access to the 'workout_plans' table.
type WorkoutPlanRepo struct{ DB *sql.DB }

func NewWorkoutPlanRepo(db *sql.DB) *WorkoutPlanRepo { return &WorkoutPlanRepo{DB: db} }

const workoutPlanColumns = "id,title,description,created_by,assigned_to,created_at"

func scanWorkoutPlan(scan func(dest ...any) error) (model.WorkoutPlan, error) {
	var (
		p    model.WorkoutPlan
		desc sql.NullString
	)
	err := scan(&p.ID, &p.Title, &desc, &p.CreatedBy, &p.AssignedTo, &p.CreatedAt)
	p.Description = desc.String
	return p, err
}

// Create inserts a workout plan and populates its ID.  The foreign key on
// assigned_to rejects unknown assignees as ErrNotFound.
func (r *WorkoutPlanRepo) Create(ctx context.Context, p *model.WorkoutPlan) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO workout_plans (title,description,created_by,assigned_to) VALUES (?,?,?,?)",
		p.Title, p.Description, p.CreatedBy, p.AssignedTo)
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
	p.ID = uint64(id)
	return nil
}

// GetByID fetches one plan.  ErrNotFound when absent.
func (r *WorkoutPlanRepo) GetByID(ctx context.Context, id uint64) (model.WorkoutPlan, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+workoutPlanColumns+" FROM workout_plans WHERE id=? LIMIT 1", id)
	p, err := scanWorkoutPlan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// PlanWithAssignee joins a plan with its assignee's name and role for the
// trainer list view.
type PlanWithAssignee struct {
	Plan         model.WorkoutPlan
	AssigneeName string
	AssigneeRole string
}

// ListByCreator returns plans authored by one user with the assignee
// resolved at read time.
func (r *WorkoutPlanRepo) ListByCreator(ctx context.Context, userID uint64) ([]PlanWithAssignee, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.title, p.description, p.created_by, p.assigned_to, p.created_at, u.name, u.role
		 FROM workout_plans p
		 JOIN users u ON u.id = p.assigned_to
		 WHERE p.created_by = ?
		 ORDER BY p.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PlanWithAssignee{}
	for rows.Next() {
		var (
			pa   PlanWithAssignee
			desc sql.NullString
		)
		if err := rows.Scan(&pa.Plan.ID, &pa.Plan.Title, &desc, &pa.Plan.CreatedBy,
			&pa.Plan.AssignedTo, &pa.Plan.CreatedAt, &pa.AssigneeName, &pa.AssigneeRole); err != nil {
			return nil, err
		}
		pa.Plan.Description = desc.String
		out = append(out, pa)
	}
	return out, rows.Err()
}

// Update persists the mutable fields of a plan.  Ownership is checked by the
// handler before this is called.
func (r *WorkoutPlanRepo) Update(ctx context.Context, p *model.WorkoutPlan) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE workout_plans SET title=?, description=?, assigned_to=? WHERE id=?",
		p.Title, p.Description, p.AssignedTo, p.ID)
	if isFKViolation(err) {
		return ErrNotFound
	}
	return err
}

// Delete removes a plan.  ErrNotFound when absent.
func (r *WorkoutPlanRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM workout_plans WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
