package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/gym-management/internal/model"
)

// DietPlanRepo provides access to diet plan templates and their student
// assignments.
type DietPlanRepo struct{ DB *sql.DB }

func NewDietPlanRepo(db *sql.DB) *DietPlanRepo { return &DietPlanRepo{DB: db} }

const dietPlanColumns = "id,title,description,calories,protein,carbs,fat,created_by,created_at"

func scanDietPlan(scan func(dest ...any) error) (model.DietPlan, error) {
	var (
		p    model.DietPlan
		desc sql.NullString
	)
	err := scan(&p.ID, &p.Title, &desc, &p.Calories, &p.Protein, &p.Carbs, &p.Fat, &p.CreatedBy, &p.CreatedAt)
	p.Description = desc.String
	return p, err
}

// Create inserts a diet plan template and populates its ID.
func (r *DietPlanRepo) Create(ctx context.Context, p *model.DietPlan) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO diet_plans (title,description,calories,protein,carbs,fat,created_by) VALUES (?,?,?,?,?,?,?)",
		p.Title, p.Description, p.Calories, p.Protein, p.Carbs, p.Fat, p.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches one template.  ErrNotFound when absent.
func (r *DietPlanRepo) GetByID(ctx context.Context, id uint64) (model.DietPlan, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+dietPlanColumns+" FROM diet_plans WHERE id=? LIMIT 1", id)
	p, err := scanDietPlan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// List returns all templates.
func (r *DietPlanRepo) List(ctx context.Context) ([]model.DietPlan, error) {
	return r.queryPlans(ctx, "SELECT "+dietPlanColumns+" FROM diet_plans ORDER BY id")
}

// ListByCreator returns templates authored by one user.
func (r *DietPlanRepo) ListByCreator(ctx context.Context, userID uint64) ([]model.DietPlan, error) {
	return r.queryPlans(ctx,
		"SELECT "+dietPlanColumns+" FROM diet_plans WHERE created_by=? ORDER BY id", userID)
}

func (r *DietPlanRepo) queryPlans(ctx context.Context, q string, args ...any) ([]model.DietPlan, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DietPlan{}
	for rows.Next() {
		p, err := scanDietPlan(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Assign pairs a template with a student.  The foreign keys reject unknown
// plan or student ids, surfacing as ErrNotFound.
func (r *DietPlanRepo) Assign(ctx context.Context, a *model.DietPlanAssignment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO diet_plan_assignments (student_id,diet_plan_id,assigned_by,status,notes) VALUES (?,?,?,?,?)",
		a.StudentID, a.DietPlanID, a.AssignedBy, a.Status, a.Notes)
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
	a.ID = uint64(id)
	return nil
}

// AssignmentWithPlan joins an assignment with its template and the name of
// the trainer who made it, resolved at read time.
type AssignmentWithPlan struct {
	Assignment  model.DietPlanAssignment
	Plan        model.DietPlan
	TrainerName string
}

// ListAssignmentsForStudent returns a student's assignments newest first.
func (r *DietPlanRepo) ListAssignmentsForStudent(ctx context.Context, studentID uint64) ([]AssignmentWithPlan, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.student_id, a.diet_plan_id, a.assigned_by, a.status, a.notes, a.assigned_at,
		        p.id, p.title, p.description, p.calories, p.protein, p.carbs, p.fat, p.created_by, p.created_at,
		        u.name
		 FROM diet_plan_assignments a
		 JOIN diet_plans p ON p.id = a.diet_plan_id
		 JOIN users u ON u.id = a.assigned_by
		 WHERE a.student_id = ?
		 ORDER BY a.assigned_at DESC, a.id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []AssignmentWithPlan{}
	for rows.Next() {
		var (
			ap       AssignmentWithPlan
			notes    sql.NullString
			planDesc sql.NullString
		)
		if err := rows.Scan(&ap.Assignment.ID, &ap.Assignment.StudentID, &ap.Assignment.DietPlanID,
			&ap.Assignment.AssignedBy, &ap.Assignment.Status, &notes, &ap.Assignment.AssignedAt,
			&ap.Plan.ID, &ap.Plan.Title, &planDesc, &ap.Plan.Calories, &ap.Plan.Protein,
			&ap.Plan.Carbs, &ap.Plan.Fat, &ap.Plan.CreatedBy, &ap.Plan.CreatedAt,
			&ap.TrainerName); err != nil {
			return nil, err
		}
		ap.Assignment.Notes = notes.String
		ap.Plan.Description = planDesc.String
		out = append(out, ap)
	}
	return out, rows.Err()
}
