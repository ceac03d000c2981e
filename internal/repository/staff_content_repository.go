package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/gym-management/internal/model"
)

// ActivityRepo provides access to the 'activities' table.
type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// Create inserts an activity and populates its ID.
func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO activities (title,starts_at,participants,location,created_by) VALUES (?,?,?,?,?)",
		a.Title, a.StartsAt, a.Participants, a.Location, a.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// List returns all activities, soonest first.
func (r *ActivityRepo) List(ctx context.Context) ([]model.Activity, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,starts_at,participants,location,created_by,created_at FROM activities ORDER BY starts_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.StartsAt, &a.Participants, &a.Location, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an activity.  ErrNotFound when absent.
func (r *ActivityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM activities WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRepo provides access to the 'department_updates' table.
type UpdateRepo struct{ DB *sql.DB }

func NewUpdateRepo(db *sql.DB) *UpdateRepo { return &UpdateRepo{DB: db} }

// Create inserts a department update and populates its ID.
func (r *UpdateRepo) Create(ctx context.Context, u *model.DepartmentUpdate) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO department_updates (title,content,posted_by) VALUES (?,?,?)",
		u.Title, u.Content, u.PostedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// List returns all department updates, newest first.
func (r *UpdateRepo) List(ctx context.Context) ([]model.DepartmentUpdate, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,content,posted_by,created_at FROM department_updates ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DepartmentUpdate{}
	for rows.Next() {
		var u model.DepartmentUpdate
		if err := rows.Scan(&u.ID, &u.Title, &u.Content, &u.PostedBy, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// FacultyRepo provides access to the 'faculty_members' table.
type FacultyRepo struct{ DB *sql.DB }

func NewFacultyRepo(db *sql.DB) *FacultyRepo { return &FacultyRepo{DB: db} }

// Create inserts a faculty member and populates its ID.  ErrConflict when the
// email is already on the roster.
func (r *FacultyRepo) Create(ctx context.Context, f *model.FacultyMember) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO faculty_members (name,email,department,position,created_by) VALUES (?,?,?,?,?)",
		f.Name, f.Email, f.Department, f.Position, f.CreatedBy)
	if isDuplicate(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// List returns the faculty roster ordered by name.
func (r *FacultyRepo) List(ctx context.Context) ([]model.FacultyMember, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,department,position,joined_date,created_by FROM faculty_members ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.FacultyMember{}
	for rows.Next() {
		var f model.FacultyMember
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Department, &f.Position, &f.JoinedDate, &f.CreatedBy); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByID fetches one faculty member.  ErrNotFound when absent.
func (r *FacultyRepo) GetByID(ctx context.Context, id uint64) (model.FacultyMember, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,department,position,joined_date,created_by FROM faculty_members WHERE id=? LIMIT 1", id)
	var f model.FacultyMember
	err := row.Scan(&f.ID, &f.Name, &f.Email, &f.Department, &f.Position, &f.JoinedDate, &f.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return f, ErrNotFound
	}
	return f, err
}
