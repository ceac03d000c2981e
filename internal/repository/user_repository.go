package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/gym-management/internal/model"
	"github.com/iliyamo/gym-management/internal/utils"
)

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password_hash,role,gender,blood_group,height,weight,payment_method,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Gender,
		&u.BloodGroup, &u.Height, &u.Weight, &u.PaymentMethod, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create hashes the password and inserts exactly one user row, returning its
// ID.  The email is normalized to lowercase before insert; the unique key on
// users.email turns a duplicate into ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (name,email,password_hash,role,gender,blood_group,height,weight,payment_method)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		u.Name, email, hash, u.Role, u.Gender, u.BloodGroup, u.Height, u.Weight, u.PaymentMethod)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.  ErrNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.  ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// List returns all users, optionally filtered by role.
func (r *UserRepo) List(ctx context.Context, role string) ([]model.User, error) {
	q := "SELECT " + userColumns + " FROM users"
	args := []any{}
	if role != "" {
		q += " WHERE role=?"
		args = append(args, role)
	}
	q += " ORDER BY id"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Gender,
			&u.BloodGroup, &u.Height, &u.Weight, &u.PaymentMethod, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListByRoles returns users whose role is in the given set, ordered by id.
func (r *UserRepo) ListByRoles(ctx context.Context, roles ...string) ([]model.User, error) {
	if len(roles) == 0 {
		return []model.User{}, nil
	}
	q := "SELECT " + userColumns + " FROM users WHERE role IN (?" + strings.Repeat(",?", len(roles)-1) + ") ORDER BY id"
	args := make([]any, len(roles))
	for i, role := range roles {
		args[i] = role
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Gender,
			&u.BloodGroup, &u.Height, &u.Weight, &u.PaymentMethod, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update persists the mutable identity fields of u.  The password hash is
// managed separately by SetPassword.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name=?, email=?, role=?, gender=?, blood_group=?, height=?, weight=?, payment_method=?
		 WHERE id=?`,
		u.Name, email, u.Role, u.Gender, u.BloodGroup, u.Height, u.Weight, u.PaymentMethod, u.ID)
	if isDuplicate(err) {
		return ErrEmailExists
	}
	return err
}

// SetPassword replaces the stored hash for a user.
func (r *UserRepo) SetPassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// Delete removes a user.  Dependent rows (profiles, tokens, notifications,
// schedules, authored content) are removed by the schema's cascade rules.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByRole returns the number of users holding a role, used by the admin
// stats endpoint.
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role=?", role).Scan(&n)
	return n, err
}
