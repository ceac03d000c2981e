package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/gym-management/internal/model"
)

// MedicalRecordRepo provides access to the 'medical_records' table.
type MedicalRecordRepo struct{ DB *sql.DB }

func NewMedicalRecordRepo(db *sql.DB) *MedicalRecordRepo { return &MedicalRecordRepo{DB: db} }

// Create inserts a medical record and populates its ID.  Unknown user ids
// are rejected by the foreign key as ErrNotFound.
func (r *MedicalRecordRepo) Create(ctx context.Context, m *model.MedicalRecord) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO medical_records (user_id,record_type,description,date) VALUES (?,?,?,?)",
		m.UserID, m.RecordType, m.Description, m.Date)
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
	m.ID = uint64(id)
	return nil
}

// RecordWithUser joins a medical record with the subject's name and role.
type RecordWithUser struct {
	Record   model.MedicalRecord
	UserName string
	UserRole string
}

// List returns records newest first, optionally filtered to one user.
func (r *MedicalRecordRepo) List(ctx context.Context, userID uint64) ([]RecordWithUser, error) {
	q := `SELECT m.id, m.user_id, m.record_type, m.description, m.date, m.created_at, u.name, u.role
	      FROM medical_records m
	      JOIN users u ON u.id = m.user_id`
	args := []any{}
	if userID != 0 {
		q += " WHERE m.user_id = ?"
		args = append(args, userID)
	}
	q += " ORDER BY m.date DESC, m.id DESC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RecordWithUser{}
	for rows.Next() {
		var rw RecordWithUser
		if err := rows.Scan(&rw.Record.ID, &rw.Record.UserID, &rw.Record.RecordType,
			&rw.Record.Description, &rw.Record.Date, &rw.Record.CreatedAt,
			&rw.UserName, &rw.UserRole); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}
