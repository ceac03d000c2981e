package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/gym-management/internal/model"
)

// EquipmentRepo provides access to the 'equipment' table.  The column for
// the condition enum is named `cond` because CONDITION is reserved in MySQL.
type EquipmentRepo struct{ DB *sql.DB }

func NewEquipmentRepo(db *sql.DB) *EquipmentRepo { return &EquipmentRepo{DB: db} }

const equipmentColumns = "id,name,description,quantity,cond,purchase_date,last_maintenance"

func scanEquipment(scan func(dest ...any) error) (model.Equipment, error) {
	var (
		e    model.Equipment
		desc sql.NullString
	)
	err := scan(&e.ID, &e.Name, &desc, &e.Quantity, &e.Condition, &e.PurchaseDate, &e.LastMaintenance)
	e.Description = desc.String
	return e, err
}

// Create inserts an equipment item and populates its ID.
func (r *EquipmentRepo) Create(ctx context.Context, e *model.Equipment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO equipment (name,description,quantity,cond,purchase_date,last_maintenance) VALUES (?,?,?,?,?,?)",
		e.Name, e.Description, e.Quantity, e.Condition, e.PurchaseDate, e.LastMaintenance)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches one item.  ErrNotFound when absent.
func (r *EquipmentRepo) GetByID(ctx context.Context, id uint64) (model.Equipment, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+equipmentColumns+" FROM equipment WHERE id=? LIMIT 1", id)
	e, err := scanEquipment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrNotFound
	}
	return e, err
}

// List returns the whole inventory ordered by id.
func (r *EquipmentRepo) List(ctx context.Context) ([]model.Equipment, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+equipmentColumns+" FROM equipment ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update persists all mutable fields of e.  ErrNotFound when the id does not
// exist.
func (r *EquipmentRepo) Update(ctx context.Context, e *model.Equipment) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE equipment SET name=?, description=?, quantity=?, cond=?, purchase_date=?, last_maintenance=? WHERE id=?",
		e.Name, e.Description, e.Quantity, e.Condition, e.PurchaseDate, e.LastMaintenance, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "unchanged": a no-op update on an
		// existing row also affects zero rows.
		if _, err := r.GetByID(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an item.  ErrNotFound when absent.
func (r *EquipmentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM equipment WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
