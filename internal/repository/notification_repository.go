package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/gym-management/internal/model"
)

// NotificationRepo provides access to the 'notifications' table.  Rows are
// written by the queue consumer and read by their recipients.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts a notification for a user.  A recipient deleted between
// publish and consume surfaces as ErrNotFound via the foreign key.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id,title,message) VALUES (?,?,?)",
		n.UserID, n.Title, n.Message)
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
	n.ID = uint64(id)
	return nil
}

// ListByUser returns a user's notifications newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,title,message,is_read,created_at FROM notifications WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as read.  The user_id predicate keeps one
// recipient from acknowledging another's notification; a miss on either
// column is ErrNotFound.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Already-read rows also affect zero rows; treat that as success.
		var already bool
		err := r.DB.QueryRowContext(ctx,
			"SELECT is_read FROM notifications WHERE id=? AND user_id=?", id, userID).Scan(&already)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}
