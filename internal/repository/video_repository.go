package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/gym-management/internal/model"
)

// VideoRepo provides access to the 'training_videos' table.
type VideoRepo struct{ DB *sql.DB }

func NewVideoRepo(db *sql.DB) *VideoRepo { return &VideoRepo{DB: db} }

const videoColumns = "id,title,description,video_url,category,uploaded_by,created_at"

func scanVideo(scan func(dest ...any) error) (model.TrainingVideo, error) {
	var (
		v    model.TrainingVideo
		desc sql.NullString
	)
	err := scan(&v.ID, &v.Title, &desc, &v.VideoURL, &v.Category, &v.UploadedBy, &v.CreatedAt)
	v.Description = desc.String
	return v, err
}

// Create inserts a video owned by UploadedBy and populates its ID.
func (r *VideoRepo) Create(ctx context.Context, v *model.TrainingVideo) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO training_videos (title,description,video_url,category,uploaded_by) VALUES (?,?,?,?,?)",
		v.Title, v.Description, v.VideoURL, v.Category, v.UploadedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches one video.  ErrNotFound when absent.
func (r *VideoRepo) GetByID(ctx context.Context, id uint64) (model.TrainingVideo, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+videoColumns+" FROM training_videos WHERE id=? LIMIT 1", id)
	v, err := scanVideo(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

// List returns videos, optionally filtered by category.
func (r *VideoRepo) List(ctx context.Context, category string) ([]model.TrainingVideo, error) {
	q := "SELECT " + videoColumns + " FROM training_videos"
	args := []any{}
	if category != "" {
		q += " WHERE category=?"
		args = append(args, category)
	}
	q += " ORDER BY id"
	return r.queryVideos(ctx, q, args...)
}

// ListByUploader returns videos owned by one user.
func (r *VideoRepo) ListByUploader(ctx context.Context, userID uint64) ([]model.TrainingVideo, error) {
	return r.queryVideos(ctx,
		"SELECT "+videoColumns+" FROM training_videos WHERE uploaded_by=? ORDER BY id", userID)
}

func (r *VideoRepo) queryVideos(ctx context.Context, q string, args ...any) ([]model.TrainingVideo, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.TrainingVideo{}
	for rows.Next() {
		v, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Update persists the mutable fields of a video.  Ownership is checked by
// the handler before this is called.
func (r *VideoRepo) Update(ctx context.Context, v *model.TrainingVideo) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE training_videos SET title=?, description=?, video_url=?, category=? WHERE id=?",
		v.Title, v.Description, v.VideoURL, v.Category, v.ID)
	return err
}

// Delete removes a video.  ErrNotFound when absent.
func (r *VideoRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM training_videos WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
