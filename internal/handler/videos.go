package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/model"
	"github.com/iliyamo/gym-management/internal/repository"
)

// VideoHandler serves training video endpoints shared by the staff and
// trainer route groups.  Ownership comes from the verified token, never the
// request body; mutation requires the uploader or an admin.
type VideoHandler struct {
	Videos *repository.VideoRepo
}

func NewVideoHandler(v *repository.VideoRepo) *VideoHandler { return &VideoHandler{Videos: v} }

type videoReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Category    string `json:"category"`
}

type videoResp struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"video_url"`
	Category    string `json:"category,omitempty"`
	UploadedBy  uint64 `json:"uploaded_by"`
	CreatedAt   string `json:"created_at"`
}

func videoToResp(v model.TrainingVideo) videoResp {
	return videoResp{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VideoURL:    v.VideoURL,
		Category:    v.Category,
		UploadedBy:  v.UploadedBy,
		CreatedAt:   v.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// ListMine returns the caller's own uploads.
func (h *VideoHandler) ListMine(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	vids, err := h.Videos.ListByUploader(c.Request().Context(), uid)
	if err != nil {
		return internalError(c, "list videos", err)
	}
	out := make([]videoResp, 0, len(vids))
	for _, v := range vids {
		out = append(out, videoToResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"videos": out})
}

// Create registers a new video owned by the caller.
func (h *VideoHandler) Create(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req videoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.VideoURL = strings.TrimSpace(req.VideoURL)
	if req.Title == "" || req.VideoURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and video_url are required"})
	}
	v := model.TrainingVideo{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Category:    req.Category,
		UploadedBy:  uid,
	}
	if err := h.Videos.Create(c.Request().Context(), &v); err != nil {
		return internalError(c, "create video", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "video created", "id": v.ID})
}

// Update edits a video.  Only the uploader or an admin may mutate it; a
// valid identity without that standing gets 403 before anything is written.
func (h *VideoHandler) Update(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid video id"})
	}
	var req videoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	v, err := h.Videos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, "load video", err)
	}
	if v.UploadedBy != uid && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if s := strings.TrimSpace(req.Title); s != "" {
		v.Title = s
	}
	if req.Description != "" {
		v.Description = req.Description
	}
	if s := strings.TrimSpace(req.VideoURL); s != "" {
		v.VideoURL = s
	}
	if req.Category != "" {
		v.Category = req.Category
	}
	if err := h.Videos.Update(ctx, &v); err != nil {
		return internalError(c, "update video", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "video updated"})
}

// Delete removes a video under the same owner-or-admin rule as Update.
func (h *VideoHandler) Delete(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid video id"})
	}
	ctx := c.Request().Context()
	v, err := h.Videos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, "load video", err)
	}
	if v.UploadedBy != uid && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Videos.Delete(ctx, id); err != nil {
		return repoError(c, "delete video", err)
	}
	return c.NoContent(http.StatusNoContent)
}
