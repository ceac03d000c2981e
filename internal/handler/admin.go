package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/model"
	"github.com/iliyamo/gym-management/internal/repository"
)

// AdminHandler serves the /api/admin group: user administration, the
// equipment inventory and dashboard stats.
type AdminHandler struct {
	Users     *repository.UserRepo
	Equipment *repository.EquipmentRepo
	Trainers  *repository.TrainerRepo
}

func NewAdminHandler(u *repository.UserRepo, e *repository.EquipmentRepo, t *repository.TrainerRepo) *AdminHandler {
	return &AdminHandler{Users: u, Equipment: e, Trainers: t}
}

// ----- users -----

// ListUsers returns all users, optionally filtered by ?role=.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := strings.ToLower(strings.TrimSpace(c.QueryParam("role")))
	if role != "" && !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}
	users, err := h.Users.List(c.Request().Context(), role)
	if err != nil {
		return internalError(c, "list users", err)
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// GetUser returns one user's public fields.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, "load user", err)
	}
	return c.JSON(http.StatusOK, publicUser(u))
}

type updateUserReq struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	Role          *string  `json:"role"`
	Gender        *string  `json:"gender"`
	BloodGroup    *string  `json:"blood_group"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	PaymentMethod *string  `json:"payment_method"`
}

// UpdateUser applies a partial update.  Absent fields keep their stored
// values; a role change must stay inside the closed enum.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, "load user", err)
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !model.ValidRole(role) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
		}
		u.Role = role
	}
	if req.Gender != nil {
		u.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		u.BloodGroup = *req.BloodGroup
	}
	if req.Height != nil {
		u.Height = req.Height
	}
	if req.Weight != nil {
		u.Weight = req.Weight
	}
	if req.PaymentMethod != nil {
		u.PaymentMethod = *req.PaymentMethod
	}
	if u.Name == "" || u.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email cannot be empty"})
	}
	if err := h.Users.Update(ctx, &u); err != nil {
		return repoError(c, "update user", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated", "user": publicUser(u)})
}

// DeleteUser removes a user and, through the schema's cascade rules, their
// profile, tokens, notifications, schedules and authored content.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, "delete user", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- equipment -----

type equipmentReq struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Quantity        *uint  `json:"quantity"`
	Condition       string `json:"condition"`
	PurchaseDate    string `json:"purchase_date"`
	LastMaintenance string `json:"last_maintenance"`
}

type equipmentResp struct {
	ID              uint64  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Quantity        uint    `json:"quantity"`
	Condition       string  `json:"condition"`
	PurchaseDate    *string `json:"purchase_date,omitempty"`
	LastMaintenance *string `json:"last_maintenance,omitempty"`
}

func equipmentToResp(e model.Equipment) equipmentResp {
	r := equipmentResp{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Quantity:    e.Quantity,
		Condition:   e.Condition,
	}
	if e.PurchaseDate != nil {
		s := e.PurchaseDate.UTC().Format("2006-01-02")
		r.PurchaseDate = &s
	}
	if e.LastMaintenance != nil {
		s := e.LastMaintenance.UTC().Format("2006-01-02")
		r.LastMaintenance = &s
	}
	return r
}

func (req equipmentReq) toModel() (model.Equipment, string) {
	e := model.Equipment{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Condition:   strings.ToLower(strings.TrimSpace(req.Condition)),
	}
	if e.Name == "" {
		return e, "name is required"
	}
	if req.Quantity != nil {
		e.Quantity = *req.Quantity
	} else {
		e.Quantity = 1
	}
	if e.Condition == "" {
		e.Condition = model.ConditionGood
	}
	if !model.ValidCondition(e.Condition) {
		return e, "invalid condition"
	}
	if req.PurchaseDate != "" {
		t, err := parseDate(req.PurchaseDate)
		if err != nil {
			return e, "invalid purchase_date"
		}
		e.PurchaseDate = &t
	}
	if req.LastMaintenance != "" {
		t, err := parseDate(req.LastMaintenance)
		if err != nil {
			return e, "invalid last_maintenance"
		}
		e.LastMaintenance = &t
	}
	return e, ""
}

// ListEquipment returns the whole inventory.
func (h *AdminHandler) ListEquipment(c echo.Context) error {
	items, err := h.Equipment.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list equipment", err)
	}
	out := make([]equipmentResp, 0, len(items))
	for _, e := range items {
		out = append(out, equipmentToResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"equipment": out})
}

// GetEquipment returns one inventory item.
func (h *AdminHandler) GetEquipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid equipment id"})
	}
	e, err := h.Equipment.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, "load equipment", err)
	}
	return c.JSON(http.StatusOK, equipmentToResp(e))
}

// CreateEquipment adds an inventory item.
func (h *AdminHandler) CreateEquipment(c echo.Context) error {
	var req equipmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	e, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Equipment.Create(c.Request().Context(), &e); err != nil {
		return internalError(c, "create equipment", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "equipment created", "id": e.ID})
}

// UpdateEquipment replaces an item's fields.
func (h *AdminHandler) UpdateEquipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid equipment id"})
	}
	var req equipmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	e, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	e.ID = id
	if err := h.Equipment.Update(c.Request().Context(), &e); err != nil {
		return repoError(c, "update equipment", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "equipment updated", "equipment": equipmentToResp(e)})
}

// DeleteEquipment removes an item.
func (h *AdminHandler) DeleteEquipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid equipment id"})
	}
	if err := h.Equipment.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, "delete equipment", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- trainers & stats -----

// ListTrainers returns the trainer directory with user names resolved.
func (h *AdminHandler) ListTrainers(c echo.Context) error {
	trainers, err := h.Trainers.ListWithNames(c.Request().Context())
	if err != nil {
		return internalError(c, "list trainers", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"trainers": trainerDirectory(trainers)})
}

// Stats returns the dashboard headcounts per role.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	counts := echo.Map{}
	total := 0
	for _, role := range []string{model.RoleAdmin, model.RoleStaff, model.RoleTrainer, model.RoleStudent} {
		n, err := h.Users.CountByRole(ctx, role)
		if err != nil {
			return internalError(c, "count users", err)
		}
		counts[role+"s"] = n
		total += n
	}
	counts["total_users"] = total
	counts["generated_at"] = time.Now().UTC().Format(time.RFC3339)
	return c.JSON(http.StatusOK, counts)
}

// trainerDirectory shapes joined trainer rows for listing endpoints; shared
// with the student trainer directory.
func trainerDirectory(trainers []repository.TrainerWithName) []echo.Map {
	out := make([]echo.Map, 0, len(trainers))
	for _, tw := range trainers {
		out = append(out, echo.Map{
			"id":               tw.Trainer.ID,
			"user_id":          tw.Trainer.UserID,
			"name":             tw.Name,
			"email":            tw.Email,
			"specialization":   tw.Trainer.Specialization,
			"experience_years": tw.Trainer.ExperienceYears,
			"bio":              tw.Trainer.Bio,
			"schedule":         tw.Trainer.Schedule,
		})
	}
	return out
}
