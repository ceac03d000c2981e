package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/model"
	"github.com/iliyamo/gym-management/internal/repository"
)

// StaffHandler serves the /api/staff group.  Staff keep a work profile in
// the same table as trainers, author diet plan templates, browse the student
// roster and maintain the gym's activities, department updates and faculty
// roster.
type StaffHandler struct {
	Trainers   *repository.TrainerRepo
	DietPlans  *repository.DietPlanRepo
	Profiles   *repository.ProfileRepo
	Activities *repository.ActivityRepo
	Updates    *repository.UpdateRepo
	Faculty    *repository.FacultyRepo
}

func NewStaffHandler(t *repository.TrainerRepo, d *repository.DietPlanRepo, p *repository.ProfileRepo,
	a *repository.ActivityRepo, u *repository.UpdateRepo, f *repository.FacultyRepo) *StaffHandler {
	return &StaffHandler{Trainers: t, DietPlans: d, Profiles: p, Activities: a, Updates: u, Faculty: f}
}

// Profile returns the caller's work profile.
func (h *StaffHandler) Profile(c echo.Context) error {
	return getWorkProfile(c, h.Trainers)
}

// UpsertProfile creates or updates the caller's work profile.
func (h *StaffHandler) UpsertProfile(c echo.Context) error {
	return upsertWorkProfile(c, h.Trainers)
}

// ----- diet plans -----

type dietPlanReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Calories    *int     `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fat         *float64 `json:"fat"`
}

type dietPlanResp struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Calories    *int     `json:"calories,omitempty"`
	Protein     *float64 `json:"protein,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	CreatedBy   uint64   `json:"created_by"`
	CreatedAt   string   `json:"created_at"`
}

func dietPlanToResp(p model.DietPlan) dietPlanResp {
	return dietPlanResp{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Calories:    p.Calories,
		Protein:     p.Protein,
		Carbs:       p.Carbs,
		Fat:         p.Fat,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// ListDietPlans returns templates authored by the caller.
func (h *StaffHandler) ListDietPlans(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	plans, err := h.DietPlans.ListByCreator(c.Request().Context(), uid)
	if err != nil {
		return internalError(c, "list diet plans", err)
	}
	out := make([]dietPlanResp, 0, len(plans))
	for _, p := range plans {
		out = append(out, dietPlanToResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"diet_plans": out})
}

// CreateDietPlan authors a new template owned by the caller.
func (h *StaffHandler) CreateDietPlan(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req dietPlanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	p := model.DietPlan{
		Title:       req.Title,
		Description: req.Description,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		CreatedBy:   uid,
	}
	if err := h.DietPlans.Create(c.Request().Context(), &p); err != nil {
		return internalError(c, "create diet plan", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "diet plan created", "id": p.ID})
}

// ListStudents returns the roster: every student user with their profile
// embedded when one has been created.
func (h *StaffHandler) ListStudents(c echo.Context) error {
	students, err := h.Profiles.ListStudents(c.Request().Context())
	if err != nil {
		return internalError(c, "list students", err)
	}
	out := make([]echo.Map, 0, len(students))
	for _, s := range students {
		row := echo.Map{
			"id":    s.User.ID,
			"name":  s.User.Name,
			"email": s.User.Email,
		}
		if s.Profile != nil {
			row["profile"] = studentProfileToResp(*s.Profile)
		}
		out = append(out, row)
	}
	return c.JSON(http.StatusOK, echo.Map{"students": out})
}

// ----- activities -----

type activityReq struct {
	Title        string `json:"title"`
	StartsAt     string `json:"starts_at"`
	Participants uint   `json:"participants"`
	Location     string `json:"location"`
}

func activityToResp(a model.Activity) echo.Map {
	return echo.Map{
		"id":           a.ID,
		"title":        a.Title,
		"starts_at":    a.StartsAt.UTC().Format("2006-01-02 15:04:05"),
		"participants": a.Participants,
		"location":     a.Location,
		"created_by":   a.CreatedBy,
		"created_at":   a.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// ListActivities returns every scheduled activity, soonest first.
func (h *StaffHandler) ListActivities(c echo.Context) error {
	acts, err := h.Activities.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list activities", err)
	}
	out := make([]echo.Map, 0, len(acts))
	for _, a := range acts {
		out = append(out, activityToResp(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"activities": out})
}

// CreateActivity schedules a new group activity owned by the caller.
func (h *StaffHandler) CreateActivity(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req activityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	startsAt, err := parseDateTime(req.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_at"})
	}
	a := model.Activity{
		Title:        req.Title,
		StartsAt:     startsAt,
		Participants: req.Participants,
		Location:     strings.TrimSpace(req.Location),
		CreatedBy:    uid,
	}
	if err := h.Activities.Create(c.Request().Context(), &a); err != nil {
		return internalError(c, "create activity", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "activity created", "id": a.ID})
}

// DeleteActivity cancels an activity.
func (h *StaffHandler) DeleteActivity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Activities.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, "delete activity", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "activity deleted"})
}

// ----- department updates -----

type updateReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListUpdates returns department announcements, newest first.
func (h *StaffHandler) ListUpdates(c echo.Context) error {
	ups, err := h.Updates.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list updates", err)
	}
	out := make([]echo.Map, 0, len(ups))
	for _, u := range ups {
		out = append(out, echo.Map{
			"id":         u.ID,
			"title":      u.Title,
			"content":    u.Content,
			"posted_by":  u.PostedBy,
			"created_at": u.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"updates": out})
}

// CreateUpdate posts a department announcement.
func (h *StaffHandler) CreateUpdate(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and content are required"})
	}
	u := model.DepartmentUpdate{Title: req.Title, Content: req.Content, PostedBy: uid}
	if err := h.Updates.Create(c.Request().Context(), &u); err != nil {
		return internalError(c, "create update", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "update posted", "id": u.ID})
}

// ----- faculty roster -----

type facultyReq struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// ListFaculty returns the faculty roster.
func (h *StaffHandler) ListFaculty(c echo.Context) error {
	members, err := h.Faculty.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list faculty", err)
	}
	out := make([]echo.Map, 0, len(members))
	for _, f := range members {
		out = append(out, echo.Map{
			"id":          f.ID,
			"name":        f.Name,
			"email":       f.Email,
			"department":  f.Department,
			"position":    f.Position,
			"joined_date": f.JoinedDate.UTC().Format("2006-01-02"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"faculty": out})
}

// AddFaculty adds a member to the roster.  Roster rows are directory data,
// not accounts, so no users row is created.
func (h *StaffHandler) AddFaculty(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req facultyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}
	f := model.FacultyMember{
		Name:       req.Name,
		Email:      req.Email,
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		CreatedBy:  uid,
	}
	if err := h.Faculty.Create(c.Request().Context(), &f); err != nil {
		return repoError(c, "add faculty", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "faculty member added", "id": f.ID})
}
