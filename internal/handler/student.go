package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/model"
	"github.com/iliyamo/gym-management/internal/repository"
)

// StudentHandler serves the /api/student group: the fitness profile,
// attendance, progress and the read-only directories (videos, diet plans,
// equipment, trainers, schedule, notifications).
type StudentHandler struct {
	Profiles      *repository.ProfileRepo
	Attendance    *repository.AttendanceRepo
	Videos        *repository.VideoRepo
	DietPlans     *repository.DietPlanRepo
	Equipment     *repository.EquipmentRepo
	Trainers      *repository.TrainerRepo
	Schedules     *repository.ScheduleRepo
	Notifications *repository.NotificationRepo
}

func NewStudentHandler(p *repository.ProfileRepo, a *repository.AttendanceRepo,
	v *repository.VideoRepo, d *repository.DietPlanRepo, e *repository.EquipmentRepo,
	t *repository.TrainerRepo, s *repository.ScheduleRepo, n *repository.NotificationRepo) *StudentHandler {
	return &StudentHandler{Profiles: p, Attendance: a, Videos: v, DietPlans: d,
		Equipment: e, Trainers: t, Schedules: s, Notifications: n}
}

// ----- profile -----

type studentProfileReq struct {
	Age               *int     `json:"age"`
	Height            *float64 `json:"height"`
	Weight            *float64 `json:"weight"`
	FitnessGoal       string   `json:"fitness_goal"`
	MedicalConditions string   `json:"medical_conditions"`
	Department        string   `json:"department"`
	MembershipStatus  string   `json:"membership_status"`
}

func studentProfileToResp(p model.StudentProfile) echo.Map {
	return echo.Map{
		"id":                 p.ID,
		"user_id":            p.UserID,
		"age":                p.Age,
		"height":             p.Height,
		"weight":             p.Weight,
		"fitness_goal":       p.FitnessGoal,
		"medical_conditions": p.MedicalConditions,
		"department":         p.Department,
		"membership_status":  p.MembershipStatus,
		"admission_date":     p.AdmissionDate.UTC().Format("2006-01-02"),
	}
}

// Profile reports the caller's fitness profile.  A profile that was never
// written is a normal state, not an error, and reading never creates one.
func (h *StudentHandler) Profile(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	p, err := h.Profiles.GetByUserID(c.Request().Context(), uid)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusOK, echo.Map{"profile_status": "not_created"})
	}
	if err != nil {
		return internalError(c, "load profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile_status": "created", "profile": studentProfileToResp(p)})
}

// UpsertProfile creates the caller's profile on first write and updates it
// afterwards.  Only student users own fitness profiles, so staff and admins
// passing through the gate cannot create one for themselves.
func (h *StudentHandler) UpsertProfile(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if currentRole(c) != model.RoleStudent {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only students have fitness profiles"})
	}
	var req studentProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 150) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid age"})
	}
	status := strings.ToLower(strings.TrimSpace(req.MembershipStatus))
	if status == "" {
		status = model.MembershipPending
	}
	if !model.ValidMembershipStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid membership_status"})
	}
	p, err := h.Profiles.Upsert(c.Request().Context(), &model.StudentProfile{
		UserID:            uid,
		Age:               req.Age,
		Height:            req.Height,
		Weight:            req.Weight,
		FitnessGoal:       req.FitnessGoal,
		MedicalConditions: req.MedicalConditions,
		Department:        req.Department,
		MembershipStatus:  status,
	})
	if err != nil {
		return repoError(c, "save profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile saved", "profile": studentProfileToResp(p)})
}

// ----- attendance -----

type checkInReq struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// ListAttendance returns the caller's attendance history.  A student who
// never checked in gets an empty list; reading does not create a profile.
func (h *StudentHandler) ListAttendance(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	p, err := h.Profiles.GetByUserID(ctx, uid)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusOK, echo.Map{"attendance": []echo.Map{}})
	}
	if err != nil {
		return internalError(c, "load profile", err)
	}
	records, err := h.Attendance.ListByProfile(ctx, p.ID)
	if err != nil {
		return internalError(c, "list attendance", err)
	}
	out := make([]echo.Map, 0, len(records))
	for _, rec := range records {
		out = append(out, echo.Map{
			"id":     rec.ID,
			"date":   rec.Date.UTC().Format("2006-01-02"),
			"status": rec.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"attendance": out})
}

// CheckIn records attendance for a calendar date, today by default.  The
// operation is idempotent per (student, date): repeating it resolves to the
// existing record instead of failing or duplicating.  Check-in is a write,
// so it may create the profile row when the student has none yet.
func (h *StudentHandler) CheckIn(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if currentRole(c) != model.RoleStudent {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only students check in"})
	}
	var req checkInReq
	_ = c.Bind(&req)

	date := time.Now().UTC()
	if req.Date != "" {
		if date, err = parseDate(req.Date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.AttendancePresent
	}
	if status != model.AttendancePresent && status != model.AttendanceAbsent {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx := c.Request().Context()
	profileID, err := h.Profiles.EnsureForUser(ctx, uid)
	if err != nil {
		return repoError(c, "resolve profile", err)
	}
	rec, created, err := h.Attendance.CheckIn(ctx, profileID, date, status)
	if err != nil {
		return repoError(c, "check in", err)
	}
	resp := echo.Map{
		"id":                 rec.ID,
		"date":               rec.Date.UTC().Format("2006-01-02"),
		"status":             rec.Status,
		"already_checked_in": !created,
	}
	if created {
		return c.JSON(http.StatusCreated, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

// Progress returns the attendance summary alongside the profile.
func (h *StudentHandler) Progress(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	p, err := h.Profiles.GetByUserID(ctx, uid)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusOK, echo.Map{
			"profile_status": "not_created",
			"attendance":     echo.Map{"total_days": 0, "present_days": 0, "absent_days": 0},
		})
	}
	if err != nil {
		return internalError(c, "load profile", err)
	}
	summary, err := h.Attendance.Summarize(ctx, p.ID)
	if err != nil {
		return internalError(c, "summarize attendance", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"profile_status": "created",
		"profile":        studentProfileToResp(p),
		"attendance": echo.Map{
			"total_days":   summary.TotalDays,
			"present_days": summary.PresentDays,
			"absent_days":  summary.AbsentDays,
		},
	})
}

// ----- directories -----

// ListVideos returns the video library, optionally filtered by ?category=.
func (h *StudentHandler) ListVideos(c echo.Context) error {
	vids, err := h.Videos.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return internalError(c, "list videos", err)
	}
	out := make([]videoResp, 0, len(vids))
	for _, v := range vids {
		out = append(out, videoToResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"videos": out})
}

// ListDietPlans returns every diet plan template.
func (h *StudentHandler) ListDietPlans(c echo.Context) error {
	plans, err := h.DietPlans.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list diet plans", err)
	}
	out := make([]dietPlanResp, 0, len(plans))
	for _, p := range plans {
		out = append(out, dietPlanToResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"diet_plans": out})
}

// MyDietPlans returns the caller's assignments with the plan and the
// assigning trainer's name embedded.
func (h *StudentHandler) MyDietPlans(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	assignments, err := h.DietPlans.ListAssignmentsForStudent(c.Request().Context(), uid)
	if err != nil {
		return internalError(c, "list diet plan assignments", err)
	}
	out := make([]echo.Map, 0, len(assignments))
	for _, ap := range assignments {
		out = append(out, echo.Map{
			"id":          ap.Assignment.ID,
			"status":      ap.Assignment.Status,
			"notes":       ap.Assignment.Notes,
			"assigned_at": ap.Assignment.AssignedAt.UTC().Format("2006-01-02 15:04:05"),
			"assigned_by": ap.TrainerName,
			"plan":        dietPlanToResp(ap.Plan),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"assignments": out})
}

// ListEquipment returns the gym inventory.
func (h *StudentHandler) ListEquipment(c echo.Context) error {
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

// ListTrainers returns the trainer directory.
func (h *StudentHandler) ListTrainers(c echo.Context) error {
	trainers, err := h.Trainers.ListWithNames(c.Request().Context())
	if err != nil {
		return internalError(c, "list trainers", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"trainers": trainerDirectory(trainers)})
}

// ListSchedule returns the caller's booked sessions, soonest first.
func (h *StudentHandler) ListSchedule(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessions, err := h.Schedules.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return internalError(c, "list schedule", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"schedule": scheduleList(sessions)})
}

// ----- notifications -----

// ListNotifications returns the caller's notifications, newest first.
func (h *StudentHandler) ListNotifications(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Notifications.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return internalError(c, "list notifications", err)
	}
	out := make([]echo.Map, 0, len(items))
	for _, n := range items {
		out = append(out, echo.Map{
			"id":         n.ID,
			"title":      n.Title,
			"message":    n.Message,
			"is_read":    n.IsRead,
			"created_at": n.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": out})
}

// MarkNotificationRead acknowledges one of the caller's notifications.  A
// notification belonging to someone else reads as not found.
func (h *StudentHandler) MarkNotificationRead(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}
	if err := h.Notifications.MarkRead(c.Request().Context(), id, uid); err != nil {
		return repoError(c, "mark notification read", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification marked read"})
}
