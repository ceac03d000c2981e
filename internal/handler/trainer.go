package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-management/internal/model"
	"github.com/iliyamo/gym-management/internal/queue"
	"github.com/iliyamo/gym-management/internal/repository"
	"github.com/iliyamo/gym-management/internal/service/notifier"
)

// TrainerHandler serves the /api/trainer group: the trainer's work profile,
// member listings, workout plans, diet plan assignment, session scheduling
// and medical records.
type TrainerHandler struct {
	Users        *repository.UserRepo
	Trainers     *repository.TrainerRepo
	WorkoutPlans *repository.WorkoutPlanRepo
	DietPlans    *repository.DietPlanRepo
	Schedules    *repository.ScheduleRepo
	Medical      *repository.MedicalRecordRepo
}

func NewTrainerHandler(u *repository.UserRepo, t *repository.TrainerRepo,
	w *repository.WorkoutPlanRepo, d *repository.DietPlanRepo,
	s *repository.ScheduleRepo, m *repository.MedicalRecordRepo) *TrainerHandler {
	return &TrainerHandler{Users: u, Trainers: t, WorkoutPlans: w, DietPlans: d, Schedules: s, Medical: m}
}

// ----- work profile (shared with the staff group) -----

type workProfileReq struct {
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	Bio             string `json:"bio"`
	Schedule        string `json:"schedule"`
}

func workProfileToResp(t model.Trainer) echo.Map {
	return echo.Map{
		"id":               t.ID,
		"user_id":          t.UserID,
		"specialization":   t.Specialization,
		"experience_years": t.ExperienceYears,
		"bio":              t.Bio,
		"schedule":         t.Schedule,
	}
}

// getWorkProfile reads the caller's trainer row.  A never-written profile is
// reported as not_created rather than treated as an error, and reading never
// creates the row.
func getWorkProfile(c echo.Context, trainers *repository.TrainerRepo) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	t, err := trainers.GetByUserID(c.Request().Context(), uid)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusOK, echo.Map{"profile_status": "not_created"})
	}
	if err != nil {
		return internalError(c, "load profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile_status": "created", "profile": workProfileToResp(t)})
}

// upsertWorkProfile creates the caller's trainer row on first write and
// updates it afterwards.
func upsertWorkProfile(c echo.Context, trainers *repository.TrainerRepo) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req workProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ExperienceYears < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "experience_years cannot be negative"})
	}
	t, err := trainers.Upsert(c.Request().Context(), &model.Trainer{
		UserID:          uid,
		Specialization:  strings.TrimSpace(req.Specialization),
		ExperienceYears: req.ExperienceYears,
		Bio:             req.Bio,
		Schedule:        req.Schedule,
	})
	if err != nil {
		return repoError(c, "save profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile saved", "profile": workProfileToResp(t)})
}

// Profile returns the caller's work profile.
func (h *TrainerHandler) Profile(c echo.Context) error {
	return getWorkProfile(c, h.Trainers)
}

// UpsertProfile creates or updates the caller's work profile.
func (h *TrainerHandler) UpsertProfile(c echo.Context) error {
	return upsertWorkProfile(c, h.Trainers)
}

// ListMembers returns the people a trainer works with: students and staff.
func (h *TrainerHandler) ListMembers(c echo.Context) error {
	members, err := h.Users.ListByRoles(c.Request().Context(), model.RoleStudent, model.RoleStaff)
	if err != nil {
		return internalError(c, "list members", err)
	}
	out := make([]userPart, 0, len(members))
	for _, u := range members {
		out = append(out, publicUser(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"members": out})
}

// ----- workout plans -----

type workoutPlanReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  uint64 `json:"assigned_to"`
}

// ListWorkoutPlans returns plans authored by the caller with assignees
// resolved to names.
func (h *TrainerHandler) ListWorkoutPlans(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	plans, err := h.WorkoutPlans.ListByCreator(c.Request().Context(), uid)
	if err != nil {
		return internalError(c, "list workout plans", err)
	}
	out := make([]echo.Map, 0, len(plans))
	for _, pa := range plans {
		out = append(out, echo.Map{
			"id":            pa.Plan.ID,
			"title":         pa.Plan.Title,
			"description":   pa.Plan.Description,
			"assigned_to":   pa.Plan.AssignedTo,
			"assignee_name": pa.AssigneeName,
			"assignee_role": pa.AssigneeRole,
			"created_at":    pa.Plan.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"workout_plans": out})
}

// CreateWorkoutPlan authors a plan for one assignee.  The creator comes from
// the verified token; the assignee must exist before anything is written.
// The assignee is notified through the queue, and a broker outage never
// fails the mutation.
func (h *TrainerHandler) CreateWorkoutPlan(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req workoutPlanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.AssignedTo == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and assigned_to are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, req.AssignedTo); err != nil {
		return repoError(c, "load assignee", err)
	}
	p := model.WorkoutPlan{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   uid,
		AssignedTo:  req.AssignedTo,
	}
	if err := h.WorkoutPlans.Create(ctx, &p); err != nil {
		return repoError(c, "create workout plan", err)
	}
	_ = notifier.Publish(ctx, queue.NotificationEvent{
		UserID:  p.AssignedTo,
		Title:   "New workout plan",
		Message: fmt.Sprintf("You have been assigned the workout plan %q.", p.Title),
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "workout plan created", "id": p.ID})
}

// UpdateWorkoutPlan edits a plan.  Only the creator or an admin may mutate
// it; the check runs before any write.
func (h *TrainerHandler) UpdateWorkoutPlan(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid plan id"})
	}
	var req workoutPlanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	p, err := h.WorkoutPlans.GetByID(ctx, id)
	if err != nil {
		return repoError(c, "load workout plan", err)
	}
	if p.CreatedBy != uid && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if s := strings.TrimSpace(req.Title); s != "" {
		p.Title = s
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.AssignedTo != 0 && req.AssignedTo != p.AssignedTo {
		if _, err := h.Users.GetByID(ctx, req.AssignedTo); err != nil {
			return repoError(c, "load assignee", err)
		}
		p.AssignedTo = req.AssignedTo
	}
	if err := h.WorkoutPlans.Update(ctx, &p); err != nil {
		return repoError(c, "update workout plan", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "workout plan updated"})
}

// DeleteWorkoutPlan removes a plan under the same creator-or-admin rule.
func (h *TrainerHandler) DeleteWorkoutPlan(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid plan id"})
	}
	ctx := c.Request().Context()
	p, err := h.WorkoutPlans.GetByID(ctx, id)
	if err != nil {
		return repoError(c, "load workout plan", err)
	}
	if p.CreatedBy != uid && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.WorkoutPlans.Delete(ctx, id); err != nil {
		return repoError(c, "delete workout plan", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- diet assignment -----

type assignDietReq struct {
	StudentID  uint64 `json:"student_id"`
	DietPlanID uint64 `json:"diet_plan_id"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

// AssignDiet pairs a diet plan template with a student.  The target must be
// a student user and the template must exist; both checks run before the
// insert.  The student is notified through the queue.
func (h *TrainerHandler) AssignDiet(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req assignDietReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.StudentID == 0 || req.DietPlanID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student_id and diet_plan_id are required"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.AssignmentActive
	}
	if !model.ValidAssignmentStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx := c.Request().Context()
	student, err := h.Users.GetByID(ctx, req.StudentID)
	if err != nil {
		return repoError(c, "load student", err)
	}
	if student.Role != model.RoleStudent {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "target user is not a student"})
	}
	plan, err := h.DietPlans.GetByID(ctx, req.DietPlanID)
	if err != nil {
		return repoError(c, "load diet plan", err)
	}
	a := model.DietPlanAssignment{
		StudentID:  student.ID,
		DietPlanID: plan.ID,
		AssignedBy: uid,
		Status:     status,
		Notes:      req.Notes,
	}
	if err := h.DietPlans.Assign(ctx, &a); err != nil {
		return repoError(c, "assign diet plan", err)
	}
	_ = notifier.Publish(ctx, queue.NotificationEvent{
		UserID:  student.ID,
		Title:   "New diet plan",
		Message: fmt.Sprintf("The diet plan %q has been assigned to you.", plan.Title),
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "diet plan assigned", "id": a.ID})
}

// ListDietPlans returns every template so a trainer can pick one to assign.
func (h *TrainerHandler) ListDietPlans(c echo.Context) error {
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

// ----- schedule -----

type bookSessionReq struct {
	UserID      uint64 `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ScheduledAt string `json:"scheduled_at"`
	Location    string `json:"location"`
}

// ListSchedule returns sessions that reference the caller as trainer.
func (h *TrainerHandler) ListSchedule(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessions, err := h.Schedules.ListByTrainerUser(c.Request().Context(), uid)
	if err != nil {
		return internalError(c, "list schedule", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"schedule": scheduleList(sessions)})
}

// BookSession books a session between the caller and a member.  The caller's
// trainer row is created on the spot when missing so a trainer who never
// filled a profile can still book.  The attendee is notified.
func (h *TrainerHandler) BookSession(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.UserID == 0 || req.Title == "" || req.ScheduledAt == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id, title and scheduled_at are required"})
	}
	when, err := parseDateTime(req.ScheduledAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid scheduled_at"})
	}

	ctx := c.Request().Context()
	attendee, err := h.Users.GetByID(ctx, req.UserID)
	if err != nil {
		return repoError(c, "load attendee", err)
	}
	trainerID, err := h.Trainers.EnsureForUser(ctx, uid)
	if err != nil {
		return repoError(c, "resolve trainer", err)
	}
	s := model.Schedule{
		UserID:      attendee.ID,
		TrainerID:   &trainerID,
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: when,
		Location:    req.Location,
	}
	if err := h.Schedules.Create(ctx, &s); err != nil {
		return repoError(c, "book session", err)
	}
	_ = notifier.Publish(ctx, queue.NotificationEvent{
		UserID:  attendee.ID,
		Title:   "Session booked",
		Message: fmt.Sprintf("A session %q has been booked for %s.", s.Title, when.UTC().Format("2006-01-02 15:04")),
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "session booked", "id": s.ID})
}

// ----- medical records -----

type medicalRecordReq struct {
	UserID      uint64 `json:"user_id"`
	RecordType  string `json:"record_type"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// ListMedicalRecords returns records newest first, optionally filtered with
// ?user_id=.
func (h *TrainerHandler) ListMedicalRecords(c echo.Context) error {
	var userID uint64
	if s := c.QueryParam("user_id"); s != "" {
		var err error
		if userID, err = parseUint(s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
	}
	records, err := h.Medical.List(c.Request().Context(), userID)
	if err != nil {
		return internalError(c, "list medical records", err)
	}
	out := make([]echo.Map, 0, len(records))
	for _, rw := range records {
		out = append(out, echo.Map{
			"id":          rw.Record.ID,
			"user_id":     rw.Record.UserID,
			"user_name":   rw.UserName,
			"user_role":   rw.UserRole,
			"record_type": rw.Record.RecordType,
			"description": rw.Record.Description,
			"date":        rw.Record.Date.UTC().Format("2006-01-02"),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"medical_records": out})
}

// CreateMedicalRecord documents an injury or condition for a user.
func (h *TrainerHandler) CreateMedicalRecord(c echo.Context) error {
	var req medicalRecordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RecordType = strings.ToLower(strings.TrimSpace(req.RecordType))
	if req.UserID == 0 || req.Description == "" || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id, description and date are required"})
	}
	if !model.ValidRecordType(req.RecordType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record_type"})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	m := model.MedicalRecord{
		UserID:      req.UserID,
		RecordType:  req.RecordType,
		Description: req.Description,
		Date:        date,
	}
	if err := h.Medical.Create(c.Request().Context(), &m); err != nil {
		return repoError(c, "create medical record", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "medical record created", "id": m.ID})
}

// scheduleList shapes joined schedule rows; shared with the student view.
func scheduleList(sessions []repository.ScheduleWithNames) []echo.Map {
	out := make([]echo.Map, 0, len(sessions))
	for _, sn := range sessions {
		row := echo.Map{
			"id":           sn.Schedule.ID,
			"user_id":      sn.Schedule.UserID,
			"user_name":    sn.UserName,
			"title":        sn.Schedule.Title,
			"description":  sn.Schedule.Description,
			"scheduled_at": sn.Schedule.ScheduledAt.UTC().Format("2006-01-02 15:04:05"),
			"location":     sn.Schedule.Location,
		}
		if sn.Schedule.TrainerID != nil {
			row["trainer_id"] = *sn.Schedule.TrainerID
			row["trainer_name"] = sn.TrainerName
		}
		out = append(out, row)
	}
	return out
}
