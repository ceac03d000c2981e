package handler

import (
	"net/http"
	"testing"
)

func trainerClaims() map[string]any {
	return map[string]any{"user_id": uint64(3), "role": "trainer"}
}

func TestAssignDietMissingIDs(t *testing.T) {
	h := &TrainerHandler{}
	for _, body := range []string{`{}`, `{"student_id":5}`, `{"diet_plan_id":9}`} {
		c, rec := jsonContext(t, http.MethodPost, "/api/trainer/assign-diet", body, trainerClaims())
		if err := h.AssignDiet(c); err != nil {
			t.Fatalf("AssignDiet(%s): %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("AssignDiet(%s) status = %d, want 400", body, rec.Code)
		}
	}
}

func TestAssignDietInvalidStatus(t *testing.T) {
	h := &TrainerHandler{}
	body := `{"student_id":5,"diet_plan_id":9,"status":"paused"}`
	c, rec := jsonContext(t, http.MethodPost, "/api/trainer/assign-diet", body, trainerClaims())
	if err := h.AssignDiet(c); err != nil {
		t.Fatalf("AssignDiet: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateWorkoutPlanMissingFields(t *testing.T) {
	h := &TrainerHandler{}
	for _, body := range []string{`{}`, `{"title":"Push day"}`, `{"assigned_to":4}`} {
		c, rec := jsonContext(t, http.MethodPost, "/api/trainer/workout-plans", body, trainerClaims())
		if err := h.CreateWorkoutPlan(c); err != nil {
			t.Fatalf("CreateWorkoutPlan(%s): %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("CreateWorkoutPlan(%s) status = %d, want 400", body, rec.Code)
		}
	}
}

func TestBookSessionInvalidTime(t *testing.T) {
	h := &TrainerHandler{}
	body := `{"user_id":5,"title":"Intro session","scheduled_at":"next tuesday"}`
	c, rec := jsonContext(t, http.MethodPost, "/api/trainer/schedule", body, trainerClaims())
	if err := h.BookSession(c); err != nil {
		t.Fatalf("BookSession: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateMedicalRecordInvalidType(t *testing.T) {
	h := &TrainerHandler{}
	body := `{"user_id":5,"record_type":"allergy","description":"pollen","date":"2026-01-10"}`
	c, rec := jsonContext(t, http.MethodPost, "/api/trainer/medical-records", body, trainerClaims())
	if err := h.CreateMedicalRecord(c); err != nil {
		t.Fatalf("CreateMedicalRecord: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateEquipmentInvalidCondition(t *testing.T) {
	h := &AdminHandler{}
	body := `{"name":"Treadmill","condition":"broken"}`
	c, rec := jsonContext(t, http.MethodPost, "/api/admin/equipment", body, map[string]any{"user_id": uint64(1), "role": "admin"})
	if err := h.CreateEquipment(c); err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
