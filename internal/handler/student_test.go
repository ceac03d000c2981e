package handler

import (
	"net/http"
	"testing"
)

func staffClaims() map[string]any {
	return map[string]any{"user_id": uint64(2), "role": "staff"}
}

func TestUpsertProfileRejectsNonStudents(t *testing.T) {
	// Staff and admins pass the student route gate but do not own fitness
	// profiles, so the write is refused before anything touches the store.
	h := &StudentHandler{}
	c, rec := jsonContext(t, http.MethodPost, "/api/student/profile", `{"age":20}`, staffClaims())
	if err := h.UpsertProfile(c); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestUpsertProfileInvalidAge(t *testing.T) {
	h := &StudentHandler{}
	c, rec := jsonContext(t, http.MethodPost, "/api/student/profile", `{"age":-3}`, studentClaims())
	if err := h.UpsertProfile(c); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpsertProfileInvalidMembershipStatus(t *testing.T) {
	h := &StudentHandler{}
	c, rec := jsonContext(t, http.MethodPost, "/api/student/profile", `{"membership_status":"vip"}`, studentClaims())
	if err := h.UpsertProfile(c); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCheckInRejectsNonStudents(t *testing.T) {
	h := &StudentHandler{}
	c, rec := jsonContext(t, http.MethodPost, "/api/student/attendance", `{}`, staffClaims())
	if err := h.CheckIn(c); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCheckInInvalidDate(t *testing.T) {
	h := &StudentHandler{}
	c, rec := jsonContext(t, http.MethodPost, "/api/student/attendance", `{"date":"14-03-2026"}`, studentClaims())
	if err := h.CheckIn(c); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCheckInInvalidStatus(t *testing.T) {
	h := &StudentHandler{}
	c, rec := jsonContext(t, http.MethodPost, "/api/student/attendance", `{"status":"late"}`, studentClaims())
	if err := h.CheckIn(c); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
