package handler

import (
	"net/http"
	"testing"
)

// The validation paths below reject before any repository call, so the
// handler runs with nil repositories.
func newTestStaffHandler() *StaffHandler {
	return NewStaffHandler(nil, nil, nil, nil, nil, nil)
}

func TestCreateActivityValidation(t *testing.T) {
	h := newTestStaffHandler()
	for _, body := range []string{
		`{}`,
		`{"title":"  ","starts_at":"2026-09-01T10:00:00Z"}`,
		`{"title":"Yoga","starts_at":"not-a-time"}`,
		`{"title":"Yoga"}`,
	} {
		c, rec := jsonContext(t, http.MethodPost, "/api/staff/activities", body, staffClaims())
		if err := h.CreateActivity(c); err != nil {
			t.Fatalf("CreateActivity(%s): %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("CreateActivity(%s) status = %d, want 400", body, rec.Code)
		}
	}
}

func TestDeleteActivityInvalidID(t *testing.T) {
	h := newTestStaffHandler()
	c, rec := jsonContext(t, http.MethodDelete, "/api/staff/activities/abc", "", staffClaims())
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.DeleteActivity(c); err != nil {
		t.Fatalf("DeleteActivity: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateUpdateValidation(t *testing.T) {
	h := newTestStaffHandler()
	for _, body := range []string{
		`{}`,
		`{"title":"Closed Friday"}`,
		`{"content":"The gym closes early."}`,
		`{"title":" ","content":" "}`,
	} {
		c, rec := jsonContext(t, http.MethodPost, "/api/staff/updates", body, staffClaims())
		if err := h.CreateUpdate(c); err != nil {
			t.Fatalf("CreateUpdate(%s): %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("CreateUpdate(%s) status = %d, want 400", body, rec.Code)
		}
	}
}

func TestAddFacultyValidation(t *testing.T) {
	h := newTestStaffHandler()
	for _, body := range []string{
		`{}`,
		`{"name":"Dana"}`,
		`{"email":"dana@gym.test"}`,
		`{"name":"Dana","email":"not-an-email"}`,
	} {
		c, rec := jsonContext(t, http.MethodPost, "/api/staff/faculty", body, staffClaims())
		if err := h.AddFaculty(c); err != nil {
			t.Fatalf("AddFaculty(%s): %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("AddFaculty(%s) status = %d, want 400", body, rec.Code)
		}
	}
}
