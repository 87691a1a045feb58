package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hc-organizations/todo-backend/internal/domain"

	"github.com/google/uuid"
)

func TestDateTimeUnmarshal(t *testing.T) {
	var d DateTime
	if err := json.Unmarshal([]byte(`"2026-02-19"`), &d); err != nil {
		t.Fatalf("date-only: %v", err)
	}
	want := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)
	if d.Ptr() == nil || !d.Ptr().Equal(want) {
		t.Errorf("date-only parsed as %v, want %v", d.Ptr(), want)
	}

	if err := json.Unmarshal([]byte(`"2026-02-19T10:30:00+02:00"`), &d); err != nil {
		t.Fatalf("RFC3339: %v", err)
	}
	if d.Ptr() == nil || !d.Ptr().Equal(time.Date(2026, 2, 19, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("RFC3339 parsed as %v", d.Ptr())
	}

	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("null: %v", err)
	}
	if d.Ptr() != nil {
		t.Error("null should clear the value")
	}

	if err := json.Unmarshal([]byte(`"next tuesday"`), &d); err == nil {
		t.Error("garbage input should fail")
	}
}

func TestCreateValidateDateOrder(t *testing.T) {
	var req CreateTodoRequest
	body := `{"title":"t","content":"c","startDate":"2026-03-01","endDate":"2026-02-01"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	err := req.Validate()
	if err == nil {
		t.Fatal("endDate before startDate must be rejected")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "endDate" {
		t.Errorf("want a ValidationError on endDate, got %v", err)
	}

	// equal dates are allowed
	body = `{"title":"t","content":"c","startDate":"2026-03-01","endDate":"2026-03-01"}`
	req = CreateTodoRequest{}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("equal dates should pass: %v", err)
	}

	// one-sided dates are allowed
	req = CreateTodoRequest{}
	if err := json.Unmarshal([]byte(`{"title":"t","content":"c","endDate":"2026-02-01"}`), &req); err != nil {
		t.Fatal(err)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("endDate alone should pass: %v", err)
	}
}

func TestCreateValidateContentPresence(t *testing.T) {
	var req CreateTodoRequest
	if err := json.Unmarshal([]byte(`{"title":"t"}`), &req); err != nil {
		t.Fatal(err)
	}
	var ve *ValidationError
	if err := req.Validate(); !errors.As(err, &ve) || ve.Field != "content" {
		t.Errorf("absent content must be rejected, got %v", err)
	}

	req = CreateTodoRequest{}
	if err := json.Unmarshal([]byte(`{"title":"t","content":""}`), &req); err != nil {
		t.Fatal(err)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("explicitly empty content is allowed: %v", err)
	}
}

func TestUpdateValidateEmptyPayload(t *testing.T) {
	var req UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatal(err)
	}
	if err := req.Validate(); err == nil {
		t.Error("empty update payload must be rejected")
	}

	req = UpdateTodoRequest{}
	if err := json.Unmarshal([]byte(`{"status":"DONE"}`), &req); err != nil {
		t.Fatal(err)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("single-field update should pass: %v", err)
	}
	p := req.Patch()
	if p.Status == nil || *p.Status != domain.StatusDone {
		t.Errorf("patch status = %v, want DONE", p.Status)
	}
	if p.Title != nil || p.Content != nil || p.StartDate != nil || p.EndDate != nil {
		t.Error("absent fields must stay nil in the patch")
	}
}

func TestResponseWireNames(t *testing.T) {
	now := time.Date(2026, 2, 19, 8, 30, 0, 0, time.UTC)
	resp := FromDomain(domain.Todo{
		ID:        uuid.New(),
		Title:     "t",
		Content:   "c",
		Status:    domain.StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	})
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, key := range []string{`"id"`, `"title"`, `"content"`, `"status"`, `"startDate"`, `"endDate"`, `"createdAt"`, `"updatedAt"`} {
		if !strings.Contains(s, key) {
			t.Errorf("response JSON is missing %s: %s", key, s)
		}
	}
	if strings.Contains(s, "start_date") || strings.Contains(s, "created_at") {
		t.Error("internal snake_case names leaked onto the wire")
	}
	if !strings.Contains(s, `"status":"IN_PROGRESS"`) {
		t.Errorf("status should serialize as its enum string: %s", s)
	}
}
