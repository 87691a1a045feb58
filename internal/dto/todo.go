package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hc-organizations/todo-backend/internal/domain"

	"github.com/google/uuid"
)

// DateTime parses startDate/endDate from JSON as either date-only
// ("2006-01-02") or RFC3339. Date-only is stored as start of that day in UTC.
type DateTime struct{ t *time.Time }

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",     // date only
		time.RFC3339,     // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano, // with nanoseconds
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			// If it was date-only (no time component), use start of day UTC
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			parsed = parsed.UTC()
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DateTime) Ptr() *time.Time { return d.t }

// ValidationError is a single field-level constraint violation, surfaced
// before any repository operation runs.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// ErrorResponse is the JSON body for every failure response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}

type CreateTodoRequest struct {
	Title     string   `json:"title" binding:"required,min=1,max=255"`
	Content   *string  `json:"content" binding:"omitempty,max=255"` // presence checked in Validate; empty is allowed
	Status    string   `json:"status" binding:"omitempty,oneof=NOT_STARTED TODO IN_PROGRESS DONE"`
	StartDate DateTime `json:"startDate"` // optional: "2026-02-19" or RFC3339
	EndDate   DateTime `json:"endDate"`
}

// Validate enforces presence of content (which may be empty, so the binder
// cannot check it) and the cross-field rule: when both dates are present the
// end date must not precede the start date.
func (r CreateTodoRequest) Validate() error {
	if r.Content == nil {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	start, end := r.StartDate.Ptr(), r.EndDate.Ptr()
	if start != nil && end != nil && end.Before(*start) {
		return &ValidationError{Field: "endDate", Message: "must not be before startDate"}
	}
	return nil
}

// StatusOrDefault resolves the optional status, falling back to NOT_STARTED.
func (r CreateTodoRequest) StatusOrDefault() domain.Status {
	if r.Status == "" {
		return domain.StatusNotStarted
	}
	st, _ := domain.ParseStatus(r.Status)
	return st
}

type UpdateTodoRequest struct {
	Title     *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Content   *string   `json:"content" binding:"omitempty,max=255"`
	Status    *string   `json:"status" binding:"omitempty,oneof=NOT_STARTED TODO IN_PROGRESS DONE"`
	StartDate *DateTime `json:"startDate"` // nil = leave unchanged
	EndDate   *DateTime `json:"endDate"`
}

// Validate rejects a payload that carries no fields at all; a partial update
// must name at least one field.
func (r UpdateTodoRequest) Validate() error {
	if r.Patch().Empty() {
		return &ValidationError{Field: "body", Message: "at least one field must be provided"}
	}
	return nil
}

// Patch converts the request into a domain-level partial update.
func (r UpdateTodoRequest) Patch() domain.Patch {
	p := domain.Patch{
		Title:   r.Title,
		Content: r.Content,
	}
	if r.Status != nil {
		st, _ := domain.ParseStatus(*r.Status)
		p.Status = &st
	}
	if r.StartDate != nil {
		p.StartDate = r.StartDate.Ptr()
	}
	if r.EndDate != nil {
		p.EndDate = r.EndDate.Ptr()
	}
	return p
}

// TodoResponse mirrors the persisted record, field for field, with camelCase
// wire names.
type TodoResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func FromDomain(t domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Content:   t.Content,
		Status:    string(t.Status),
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func FromDomainList(list []domain.Todo) []TodoResponse {
	out := make([]TodoResponse, len(list))
	for i := range list {
		out[i] = FromDomain(list[i])
	}
	return out
}
