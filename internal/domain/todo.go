package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a Todo. The string values are both the
// stored representation and the wire representation, so the enum is declared
// exactly once.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ParseStatus maps a raw string onto a Status. The second return value is
// false for anything outside the enumerated set.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNotStarted, StatusTodo, StatusInProgress, StatusDone:
		return Status(s), true
	}
	return "", false
}

// Domain entity: the persisted shape of a todo record.
// Does not depend on Gin or Postgres.
type Todo struct {
	ID      uuid.UUID
	Title   string
	Content string
	Status  Status

	StartDate *time.Time
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch carries the fields of a partial update. A nil field means "leave
// unchanged"; there is no way to clear a date back to null through a patch.
type Patch struct {
	Title     *string
	Content   *string
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
}

// Empty reports whether the patch carries no fields at all.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Status == nil &&
		p.StartDate == nil && p.EndDate == nil
}

// Apply merges the present fields of p into t and stamps UpdatedAt.
// Absent fields keep their prior values.
func (t *Todo) Apply(p Patch, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.StartDate != nil {
		t.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = p.EndDate
	}
	t.UpdatedAt = now
}
