package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "github.com/hc-organizations/todo-backend/internal/domain"

	"github.com/google/uuid"
)

// memRepo is an in-memory TodoRepo with the same not-found and
// partial-update semantics as the Postgres implementation.
type memRepo struct {
	todos map[uuid.UUID]dom.Todo
}

func newMemRepo() *memRepo {
	return &memRepo{todos: make(map[uuid.UUID]dom.Todo)}
}

func (m *memRepo) Create(_ context.Context, t dom.Todo) error {
	m.todos[t.ID] = t
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (dom.Todo, bool, error) {
	t, ok := m.todos[id]
	return t, ok, nil
}

func (m *memRepo) List(_ context.Context, status *dom.Status) ([]dom.Todo, error) {
	var list []dom.Todo
	for _, t := range m.todos {
		if status == nil || t.Status == *status {
			list = append(list, t)
		}
	}
	return list, nil
}

func (m *memRepo) Update(_ context.Context, id uuid.UUID, patch dom.Patch) (dom.Todo, bool, error) {
	t, ok := m.todos[id]
	if !ok {
		return dom.Todo{}, false, nil
	}
	t.Apply(patch, time.Now().UTC())
	m.todos[id] = t
	return t, true, nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.todos[id]; !ok {
		return false, nil
	}
	delete(m.todos, id)
	return true, nil
}

func TestCreateAssignsServerFields(t *testing.T) {
	svc := NewTodoService(newMemRepo())

	todo, err := svc.Create(context.Background(), "Buy milk", "2%", dom.StatusNotStarted, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if todo.ID == (uuid.UUID{}) {
		t.Error("create must assign an id")
	}
	if !todo.CreatedAt.Equal(todo.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v at creation", todo.CreatedAt, todo.UpdatedAt)
	}
	if todo.CreatedAt.Location() != time.UTC {
		t.Error("timestamps must be UTC")
	}

	other, err := svc.Create(context.Background(), "Another", "", dom.StatusNotStarted, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == todo.ID {
		t.Error("ids must be unique per record")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewTodoService(newMemRepo())
	_, err := svc.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	repo := newMemRepo()
	svc := NewTodoService(repo)

	created, err := svc.Create(context.Background(), "t", "c", dom.StatusTodo, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	done := dom.StatusDone
	time.Sleep(5 * time.Millisecond)
	updated, err := svc.Update(context.Background(), created.ID, dom.Patch{Status: &done})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != dom.StatusDone {
		t.Errorf("status = %q", updated.Status)
	}
	if updated.Title != "t" || updated.Content != "c" {
		t.Error("omitted fields changed")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt %v should be after %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt changed on update")
	}
}

func TestUpdateNotFoundTouchesNothing(t *testing.T) {
	repo := newMemRepo()
	svc := NewTodoService(repo)
	if _, err := svc.Create(context.Background(), "keep", "me", dom.StatusTodo, nil, nil); err != nil {
		t.Fatal(err)
	}

	title := "x"
	_, err := svc.Update(context.Background(), uuid.New(), dom.Patch{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if len(repo.todos) != 1 {
		t.Error("update of a missing id must not mutate storage")
	}
	for _, existing := range repo.todos {
		if existing.Title != "keep" {
			t.Error("unrelated record was mutated")
		}
	}
}

func TestDeleteIdempotenceObservation(t *testing.T) {
	svc := NewTodoService(newMemRepo())
	created, err := svc.Create(context.Background(), "t", "c", dom.StatusTodo, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: want ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Error("record still visible after delete")
	}
}

func TestListStatusFilter(t *testing.T) {
	svc := NewTodoService(newMemRepo())
	ctx := context.Background()
	if _, err := svc.Create(ctx, "a", "", dom.StatusTodo, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, "b", "", dom.StatusDone, nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, "c", "", dom.StatusDone, nil, nil); err != nil {
		t.Fatal(err)
	}

	all, err := svc.List(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("unfiltered list = %d records, want 3", len(all))
	}

	done := dom.StatusDone
	filtered, err := svc.List(ctx, &done)
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered list = %d records, want 2", len(filtered))
	}
	for _, item := range filtered {
		if item.Status != dom.StatusDone {
			t.Errorf("filter leaked status %q", item.Status)
		}
	}
}
