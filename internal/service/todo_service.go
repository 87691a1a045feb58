package service

import (
	"context"
	"errors"
	"time"

	dom "github.com/hc-organizations/todo-backend/internal/domain"
	"github.com/hc-organizations/todo-backend/internal/repo"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type TodoService struct {
	repo repo.TodoRepo
}

func NewTodoService(r repo.TodoRepo) *TodoService {
	return &TodoService{repo: r}
}

// Create assigns the server-side fields (id, both timestamps) and persists
// the record. CreatedAt equals UpdatedAt at the moment of creation.
func (s *TodoService) Create(ctx context.Context, title, content string, status dom.Status, startDate, endDate *time.Time) (dom.Todo, error) {
	now := time.Now().UTC()
	t := dom.Todo{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return dom.Todo{}, err
	}
	return t, nil
}

func (s *TodoService) GetByID(ctx context.Context, id uuid.UUID) (dom.Todo, error) {
	t, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, err
	}
	if !found {
		return dom.Todo{}, ErrNotFound
	}
	return t, nil
}

func (s *TodoService) List(ctx context.Context, status *dom.Status) ([]dom.Todo, error) {
	return s.repo.List(ctx, status)
}

func (s *TodoService) Update(ctx context.Context, id uuid.UUID, patch dom.Patch) (dom.Todo, error) {
	t, found, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return dom.Todo{}, err
	}
	if !found {
		return dom.Todo{}, ErrNotFound
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
