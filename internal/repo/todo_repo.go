package repo

import (
	"context"
	"errors"
	"time"

	dom "github.com/hc-organizations/todo-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo is the persistence contract for todo records. Absence of a record
// is a normal outcome reported through the bool return, never an error.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (dom.Todo, bool, error)
	List(ctx context.Context, status *dom.Status) ([]dom.Todo, error)
	Update(ctx context.Context, id uuid.UUID, patch dom.Patch) (dom.Todo, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

// NewPGTodoRepo wires the repository to an explicitly constructed pool; no
// package-level connection state exists.
func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

const todoColumns = `id, title, content, status, start_date, end_date, created_at, updated_at`

func scanTodo(row pgx.Row) (dom.Todo, error) {
	var t dom.Todo
	var status string
	err := row.Scan(&t.ID, &t.Title, &t.Content, &status, &t.StartDate, &t.EndDate,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return dom.Todo{}, err
	}
	t.Status = dom.Status(status)
	return t, nil
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) error {
	query := `
		INSERT INTO todo (id, title, content, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, t.ID, t.Title, t.Content, string(t.Status),
		t.StartDate, t.EndDate, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Todo, bool, error) {
	query := `SELECT ` + todoColumns + ` FROM todo WHERE id = $1`
	t, err := scanTodo(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Todo{}, false, nil
	}
	if err != nil {
		return dom.Todo{}, false, err
	}
	return t, true, nil
}

// List returns all records, or only those matching the status filter when one
// is given. Result order is unspecified: there is no ORDER BY.
func (r *PGTodoRepo) List(ctx context.Context, status *dom.Status) ([]dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todo`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update loads the row, applies the patch, and writes it back inside a single
// transaction. FOR UPDATE serializes concurrent patches to the same row.
func (r *PGTodoRepo) Update(ctx context.Context, id uuid.UUID, patch dom.Patch) (dom.Todo, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Todo{}, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `SELECT ` + todoColumns + ` FROM todo WHERE id = $1 FOR UPDATE`
	t, err := scanTodo(tx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Todo{}, false, nil
	}
	if err != nil {
		return dom.Todo{}, false, err
	}

	t.Apply(patch, time.Now().UTC())

	update := `
		UPDATE todo SET title = $2, content = $3, status = $4, start_date = $5, end_date = $6, updated_at = $7
		WHERE id = $1`
	_, err = tx.Exec(ctx, update, id, t.Title, t.Content, string(t.Status),
		t.StartDate, t.EndDate, t.UpdatedAt)
	if err != nil {
		return dom.Todo{}, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return dom.Todo{}, false, err
	}
	return t, true, nil
}

// Delete removes the row. The bool reports whether a row existed; deleting a
// missing id is not an error.
func (r *PGTodoRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM todo WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
