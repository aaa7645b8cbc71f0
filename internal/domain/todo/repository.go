package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines todo data access interface
type Repository interface {
	Create(ctx context.Context, todo *Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Todo, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Todo, error)
	SetComplete(ctx context.Context, id uuid.UUID, complete bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates todo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, todo *Todo) error {
	query := `
		INSERT INTO todos (id, user_id, title, complete, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Complete, todo.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Todo, error) {
	var todo Todo
	query := `SELECT * FROM todos WHERE id = $1`
	err := r.db.GetContext(ctx, &todo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Todo, error) {
	var todos []*Todo
	query := `SELECT * FROM todos WHERE user_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &todos, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (r *repository) SetComplete(ctx context.Context, id uuid.UUID, complete bool) error {
	query := `UPDATE todos SET complete = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, complete)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrTodoNotFound
	}
	return nil
}
