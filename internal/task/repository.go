package task

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles task data persistence
type Repository interface {
	Create(ctx context.Context, t *Task) (*Task, error)
	GetByID(ctx context.Context, id int64) (*Task, error)
	ListByOwner(ctx context.Context, owner string) ([]*Task, error)
	ListAll(ctx context.Context) ([]*Task, error)
	Update(ctx context.Context, id int64, req *UpdateTaskRequest) (*Task, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *sql.DB
}

// NewRepository creates a new task repository with database dependency injected
func NewRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const taskColumns = `id, owner_username, category, name, description, status, time_until_finish, remind_me, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*Task, error) {
	t := &Task{}
	err := row.Scan(
		&t.ID,
		&t.Owner,
		&t.Category,
		&t.Name,
		&t.Description,
		&t.Status,
		&t.TimeUntilFinish,
		&t.RemindMe,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a new task into the database
func (r *postgresRepository) Create(ctx context.Context, t *Task) (*Task, error) {
	query := `
		INSERT INTO tasks (owner_username, category, name, description, status, time_until_finish, remind_me)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRowContext(ctx, query,
		t.Owner, t.Category, t.Name, t.Description, t.Status, t.TimeUntilFinish, t.RemindMe))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

// GetByID retrieves a task by its ID
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// ListByOwner retrieves all tasks owned by the given username
func (r *postgresRepository) ListByOwner(ctx context.Context, owner string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_username = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ListAll retrieves every task regardless of owner
func (r *postgresRepository) ListAll(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update modifies an existing task, leaving absent fields untouched
func (r *postgresRepository) Update(ctx context.Context, id int64, req *UpdateTaskRequest) (*Task, error) {
	query := `
		UPDATE tasks
		SET category = COALESCE($2, category),
		    name = COALESCE($3, name),
		    description = COALESCE($4, description),
		    status = COALESCE($5, status),
		    time_until_finish = COALESCE($6, time_until_finish),
		    remind_me = COALESCE($7, remind_me),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id,
		req.Category, req.Name, req.Description, req.Status, req.TimeUntilFinish, req.RemindMe))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return t, nil
}

// Delete removes a task from the database
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
