package grouptask

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles group task data persistence
type Repository interface {
	Create(ctx context.Context, t *GroupTask) (*GroupTask, error)
	GetByID(ctx context.Context, id int64) (*GroupTask, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*GroupTask, error)
	// UpdateStatus writes the status only if the task is still assigned to
	// assignedTo, so a concurrent reassignment cannot be overwritten.
	// Returns nil when the conditional write matched no row.
	UpdateStatus(ctx context.Context, id int64, status string, assignedTo int64) (*GroupTask, error)
}

type postgresRepository struct {
	db *sql.DB
}

// NewRepository creates a new group task repository
func NewRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const taskColumns = `id, group_id, name, description, status, assigned_to_user_id, created_by_user_id, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*GroupTask, error) {
	t := &GroupTask{}
	err := row.Scan(
		&t.ID,
		&t.GroupID,
		&t.Name,
		&t.Description,
		&t.Status,
		&t.AssignedTo,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a new group task
func (r *postgresRepository) Create(ctx context.Context, t *GroupTask) (*GroupTask, error) {
	query := `
		INSERT INTO group_tasks (group_id, name, description, status, assigned_to_user_id, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRowContext(ctx, query,
		t.GroupID, t.Name, t.Description, t.Status, t.AssignedTo, t.CreatedBy))
	if err != nil {
		return nil, fmt.Errorf("failed to create group task: %w", err)
	}

	return created, nil
}

// GetByID retrieves a group task by its ID
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*GroupTask, error) {
	query := `SELECT ` + taskColumns + ` FROM group_tasks WHERE id = $1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group task: %w", err)
	}

	return t, nil
}

// ListByGroup retrieves all tasks belonging to a group
func (r *postgresRepository) ListByGroup(ctx context.Context, groupID int64) ([]*GroupTask, error) {
	query := `SELECT ` + taskColumns + ` FROM group_tasks WHERE group_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*GroupTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// UpdateStatus performs the conditional status write
func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status string, assignedTo int64) (*GroupTask, error) {
	query := `
		UPDATE group_tasks
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND assigned_to_user_id = $3
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, status, assignedTo))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group task status: %w", err)
	}

	return t, nil
}
