package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles group data persistence
type Repository interface {
	Create(ctx context.Context, g *Group) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	ListAll(ctx context.Context) ([]*Group, error)
}

type postgresRepository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

// Create inserts the group and its member rows in one transaction so a
// half-created group is never observable.
func (r *postgresRepository) Create(ctx context.Context, g *Group) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (name, description, created_by_user_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, created_by_user_id, created_at
	`

	created := &Group{}
	err = tx.QueryRowContext(ctx, query, g.Name, g.Description, g.CreatedBy).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.CreatedBy,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	memberQuery := `
		INSERT INTO group_members (group_id, user_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, memberQuery, created.ID, pq.Array(g.MemberIDs)); err != nil {
		return nil, fmt.Errorf("failed to add group members: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group creation: %w", err)
	}

	created.MemberIDs = g.MemberIDs
	return created, nil
}

// GetByID retrieves a group with its member ids
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.created_by_user_id, g.created_at,
		       COALESCE(array_agg(gm.user_id) FILTER (WHERE gm.user_id IS NOT NULL), '{}')
		FROM groups g
		LEFT JOIN group_members gm ON g.id = gm.group_id
		WHERE g.id = $1
		GROUP BY g.id
	`

	g := &Group{}
	var members pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.CreatedBy,
		&g.CreatedAt,
		&members,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	g.MemberIDs = members
	return g, nil
}

// ListAll retrieves every group with its member ids
func (r *postgresRepository) ListAll(ctx context.Context) ([]*Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.created_by_user_id, g.created_at,
		       COALESCE(array_agg(gm.user_id) FILTER (WHERE gm.user_id IS NOT NULL), '{}')
		FROM groups g
		LEFT JOIN group_members gm ON g.id = gm.group_id
		GROUP BY g.id
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		g := &Group{}
		var members pq.Int64Array
		if err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Description,
			&g.CreatedBy,
			&g.CreatedAt,
			&members,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		g.MemberIDs = members
		groups = append(groups, g)
	}

	return groups, rows.Err()
}
