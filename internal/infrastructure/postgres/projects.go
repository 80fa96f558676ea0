package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// ProjectRepo provides typed operations for the projects table.
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create inserts p and fills in its generated id and created_at.
func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (ref, name, slug, created_by, definition)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		p.Ref, p.Name, p.Slug, p.CreatedBy, []byte(p.Definition),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("project %q: %w", p.Slug, domain.ErrConflict)
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) Get(ctx context.Context, projectID int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, ref, name, slug, created_by, created_at FROM projects WHERE id = $1`,
		projectID,
	).Scan(&p.ID, &p.Ref, &p.Name, &p.Slug, &p.CreatedBy, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", projectID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}
