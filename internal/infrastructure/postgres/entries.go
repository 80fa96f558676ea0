package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/lib/pq"
)

// EntryRepo deletes rows from one entry table. The table is fixed per
// repo: top-level entries and branch entries each get their own.
type EntryRepo struct {
	db    *sql.DB
	table string
}

func NewEntryRepo(db *sql.DB, kind domain.EntryKind) *EntryRepo {
	return &EntryRepo{db: db, table: kind.Table()}
}

// DeleteByUUIDs removes the rows of projectID whose uuid is in uuids and
// returns how many were removed. project_id is always part of the predicate,
// so uuids belonging to another project never match.
func (r *EntryRepo) DeleteByUUIDs(ctx context.Context, projectID int64, uuids []string) (int64, error) {
	if len(uuids) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE project_id = $1 AND uuid = ANY($2)",
		pq.QuoteIdentifier(r.table),
	)
	res, err := r.db.ExecContext(ctx, query, projectID, pq.Array(uuids))
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", r.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
