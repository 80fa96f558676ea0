package entry

import (
	"context"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/pkg/logger"
)

// Service deletes entries of one kind (top-level or branch).
type Service interface {
	// Delete removes the entries of projectID whose uuid is in uuids and
	// returns how many rows went. Storage failures come back as a tagged
	// domain error (entry_delete / ec5_240), never as the raw driver error.
	Delete(ctx context.Context, projectID int64, uuids []string) (int64, error)
}

type entryStore interface {
	DeleteByUUIDs(ctx context.Context, projectID int64, uuids []string) (int64, error)
}

type service struct {
	repo entryStore
	kind domain.EntryKind
	log  logger.Logger
}

func NewService(repo entryStore, kind domain.EntryKind, log logger.Logger) Service {
	return &service{repo: repo, kind: kind, log: log}
}

func (s *service) Delete(ctx context.Context, projectID int64, uuids []string) (int64, error) {
	n, err := s.repo.DeleteByUUIDs(ctx, projectID, uuids)
	if err != nil {
		s.log.Critical("entry delete failed", map[string]any{
			"project_id": projectID,
			"kind":       s.kind.String(),
			"requested":  len(uuids),
			"error":      err,
		})
		return 0, domain.EntryDeleteFailed(err)
	}
	s.log.Info("entries deleted", map[string]any{
		"project_id": projectID,
		"kind":       s.kind.String(),
		"requested":  len(uuids),
		"deleted":    n,
	})
	return n, nil
}
