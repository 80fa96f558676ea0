package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ec5/ec5-api/internal/application/entry"
	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/pkg/validate"
	"github.com/ec5/ec5-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

type projectGetter interface {
	Get(ctx context.Context, projectID int64) (*domain.Project, error)
}

// MediaPurger removes stored media for deleted entries.
type MediaPurger interface {
	PurgeEntries(ctx context.Context, projectRef string, uuids []string) (int, error)
}

// EntryHandler handles bulk entry deletion for one project.
type EntryHandler struct {
	entries  entry.Service
	branches entry.Service
	projects projectGetter
	media    MediaPurger
	resp     *middleware.ErrorResponder
	log      logger.Logger
}

func NewEntryHandler(entries, branches entry.Service, projects projectGetter, media MediaPurger, resp *middleware.ErrorResponder, log logger.Logger) *EntryHandler {
	return &EntryHandler{
		entries:  entries,
		branches: branches,
		projects: projects,
		media:    media,
		resp:     resp,
		log:      log,
	}
}

func (h *EntryHandler) DeleteEntries(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.entries)
}

func (h *EntryHandler) DeleteBranchEntries(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.branches)
}

func (h *EntryHandler) delete(w http.ResponseWriter, r *http.Request, svc entry.Service) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.resp.Respond(w, r, domain.CodeNotLoggedIn, http.StatusUnauthorized)
		return
	}
	projectID, err := strconv.ParseInt(chi.URLParam(r, "project_id"), 10, 64)
	if err != nil || projectID <= 0 {
		writeErrors(w, http.StatusBadRequest, map[string][]string{"project_id": {domain.CodeInvalidValue}})
		return
	}

	var req domain.DeleteEntriesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, map[string][]string{"data": {domain.CodeInvalidValue}})
		return
	}
	if errs := validate.Errors(req); errs != nil {
		writeErrors(w, http.StatusBadRequest, errs)
		return
	}
	uuids := req.Data.UUIDs
	if uuids == nil {
		uuids = []string{}
	}

	p, err := h.projects.Get(r.Context(), projectID)
	if errors.Is(err, domain.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, map[string][]string{"project": {domain.CodeProjectNotFound}})
		return
	}
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}
	if p.CreatedBy != claims.UserID {
		h.resp.Respond(w, r, domain.CodeMissingPermission, http.StatusForbidden)
		return
	}

	n, err := svc.Delete(r.Context(), projectID, uuids)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}
	h.purgeMedia(r.Context(), p, uuids)
	writeJSON(w, http.StatusOK, DataEnvelope{Data: DeletedData{Deleted: n}})
}

// purgeMedia is best effort; orphaned objects do not fail the request.
func (h *EntryHandler) purgeMedia(ctx context.Context, p *domain.Project, uuids []string) {
	if h.media == nil || len(uuids) == 0 {
		return
	}
	n, err := h.media.PurgeEntries(ctx, p.Ref, uuids)
	if err != nil {
		h.log.Info("entry media purge failed", map[string]any{"project_id": p.ID, "error": err})
		return
	}
	if n > 0 {
		h.log.Info("entry media purged", map[string]any{"project_id": p.ID, "objects": n})
	}
}
