package handler

import (
	"net/http"

	"github.com/ec5/ec5-api/internal/application/project"
	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/pkg/validate"
	"github.com/ec5/ec5-api/internal/transport/http/middleware"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	svc  project.Service
	resp *middleware.ErrorResponder
	log  logger.Logger
}

func NewProjectHandler(svc project.Service, resp *middleware.ErrorResponder, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, resp: resp, log: log}
}

func (h *ProjectHandler) Import(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.resp.Respond(w, r, domain.CodeNotLoggedIn, http.StatusUnauthorized)
		return
	}
	var req domain.ImportProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, map[string][]string{"project": {domain.CodeProjectImportFailed}})
		return
	}
	if errs := validate.Errors(req); errs != nil {
		writeErrors(w, http.StatusBadRequest, errs)
		return
	}
	p, err := h.svc.Import(r.Context(), project.ImportInput{
		Name:         req.Name,
		Definition:   req.Definition,
		CreatedBy:    claims.UserID,
		CreatorEmail: claims.Email,
	})
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, DataEnvelope{Data: p})
}
