package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- mocks ---

type mockEntrySvc struct{ mock.Mock }

func (m *mockEntrySvc) Delete(ctx context.Context, projectID int64, uuids []string) (int64, error) {
	args := m.Called(ctx, projectID, uuids)
	return args.Get(0).(int64), args.Error(1)
}

type mockProjects struct{ mock.Mock }

func (m *mockProjects) Get(ctx context.Context, projectID int64) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if p, _ := args.Get(0).(*domain.Project); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMedia struct{ mock.Mock }

func (m *mockMedia) PurgeEntries(ctx context.Context, projectRef string, uuids []string) (int, error) {
	args := m.Called(ctx, projectRef, uuids)
	return args.Int(0), args.Error(1)
}

// --- helpers ---

const (
	uuidA = "0b6f3b3e-6f0e-4c61-9a43-0d1c9c1f2a10"
	uuidB = "5f1e9a6a-2a8e-4a3a-8d63-7b0e0a3f8c21"
)

type entryFixture struct {
	top, branch *mockEntrySvc
	projects    *mockProjects
	media       *mockMedia
	router      http.Handler
}

func newEntryFixture(userID int64) *entryFixture {
	f := &entryFixture{
		top:      &mockEntrySvc{},
		branch:   &mockEntrySvc{},
		projects: &mockProjects{},
		media:    &mockMedia{},
	}
	h := NewEntryHandler(f.top, f.branch, f.projects, f.media, newTestResponder(newMemFlash()), logger.Nop())
	r := chi.NewRouter()
	r.Use(withUser(userID, "ann@example.com"))
	r.Delete("/api/internal/projects/{project_id}/entries", h.DeleteEntries)
	r.Delete("/api/internal/projects/{project_id}/branch-entries", h.DeleteBranchEntries)
	f.router = r
	return f
}

func (f *entryFixture) do(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/vnd.api+json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

var ownedProject = &domain.Project{ID: 7, Ref: "abc123", CreatedBy: 3}

// --- tests ---

func TestDeleteEntries_Success(t *testing.T) {
	f := newEntryFixture(3)
	f.projects.On("Get", mock.Anything, int64(7)).Return(ownedProject, nil)
	f.top.On("Delete", mock.Anything, int64(7), []string{uuidA, uuidB}).Return(int64(2), nil)
	f.media.On("PurgeEntries", mock.Anything, "abc123", []string{uuidA, uuidB}).Return(3, nil)

	rr := f.do("/api/internal/projects/7/entries", `{"data":{"uuids":["`+uuidA+`","`+uuidB+`"]}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"deleted":2}}`, rr.Body.String())
	f.media.AssertExpectations(t)
	f.branch.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteBranchEntries_UsesBranchService(t *testing.T) {
	f := newEntryFixture(3)
	f.projects.On("Get", mock.Anything, int64(7)).Return(ownedProject, nil)
	f.branch.On("Delete", mock.Anything, int64(7), []string{uuidA}).Return(int64(1), nil)
	f.media.On("PurgeEntries", mock.Anything, "abc123", []string{uuidA}).Return(0, nil)

	rr := f.do("/api/internal/projects/7/branch-entries", `{"data":{"uuids":["`+uuidA+`"]}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	f.top.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteEntries_EmptySet(t *testing.T) {
	f := newEntryFixture(3)
	f.projects.On("Get", mock.Anything, int64(7)).Return(ownedProject, nil)
	f.top.On("Delete", mock.Anything, int64(7), []string{}).Return(int64(0), nil)

	rr := f.do("/api/internal/projects/7/entries", `{"data":{"uuids":[]}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"deleted":0}}`, rr.Body.String())
	f.media.AssertNotCalled(t, "PurgeEntries", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteEntries_ServiceFailure(t *testing.T) {
	f := newEntryFixture(3)
	f.projects.On("Get", mock.Anything, int64(7)).Return(ownedProject, nil)
	f.top.On("Delete", mock.Anything, int64(7), mock.Anything).
		Return(int64(0), domain.EntryDeleteFailed(errors.New("deadlock")))

	rr := f.do("/api/internal/projects/7/entries", `{"data":{"uuids":["`+uuidA+`"]}}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/vnd.api+json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"errors":{"entry_delete":["ec5_240"]}}`, rr.Body.String())
	f.media.AssertNotCalled(t, "PurgeEntries", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteEntries_NotOwner(t *testing.T) {
	f := newEntryFixture(99)
	f.projects.On("Get", mock.Anything, int64(7)).Return(ownedProject, nil)

	rr := f.do("/api/internal/projects/7/entries", `{"data":{"uuids":["`+uuidA+`"]}}`)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"errors":{"middleware":["ec5_91"]}}`, rr.Body.String())
	f.top.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteEntries_InvalidUUID(t *testing.T) {
	f := newEntryFixture(3)

	rr := f.do("/api/internal/projects/7/entries", `{"data":{"uuids":["not-a-uuid"]}}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "ec5_28")
	f.projects.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestDeleteEntries_BadProjectID(t *testing.T) {
	f := newEntryFixture(3)

	rr := f.do("/api/internal/projects/abc/entries", `{"data":{"uuids":[]}}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"errors":{"project_id":["ec5_29"]}}`, rr.Body.String())
}

func TestDeleteEntries_ProjectMissing(t *testing.T) {
	f := newEntryFixture(3)
	f.projects.On("Get", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)

	rr := f.do("/api/internal/projects/7/entries", `{"data":{"uuids":[]}}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"errors":{"project":["ec5_11"]}}`, rr.Body.String())
}

func TestDeleteEntries_MediaFailureStillSucceeds(t *testing.T) {
	f := newEntryFixture(3)
	f.projects.On("Get", mock.Anything, int64(7)).Return(ownedProject, nil)
	f.top.On("Delete", mock.Anything, int64(7), []string{uuidA}).Return(int64(1), nil)
	f.media.On("PurgeEntries", mock.Anything, "abc123", []string{uuidA}).Return(0, errors.New("s3 down"))

	rr := f.do("/api/internal/projects/7/entries", `{"data":{"uuids":["`+uuidA+`"]}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"deleted":1}}`, rr.Body.String())
}
