package project

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/infrastructure/mail"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockProjectStore struct{ mock.Mock }

func (m *mockProjectStore) Create(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectStore) Get(ctx context.Context, projectID int64) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if p, _ := args.Get(0).(*domain.Project); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

const definition = `{"project":{"name":"Bird Survey","small_desc":"Spring count"}}`

func TestImport_UsesDefinitionName(t *testing.T) {
	repo, mailer := &mockProjectStore{}, &mockMailer{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Project).ID = 12 }).
		Return(nil)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m mail.Message) bool {
		return len(m.To) == 1 && m.To[0] == "ann@example.com"
	})).Return(nil)

	p, err := NewService(repo, mailer, logger.Nop(), "https://five.example/").Import(context.Background(), ImportInput{
		Definition:   json.RawMessage(definition),
		CreatedBy:    3,
		CreatorEmail: "ann@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), p.ID)
	assert.Equal(t, "Bird Survey", p.Name)
	assert.Equal(t, "bird-survey", p.Slug)
	assert.Len(t, p.Ref, 32)
	assert.Equal(t, int64(3), p.CreatedBy)
	mailer.AssertExpectations(t)
}

func TestImport_NameOverride(t *testing.T) {
	repo := &mockProjectStore{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).Return(nil)

	p, err := NewService(repo, nil, logger.Nop(), "").Import(context.Background(), ImportInput{
		Name:       "  Moth Trap ",
		Definition: json.RawMessage(definition),
	})

	require.NoError(t, err)
	assert.Equal(t, "Moth Trap", p.Name)
	assert.Equal(t, "moth-trap", p.Slug)
}

func TestImport_NameMissing(t *testing.T) {
	repo := &mockProjectStore{}

	_, err := NewService(repo, nil, logger.Nop(), "").Import(context.Background(), ImportInput{
		Definition: json.RawMessage(`{"project":{"name":"  "}}`),
	})

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindProjectNameMissing, de.Kind)
	assert.Equal(t, map[string][]string{"project": {"ec5_224"}}, de.Errors())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImport_DefinitionNameFollowsNamingRules(t *testing.T) {
	cases := map[string]string{
		"API":   domain.CodeReservedProjectName,
		"Login": domain.CodeReservedProjectName,
		"!!":    domain.CodeInvalidProjectName,
	}
	for name, code := range cases {
		repo := &mockProjectStore{}
		def, err := json.Marshal(map[string]any{"project": map[string]string{"name": name}})
		require.NoError(t, err)

		_, err = NewService(repo, nil, logger.Nop(), "").Import(context.Background(), ImportInput{Definition: def})

		de, ok := domain.AsError(err)
		require.True(t, ok, name)
		assert.Equal(t, domain.KindValidation, de.Kind, name)
		assert.Equal(t, map[string][]string{"name": {code}}, de.Errors(), name)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestImport_BadDefinition(t *testing.T) {
	_, err := NewService(&mockProjectStore{}, nil, logger.Nop(), "").Import(context.Background(), ImportInput{
		Definition: json.RawMessage(`not json`),
	})

	assert.True(t, domain.IsKind(err, domain.KindProjectImportFailed))
}

func TestImport_StorageFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	repo := &mockProjectStore{}
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	_, err := NewService(repo, nil, logger.New(zap.New(core), nil), "").Import(context.Background(), ImportInput{
		Definition: json.RawMessage(definition),
	})

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "ec5_225", de.Code)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, logs.FilterMessage("project import failed").Len())
}

func TestImport_MailFailureDoesNotFailImport(t *testing.T) {
	repo, mailer := &mockProjectStore{}, &mockMailer{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	p, err := NewService(repo, mailer, logger.Nop(), "").Import(context.Background(), ImportInput{
		Definition:   json.RawMessage(definition),
		CreatorEmail: "ann@example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestGet_PassesThrough(t *testing.T) {
	repo := &mockProjectStore{}
	repo.On("Get", mock.Anything, int64(5)).Return(nil, domain.ErrNotFound)

	_, err := NewService(repo, nil, logger.Nop(), "").Get(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
