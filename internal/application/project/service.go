package project

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/infrastructure/mail"
	"github.com/ec5/ec5-api/internal/pkg/id"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	"github.com/ec5/ec5-api/internal/pkg/validate"
)

// ImportInput is a project file to import on behalf of a user.
type ImportInput struct {
	Name         string // overrides the name inside Definition when set
	Definition   json.RawMessage
	CreatedBy    int64
	CreatorEmail string
}

type Service interface {
	Get(ctx context.Context, projectID int64) (*domain.Project, error)
	// Import creates a project from an exported definition. A missing name
	// yields a ProjectNameMissing error and a name breaking the naming rules a
	// validation error on "name"; any other failure ProjectImportFailed.
	Import(ctx context.Context, in ImportInput) (*domain.Project, error)
}

type projectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, projectID int64) (*domain.Project, error)
}

type mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

type service struct {
	repo   projectStore
	mailer mailer
	log    logger.Logger
	appURL string
}

func NewService(repo projectStore, m mailer, log logger.Logger, appURL string) Service {
	return &service{repo: repo, mailer: m, log: log, appURL: strings.TrimRight(appURL, "/")}
}

func (s *service) Get(ctx context.Context, projectID int64) (*domain.Project, error) {
	return s.repo.Get(ctx, projectID)
}

func (s *service) Import(ctx context.Context, in ImportInput) (*domain.Project, error) {
	importID := id.New()

	var def domain.ProjectDefinition
	if err := json.Unmarshal(in.Definition, &def); err != nil {
		s.log.Info("project import rejected", map[string]any{"import_id": importID, "error": err})
		return nil, domain.ProjectImportFailed(fmt.Errorf("decode definition: %w", err))
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.TrimSpace(def.Project.Name)
	}
	if name == "" {
		return nil, domain.ProjectNameMissing()
	}
	if code := validate.ProjectName(name); code != "" {
		s.log.Info("project import rejected", map[string]any{"import_id": importID, "name": name, "code": code})
		return nil, domain.ValidationFailed("name", code)
	}

	p := &domain.Project{
		Ref:        id.Ref(),
		Name:       name,
		Slug:       validate.Slug(name),
		CreatedBy:  in.CreatedBy,
		Definition: in.Definition,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Critical("project import failed", map[string]any{
			"import_id":  importID,
			"slug":       p.Slug,
			"created_by": in.CreatedBy,
			"error":      err,
		})
		return nil, domain.ProjectImportFailed(err)
	}

	s.log.Info("project imported", map[string]any{"import_id": importID, "project_id": p.ID, "slug": p.Slug})
	s.notify(ctx, p, in.CreatorEmail)
	return p, nil
}

// notify mails the creator; delivery problems never fail the import.
func (s *service) notify(ctx context.Context, p *domain.Project, to string) {
	if s.mailer == nil || to == "" {
		return
	}
	link := fmt.Sprintf("%s/project/%s", s.appURL, p.Slug)
	err := s.mailer.Send(ctx, mail.Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Project %q imported", p.Name),
		Text:    fmt.Sprintf("Your project %q was imported and is available at %s", p.Name, link),
		HTML:    fmt.Sprintf(`<p>Your project <strong>%s</strong> was imported.</p><p><a href="%s">Open project</a></p>`, html.EscapeString(p.Name), link),
	})
	if err != nil {
		s.log.Info("project import mail failed", map[string]any{"project_id": p.ID, "error": err})
	}
}
