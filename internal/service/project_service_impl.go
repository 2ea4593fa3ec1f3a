package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/alexanderramin/eventpilot/internal/extract"
	"github.com/alexanderramin/eventpilot/internal/repository"
)

// ErrEmptyDescription is returned when a project is requested from blank text.
var ErrEmptyDescription = errors.New("event description is empty")

type projectService struct {
	projects  repository.ProjectRepo
	extractor *extract.Extractor
	observer  UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, extractor *extract.Extractor, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects:  projects,
		extractor: extractor,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) CreateFromText(ctx context.Context, text string) (p *domain.Project, err error) {
	fields := map[string]any{"chars": len([]rune(text))}
	done := track(ctx, s.observer, "create-project", fields)
	defer func() { done(err) }()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyDescription
	}
	p = s.extractor.Extract(text)
	fields["project_id"] = p.EventID
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}
	return p, nil
}

func (s *projectService) Get(ctx context.Context, id string) (p *domain.Project, err error) {
	fields := map[string]any{"project_id": id}
	done := track(ctx, s.observer, "get-project", fields)
	defer func() { done(err) }()
	return loadProject(ctx, s.projects, id, fields)
}

func (s *projectService) ListRecent(ctx context.Context, limit int) ([]domain.ProjectSummary, error) {
	items, err := s.projects.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return items, nil
}

// loadProject maps every store failure to ErrProjectNotFound. The underlying
// error is kept in the use-case fields for the log, not shown to the user.
func loadProject(ctx context.Context, projects repository.ProjectRepo, id string, fields map[string]any) (*domain.Project, error) {
	p, err := projects.Load(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrProjectNotFound) {
		fields["store_error"] = err.Error()
	}
	return nil, fmt.Errorf("%w: %s", repository.ErrProjectNotFound, id)
}
