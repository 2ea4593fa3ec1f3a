package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/alexanderramin/eventpilot/internal/intelligence"
	"github.com/alexanderramin/eventpilot/internal/repository"
)

type editService struct {
	// mu serialises load-modify-save so concurrent conversations editing
	// the same project do not lose writes.
	mu       sync.Mutex
	projects repository.ProjectRepo
	engine   *intelligence.Engine
	observer UseCaseObserver
}

func NewEditService(projects repository.ProjectRepo, engine *intelligence.Engine, observers ...UseCaseObserver) EditService {
	return &editService{
		projects: projects,
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *editService) Apply(ctx context.Context, projectID, text string) (out *EditOutcome, err error) {
	fields := map[string]any{"project_id": projectID}
	done := track(ctx, s.observer, "apply-edit", fields)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := loadProject(ctx, s.projects, projectID, fields)
	if err != nil {
		return nil, err
	}
	res := s.engine.Apply(p, text)
	fields["updated"] = res.Updated
	fields["staged"] = res.RequiresConfirmation

	if !res.RequiresConfirmation {
		if err := s.projects.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("saving project: %w", err)
		}
	}
	return &EditOutcome{Project: p, Result: res}, nil
}

func (s *editService) Confirm(ctx context.Context, projectID string, pending *domain.PendingChange) (summary string, err error) {
	fields := map[string]any{"project_id": projectID}
	done := track(ctx, s.observer, "confirm-edit", fields)
	defer func() { done(err) }()

	if err := pending.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", intelligence.ErrInvalidChange, err)
	}
	fields["section"] = pending.Section

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := loadProject(ctx, s.projects, projectID, fields)
	if err != nil {
		return "", err
	}
	summary, err = s.engine.Confirm(p, pending)
	if err != nil {
		return "", err
	}
	if err := s.projects.Save(ctx, p); err != nil {
		return "", fmt.Errorf("saving project: %w", err)
	}
	return summary, nil
}

func (s *editService) Cancel(ctx context.Context, projectID string, pending *domain.PendingChange) {
	fields := map[string]any{"project_id": projectID, "had_pending": pending != nil}
	track(ctx, s.observer, "cancel-edit", fields)(nil)
}
