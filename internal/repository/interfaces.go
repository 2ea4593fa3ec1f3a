package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/eventpilot/internal/domain"
)

var (
	// ErrProjectNotFound is returned by Load when no project has the id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrCorruptDocument is returned by Load when the stored document
	// cannot be decoded.
	ErrCorruptDocument = errors.New("corrupt project document")
)

// ProjectRepo persists whole project documents keyed by event_id.
type ProjectRepo interface {
	// Save inserts or replaces the project.
	Save(ctx context.Context, p *domain.Project) error
	Load(ctx context.Context, id string) (*domain.Project, error)
	// ListRecent returns up to limit summaries, newest created_at first.
	// A limit of zero or less returns every project.
	ListRecent(ctx context.Context, limit int) ([]domain.ProjectSummary, error)
}
