package service

import (
	"context"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/alexanderramin/eventpilot/internal/intelligence"
)

type ProjectService interface {
	// CreateFromText extracts a project from a free-form description and
	// stores it.
	CreateFromText(ctx context.Context, text string) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ProjectSummary, error)
}

// EditOutcome is the result of one edit instruction together with the
// project as it stands afterwards.
type EditOutcome struct {
	Project *domain.Project
	Result  intelligence.EditResult
}

type EditService interface {
	// Apply runs the instruction against the stored project. A staged
	// change is returned in the outcome and nothing is saved.
	Apply(ctx context.Context, projectID, text string) (*EditOutcome, error)
	// Confirm applies a staged change and saves the project.
	Confirm(ctx context.Context, projectID string, pending *domain.PendingChange) (string, error)
	// Cancel discards a staged change.
	Cancel(ctx context.Context, projectID string, pending *domain.PendingChange)
}

// UpcomingDeadline is one deadline entry with its project.
type UpcomingDeadline struct {
	ProjectID string
	Title     string
	Due       time.Time
	Context   string
}

type Stats struct {
	TotalProjects int
	Upcoming      []UpcomingDeadline
}

type StatsService interface {
	Stats(ctx context.Context) (*Stats, error)
}

// TransferResult counts projects moved by an import or export.
type TransferResult struct {
	Transferred int
	Skipped     []string
}

type TransferService interface {
	// ImportDir copies every project file of dir into the database in one
	// transaction.
	ImportDir(ctx context.Context, dir string) (*TransferResult, error)
	// ExportDir writes every stored project to dir as a JSON file.
	ExportDir(ctx context.Context, dir string) (*TransferResult, error)
}
