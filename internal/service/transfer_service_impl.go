package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/eventpilot/internal/db"
	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/alexanderramin/eventpilot/internal/repository"
)

// transferService moves projects between the JSON file layout and the
// configured store.
type transferService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewTransferService builds the import/export use cases. uow may be nil when
// the configured store is not SQLite; ImportDir then fails.
func NewTransferService(projects repository.ProjectRepo, uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) TransferService {
	if logger == nil {
		logger = slog.Default()
	}
	return &transferService{
		projects: projects,
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *transferService) ImportDir(ctx context.Context, dir string) (out *TransferResult, err error) {
	fields := map[string]any{"dir": dir}
	done := track(ctx, s.observer, "import-dir", fields)
	defer func() { done(err) }()

	if s.uow == nil {
		return nil, fmt.Errorf("import needs the sqlite store")
	}
	src := repository.NewFileProjectRepo(dir, s.logger)
	loaded, skipped, err := readAll(ctx, src)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		dst := repository.NewSQLiteProjectRepo(tx)
		for _, p := range loaded {
			if err := dst.Save(ctx, p); err != nil {
				return fmt.Errorf("importing project %s: %w", p.EventID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["imported"] = len(loaded)
	return &TransferResult{Transferred: len(loaded), Skipped: skipped}, nil
}

func (s *transferService) ExportDir(ctx context.Context, dir string) (out *TransferResult, err error) {
	fields := map[string]any{"dir": dir}
	done := track(ctx, s.observer, "export-dir", fields)
	defer func() { done(err) }()

	loaded, skipped, err := readAll(ctx, s.projects)
	if err != nil {
		return nil, err
	}
	dst := repository.NewFileProjectRepo(dir, s.logger)
	for _, p := range loaded {
		if err := dst.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("exporting project %s: %w", p.EventID, err)
		}
	}
	fields["exported"] = len(loaded)
	return &TransferResult{Transferred: len(loaded), Skipped: skipped}, nil
}

// readAll loads every project of src, oldest first. Ids that fail to load
// are returned as skipped.
func readAll(ctx context.Context, src repository.ProjectRepo) ([]*domain.Project, []string, error) {
	summaries, err := src.ListRecent(ctx, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("listing projects: %w", err)
	}
	var loaded []*domain.Project
	var skipped []string
	for i := len(summaries) - 1; i >= 0; i-- {
		p, err := src.Load(ctx, summaries[i].EventID)
		if err != nil {
			skipped = append(skipped, summaries[i].EventID)
			continue
		}
		loaded = append(loaded, p)
	}
	return loaded, skipped, nil
}
