package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/eventpilot/internal/cli"
	"github.com/alexanderramin/eventpilot/internal/config"
	"github.com/alexanderramin/eventpilot/internal/db"
	"github.com/alexanderramin/eventpilot/internal/extract"
	"github.com/alexanderramin/eventpilot/internal/intelligence"
	"github.com/alexanderramin/eventpilot/internal/repository"
	"github.com/alexanderramin/eventpilot/internal/service"
	"github.com/alexanderramin/eventpilot/internal/session"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	app := &cli.App{Home: home}
	app.Wire = func(cfg *config.Config) (func() error, error) {
		return wire(app, cfg)
	}
	// Detect interactive terminal for the chat entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	defer app.Close()

	return cli.NewRootCmd(app).Execute()
}

// wire builds the store, the engines and the services from cfg and installs
// them on app. The returned cleanup closes the database and the log file.
func wire(app *cli.App, cfg *config.Config) (func() error, error) {
	logger, logFile, err := config.NewLogger(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		logFile.Close()
		return nil, err
	}

	// Open the configured store.
	var (
		repo repository.ProjectRepo
		uow  db.UnitOfWork
	)
	cleanup := func() error { return logFile.Close() }
	switch cfg.Store.Backend {
	case config.BackendFile:
		repo = repository.NewFileProjectRepo(cfg.Store.Path, logger)
	default:
		database, err := db.OpenDB(cfg.Store.Path)
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("opening database: %w", err)
		}
		repo = repository.NewSQLiteProjectRepo(database)
		uow = db.NewSQLiteUnitOfWork(database)
		cleanup = func() error {
			return errors.Join(database.Close(), logFile.Close())
		}
	}
	if ttl := cfg.Store.CacheTTL.Duration; ttl > 0 {
		repo = repository.NewCachedProjectRepo(repo, ttl)
	}
	logger.Debug("store ready", "backend", cfg.Store.Backend, "path", cfg.Store.Path)

	// Wire engines and services.
	observer := service.NewSlogUseCaseObserver(logger)
	finder := extract.NewDateFinder(loc)
	extractor := extract.NewExtractor(extract.WithDateFinder(finder))
	engine := intelligence.NewEngine(intelligence.WithDateFinder(finder))

	app.Projects = service.NewProjectService(repo, extractor, observer)
	app.Edits = service.NewEditService(repo, engine, observer)
	app.Stats = service.NewStatsService(repo, nil, observer)
	app.Transfer = service.NewTransferService(repo, uow, logger, observer)
	app.Conversation = service.NewConversation(
		session.NewStore(cfg.Session.TTL.Duration),
		app.Projects, app.Edits, app.Stats,
		cfg.Projects.ListLimit,
		observer,
	)
	return cleanup, nil
}
