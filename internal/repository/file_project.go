package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/eventpilot/internal/domain"
)

const projectFileExt = ".json"

// FileProjectRepo keeps one JSON file per project in a directory. Files
// that cannot be read or decoded are skipped in listings.
type FileProjectRepo struct {
	dir    string
	logger *slog.Logger
}

func NewFileProjectRepo(dir string, logger *slog.Logger) *FileProjectRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProjectRepo{dir: dir, logger: logger}
}

func (r *FileProjectRepo) path(id string) (string, bool) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", false
	}
	return filepath.Join(r.dir, id+projectFileExt), true
}

func (r *FileProjectRepo) Save(_ context.Context, p *domain.Project) error {
	target, ok := r.path(p.EventID)
	if !ok {
		return fmt.Errorf("saving project: invalid event_id %q", p.EventID)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("creating projects directory: %w", err)
	}
	doc, err := encodeProject(p)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, ".tmp-"+p.EventID+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("writing project %s: %w", p.EventID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing project %s: %w", p.EventID, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replacing project %s: %w", p.EventID, err)
	}
	return nil
}

func (r *FileProjectRepo) Load(_ context.Context, id string) (*domain.Project, error) {
	path, ok := r.path(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading project %s: %w", id, err)
	}
	return decodeProject(data)
}

func (r *FileProjectRepo) ListRecent(ctx context.Context, limit int) ([]domain.ProjectSummary, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}

	var out []domain.ProjectSummary
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != projectFileExt {
			continue
		}
		id := strings.TrimSuffix(name, projectFileExt)
		p, err := r.Load(ctx, id)
		if err != nil {
			r.logger.Warn("skipping unreadable project file", "file", name, "error", err)
			continue
		}
		if p.EventID == "" {
			p.EventID = id
		}
		out = append(out, p.Summary())
	}
	sortRecent(out)
	return truncate(out, limit), nil
}
