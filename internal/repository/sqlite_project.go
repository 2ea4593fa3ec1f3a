package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/eventpilot/internal/db"
	"github.com/alexanderramin/eventpilot/internal/domain"
)

// SQLiteProjectRepo stores each project as one row: summary columns for
// listings plus the full JSON document.
type SQLiteProjectRepo struct {
	db  db.DBTX
	now func() time.Time
}

func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db, now: time.Now}
}

func (r *SQLiteProjectRepo) Save(ctx context.Context, p *domain.Project) error {
	doc, err := encodeProject(p)
	if err != nil {
		return err
	}
	query := `INSERT INTO projects (event_id, title, date, time, place, audience, created_at, updated_at, document)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(event_id) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			time = excluded.time,
			place = excluded.place,
			audience = excluded.audience,
			updated_at = excluded.updated_at,
			document = excluded.document`
	_, err = r.db.ExecContext(ctx, query,
		p.EventID,
		p.Summary().Title,
		p.Date,
		p.Time,
		p.Place,
		p.Audience,
		formatSortable(p.CreatedAt.Time),
		formatSortable(r.now()),
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("upserting project %s: %w", p.EventID, err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Load(ctx context.Context, id string) (*domain.Project, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT document FROM projects WHERE event_id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", id, err)
	}
	return decodeProject([]byte(doc))
}

func (r *SQLiteProjectRepo) ListRecent(ctx context.Context, limit int) ([]domain.ProjectSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT event_id, title, date, time, place, created_at
		FROM projects ORDER BY created_at DESC, event_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []domain.ProjectSummary
	for rows.Next() {
		var s domain.ProjectSummary
		var createdAt string
		if err := rows.Scan(&s.EventID, &s.Title, &s.Date, &s.Time, &s.Place, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		s.CreatedAt, err = time.Parse(sortableTime, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", s.EventID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return out, nil
}
