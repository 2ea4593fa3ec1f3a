package testutil

import (
	"strings"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/google/uuid"
)

// ProjectOption customises a fixture project.
type ProjectOption func(*domain.Project)

func WithEventID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.EventID = id
	}
}

func WithDate(date string) ProjectOption {
	return func(p *domain.Project) {
		p.Date = date
	}
}

func WithTime(clock string) ProjectOption {
	return func(p *domain.Project) {
		p.Time = clock
	}
}

func WithPlace(place string) ProjectOption {
	return func(p *domain.Project) {
		p.Place = place
	}
}

func WithAudience(audience string) ProjectOption {
	return func(p *domain.Project) {
		p.Audience = audience
	}
}

func WithCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = domain.NewTimestamp(t)
	}
}

func WithSectionNote(section, note string) ProjectOption {
	return func(p *domain.Project) {
		s := p.Section(section)
		s.Notes = append(s.Notes, note)
	}
}

// WithDeadline appends a deadlines entry due on the given ISO date.
func WithDeadline(due, context string) ProjectOption {
	return func(p *domain.Project) {
		d, err := time.Parse("2006-01-02", due)
		if err != nil {
			panic(err)
		}
		p.Section(domain.SectionDeadlines).AddEntry(domain.DeadlineEntry(d, context, p.CreatedAt.Time))
	}
}

func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		EventID:   strings.ReplaceAll(uuid.NewString(), "-", ""),
		Title:     title,
		Notes:     title,
		Sections:  domain.NewSections(),
		CreatedAt: domain.NewTimestamp(time.Now()),
		History:   []domain.HistoryEntry{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
