package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Project is the structured record of one planned event. The JSON field
// names are the storage contract and must not change.
type Project struct {
	EventID   string         `json:"event_id"`
	Title     string         `json:"title"`
	Date      string         `json:"date"`
	Time      string         `json:"time"`
	Place     string         `json:"place"`
	Audience  string         `json:"audience"`
	Notes     string         `json:"notes"`
	Sections  *Sections      `json:"sections"`
	CreatedAt Timestamp      `json:"created_at"`
	History   []HistoryEntry `json:"history"`
}

// HistoryEntry is one immutable audit-log record.
type HistoryEntry struct {
	Timestamp Timestamp     `json:"timestamp"`
	Action    HistoryAction `json:"action"`
	Details   string        `json:"details"`
}

// projectDocument mirrors Project with the optional scalars nullable.
type projectDocument struct {
	EventID   string         `json:"event_id"`
	Title     string         `json:"title"`
	Date      *string        `json:"date"`
	Time      *string        `json:"time"`
	Place     *string        `json:"place"`
	Audience  *string        `json:"audience"`
	Notes     string         `json:"notes"`
	Sections  *Sections      `json:"sections"`
	CreatedAt Timestamp      `json:"created_at"`
	History   []HistoryEntry `json:"history"`
}

// MarshalJSON writes an unset date, time, place or audience as null.
// Decoding null leaves the field empty, so both forms round-trip.
func (p Project) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(projectDocument{
		EventID:   p.EventID,
		Title:     p.Title,
		Date:      nullable(p.Date),
		Time:      nullable(p.Time),
		Place:     nullable(p.Place),
		Audience:  nullable(p.Audience),
		Notes:     p.Notes,
		Sections:  p.Sections,
		CreatedAt: p.CreatedAt,
		History:   p.History,
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Section returns the named section, creating it (and the sections map)
// when absent.
func (p *Project) Section(name string) *Section {
	if p.Sections == nil {
		p.Sections = &Sections{}
	}
	return p.Sections.Ensure(name)
}

// Record appends an audit-log entry. History is append-only.
func (p *Project) Record(action HistoryAction, details string, at time.Time) {
	p.History = append(p.History, HistoryEntry{
		Timestamp: NewTimestamp(at),
		Action:    action,
		Details:   details,
	})
}

// Summary returns the listing view of the project. An empty title is
// listed under the event ID.
func (p *Project) Summary() ProjectSummary {
	title := p.Title
	if title == "" {
		title = p.EventID
	}
	return ProjectSummary{
		EventID:   p.EventID,
		Title:     title,
		Date:      p.Date,
		Time:      p.Time,
		Place:     p.Place,
		CreatedAt: p.CreatedAt.Time,
	}
}

// ProjectSummary is the short form used for recency listings.
type ProjectSummary struct {
	EventID   string
	Title     string
	Date      string
	Time      string
	Place     string
	CreatedAt time.Time
}

var (
	ErrChangeMissingSection = errors.New("pending change has no section")
	ErrChangeMissingPath    = errors.New("pending change has no path")
)

// PendingChange is a single staged mutation awaiting confirmation. It lives
// in the caller's session, never in the project document.
type PendingChange struct {
	Section string   `json:"section"`
	Path    []string `json:"path"`
	Value   Value    `json:"value"`
	Summary string   `json:"summary"`
	Old     Value    `json:"old"`
}

// Validate reports whether the change is structurally applicable.
func (c *PendingChange) Validate() error {
	if c == nil || c.Section == "" {
		return ErrChangeMissingSection
	}
	if len(c.Path) == 0 {
		return ErrChangeMissingPath
	}
	return nil
}
