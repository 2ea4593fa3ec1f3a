package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
)

// sortableTime has a fixed width so lexical order matches time order.
const sortableTime = "2006-01-02T15:04:05.000000000Z"

func formatSortable(t time.Time) string {
	return t.UTC().Format(sortableTime)
}

// encodeProject renders the storage form of a project: indented, with
// non-ASCII text left unescaped.
func encodeProject(p *domain.Project) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encoding project %s: %w", p.EventID, err)
	}
	return buf.Bytes(), nil
}

func decodeProject(data []byte) (*domain.Project, error) {
	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return &p, nil
}

// sortRecent orders summaries newest first, breaking ties by id.
func sortRecent(items []domain.ProjectSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].EventID < items[j].EventID
	})
}

func truncate(items []domain.ProjectSummary, limit int) []domain.ProjectSummary {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
