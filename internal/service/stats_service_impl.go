package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/eventpilot/internal/repository"
)

const (
	statsScanLimit    = 100
	statsTopDeadlines = 3
)

type statsService struct {
	projects repository.ProjectRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewStatsService(projects repository.ProjectRepo, now func() time.Time, observers ...UseCaseObserver) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{
		projects: projects,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Stats counts the most recent projects and collects the nearest deadlines
// that are not yet past. Projects that fail to load are skipped.
func (s *statsService) Stats(ctx context.Context) (out *Stats, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "stats", fields)
	defer func() { done(err) }()

	summaries, err := s.projects.ListRecent(ctx, statsScanLimit)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var upcoming []UpcomingDeadline
	skipped := 0
	for _, sum := range summaries {
		p, err := s.projects.Load(ctx, sum.EventID)
		if err != nil {
			skipped++
			continue
		}
		for _, d := range p.Deadlines() {
			if d.DueDate.Before(today) {
				continue
			}
			upcoming = append(upcoming, UpcomingDeadline{
				ProjectID: p.EventID,
				Title:     p.Title,
				Due:       d.DueDate,
				Context:   d.Context,
			})
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Due.Before(upcoming[j].Due)
	})
	if len(upcoming) > statsTopDeadlines {
		upcoming = upcoming[:statsTopDeadlines]
	}
	fields["projects"] = len(summaries)
	fields["skipped"] = skipped
	return &Stats{TotalProjects: len(summaries), Upcoming: upcoming}, nil
}
