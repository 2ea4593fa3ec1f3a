package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/eventpilot/internal/extract"
	"github.com/alexanderramin/eventpilot/internal/intelligence"
	"github.com/alexanderramin/eventpilot/internal/repository"
	"github.com/alexanderramin/eventpilot/internal/session"
	"github.com/alexanderramin/eventpilot/internal/testutil"
)

var refTime = time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return refTime }

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}

type harness struct {
	db       *sql.DB
	repo     *repository.SQLiteProjectRepo
	observer *recordingObserver
	projects ProjectService
	edits    EditService
	stats    StatsService
	convo    *Conversation
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	obs := &recordingObserver{}
	finder := extract.NewDateFinder(time.UTC)
	extractor := extract.NewExtractor(extract.WithClock(fixedClock), extract.WithDateFinder(finder))
	engine := intelligence.NewEngine(intelligence.WithClock(fixedClock), intelligence.WithDateFinder(finder))

	h := &harness{
		db:       database,
		repo:     repo,
		observer: obs,
		projects: NewProjectService(repo, extractor, obs),
		edits:    NewEditService(repo, engine, obs),
		stats:    NewStatsService(repo, fixedClock, obs),
	}
	h.convo = NewConversation(session.NewStore(time.Hour), h.projects, h.edits, h.stats, 0, obs)
	return h
}
