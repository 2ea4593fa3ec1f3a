// Package intelligence interprets free-text edit instructions against an
// existing project: ordered intent matchers, staged changes that need an
// explicit yes, and the confirmation contract that applies them.
package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/alexanderramin/eventpilot/internal/extract"
)

// HostTimePath is where a host time change lands inside the program section.
var HostTimePath = []string{"ведущий", "time"}

// Engine applies instructions to projects. It performs no I/O; callers
// persist the mutated project.
type Engine struct {
	dates    *extract.DateFinder
	now      func() time.Time
	matchers []Matcher
}

// Option configures an Engine.
type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithDateFinder(f *extract.DateFinder) Option {
	return func(e *Engine) { e.dates = f }
}

// WithMatchers replaces the built-in rule list.
func WithMatchers(ms ...Matcher) Option {
	return func(e *Engine) { e.matchers = ms }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		dates:    extract.NewDateFinder(time.Local),
		now:      time.Now,
		matchers: DefaultMatchers(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply interprets text against p. A host time change is only staged and
// returned for confirmation; every other path mutates p and appends exactly
// one history entry.
func (e *Engine) Apply(p *domain.Project, text string) EditResult {
	now := e.now()
	res := EditResult{Reply: ReplyNoAction}

	for _, match := range e.matchers {
		intent, ok := match(text)
		if !ok {
			continue
		}
		switch intent.Name {
		case IntentHostTimeChange:
			if s, ok := p.Sections.Get(domain.SectionProgram); ok {
				if err := s.CheckPath(HostTimePath); err != nil {
					p.Record(domain.ActionNote, text, now)
					return EditResult{Reply: ReplyHostNotObject}
				}
			}
			return stageHostTime(p, intent.Value)
		case IntentContractorAdd:
			p.Section(domain.SectionContractors).AddEntry(domain.ContractorEntry(intent.Value, now))
			res.Reply = fmt.Sprintf("Готово: добавил подрядчика %s.", intent.Value)
			res.Updated = true
			res.Summary = "подрядчик " + intent.Value
		}
	}

	if found := e.dates.All(text, now); len(found) > 0 {
		deadlines := p.Section(domain.SectionDeadlines)
		for _, d := range found {
			deadlines.AddEntry(domain.DeadlineEntry(d.Time, d.Fragment, now))
		}
		res.Reply = ReplyDeadlines
		res.Updated = true
		res.Summary = strings.TrimSpace(res.Summary + " дедлайны")
	}

	if res.Updated {
		p.Record(domain.ActionFreeformUpdate, text, now)
		return res
	}
	p.Record(domain.ActionNote, text, now)
	return res
}

func stageHostTime(p *domain.Project, newTime string) EditResult {
	old := domain.Null()
	if s, ok := p.Sections.Get(domain.SectionProgram); ok {
		if v, ok := s.Lookup(HostTimePath); ok {
			old = v
		}
	}
	shown := old.Text()
	if shown == "" {
		shown = valueNotSet
	}
	path := make([]string, len(HostTimePath))
	copy(path, HostTimePath)
	return EditResult{
		Reply:                fmt.Sprintf("Поменять время ведущего с %s на %s?\n%s", shown, newTime, ReplyConfirmHint),
		RequiresConfirmation: true,
		Pending: &domain.PendingChange{
			Section: domain.SectionProgram,
			Path:    path,
			Value:   domain.String(newTime),
			Summary: "время ведущего на " + newTime,
			Old:     old,
		},
	}
}
