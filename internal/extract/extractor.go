// Package extract turns a free-form event description into a new project
// document. Extraction is heuristic: quoted spans, prepositional patterns,
// keyword stems and a date finder. It never fails; missing signals leave
// fields empty or at their placeholders.
package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/google/uuid"
)

const titleMaxWords = 10

var (
	titleInQuotes   = regexp.MustCompile(`[«"“”]([^"»]+)[»"“”]`)
	placePattern    = regexp.MustCompile(`(?i)(?:^|[^\p{L}\d])(?:в|на|по адресу|адрес:)\s+([^.;\n]+)`)
	audiencePattern = regexp.MustCompile(`(?i)(?:^|[^\p{L}\d])для\s+([^.;\n]+)`)
	sentenceBreaks  = regexp.MustCompile(`[.!?\n]`)
)

// Extractor builds projects from raw text.
type Extractor struct {
	dates *DateFinder
	now   func() time.Time
	newID func() string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the time source used for created_at and date resolution.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithIDGenerator overrides event_id generation.
func WithIDGenerator(gen func() string) Option {
	return func(e *Extractor) { e.newID = gen }
}

// WithDateFinder overrides the date finder (and with it the time zone).
func WithDateFinder(f *DateFinder) Option {
	return func(e *Extractor) { e.dates = f }
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		dates: NewDateFinder(time.Local),
		now:   time.Now,
		newID: NewEventID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEventID returns a random 32-character hex identifier.
func NewEventID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Extract converts text into a fresh project with an empty history.
func (e *Extractor) Extract(text string) *domain.Project {
	now := e.now()
	p := &domain.Project{
		EventID:   e.newID(),
		Title:     ExtractTitle(text),
		Place:     ExtractPlace(text),
		Audience:  ExtractAudience(text),
		Notes:     text,
		Sections:  ClassifySentences(text),
		CreatedAt: domain.NewTimestamp(now),
		History:   []domain.HistoryEntry{},
	}
	if m, ok := e.dates.First(text, now); ok {
		p.Date = m.Time.Format("2006-01-02")
		if m.HasClock() {
			p.Time = m.Time.Format("15:04")
		}
	}
	return p
}

// ExtractTitle prefers the first quoted span, then the first sentence cut
// to ten words, then the placeholder.
func ExtractTitle(text string) string {
	if m := titleInQuotes.FindStringSubmatch(text); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			return title
		}
	}
	first, _, _ := strings.Cut(text, ".")
	words := strings.Fields(first)
	if len(words) == 0 {
		return domain.UntitledProject
	}
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}
	return strings.Join(words, " ")
}

// ExtractPlace returns the text following the first "в/на/по адресу".
// Candidates that start with a digit ("в 15:00", "на 25 человек") give way
// to a later preposition when there is one.
func ExtractPlace(text string) string {
	first := ""
	rest := text
	for {
		loc := placePattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			return first
		}
		candidate := strings.TrimSpace(rest[loc[2]:loc[3]])
		if first == "" {
			first = candidate
		}
		if candidate != "" && !unicode.IsDigit([]rune(candidate)[0]) {
			return candidate
		}
		rest = rest[loc[2]:]
	}
}

// ExtractAudience returns the text following the first "для".
func ExtractAudience(text string) string {
	if m := audiencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ClassifySentences files every sentence under each category whose keyword
// stems it contains. A sentence may land in several categories or none.
func ClassifySentences(text string) *domain.Sections {
	sections := domain.NewSections()
	for _, sentence := range sentenceBreaks.Split(text, -1) {
		clean := strings.TrimSpace(sentence)
		if clean == "" {
			continue
		}
		lower := strings.ToLower(clean)
		for _, cat := range domain.Taxonomy {
			if matchesAny(lower, cat.Keywords) {
				s := sections.Ensure(cat.Name)
				s.Notes = append(s.Notes, clean)
			}
		}
	}
	return sections
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
