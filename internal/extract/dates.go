package extract

import (
	"strings"
	"time"
	"unicode"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
)

// DateMatch is one date mention found in text.
type DateMatch struct {
	Fragment string
	Time     time.Time
}

// HasClock reports whether the match carries a non-midnight time of day.
func (m DateMatch) HasClock() bool {
	return m.Time.Hour() != 0 || m.Time.Minute() != 0
}

// DateFinder locates Russian date and time expressions. Dates without a
// year resolve into the future relative to the reference time.
type DateFinder struct {
	parser  *when.Parser
	ruleset []rules.Rule
	loc     *time.Location
}

// NewDateFinder builds a finder that interprets wall-clock values in loc.
func NewDateFinder(loc *time.Location) *DateFinder {
	if loc == nil {
		loc = time.Local
	}
	ruleset := []rules.Rule{
		exactMonthDate(),
		numericDate(),
		casualDate(),
		relativeDays(),
		weekdayDate(),
		nextWeek(),
		clockTime(),
	}
	ruleset = append(ruleset, common.All...)
	p := when.New(nil)
	p.Add(ruleset...)
	return &DateFinder{parser: p, ruleset: ruleset, loc: loc}
}

// First returns the first date expression in text.
func (f *DateFinder) First(text string, ref time.Time) (DateMatch, bool) {
	matches := f.search(text, ref, 1)
	if len(matches) == 0 {
		return DateMatch{}, false
	}
	return matches[0], true
}

// All returns every date expression in text, in order of appearance.
func (f *DateFinder) All(text string, ref time.Time) []DateMatch {
	return f.search(text, ref, 0)
}

func (f *DateFinder) search(text string, ref time.Time, limit int) []DateMatch {
	base := f.base(ref)
	var out []DateMatch
	rest := text
	for rest != "" {
		res, err := f.parser.Parse(rest, base)
		if err != nil {
			break
		}
		if res == nil || res.Text == "" {
			// A date-shaped token that is not a real date ("31.11") yields
			// no result; step over it and keep scanning.
			skip := f.rejectedEnd(rest)
			if skip <= 0 || skip > len(rest) {
				break
			}
			rest = rest[skip:]
			continue
		}
		fragment := strings.TrimFunc(res.Text, notWordRune)
		if fragment != "" {
			out = append(out, DateMatch{
				Fragment: fragment,
				Time:     wallClock(res.Time, f.loc),
			})
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		next := res.Index + len(res.Text)
		if next <= 0 || next > len(rest) {
			break
		}
		rest = rest[next:]
	}
	return out
}

// rejectedEnd returns the end offset of the leftmost rule hit in text, or
// -1 when no rule matches at all.
func (f *DateFinder) rejectedEnd(text string) int {
	left, end := -1, -1
	for _, r := range f.ruleset {
		m := r.Find(text)
		if m == nil || m.Left < 0 {
			continue
		}
		if left < 0 || m.Left < left || (m.Left == left && m.Right > end) {
			left, end = m.Left, m.Right
		}
	}
	return end
}

// base is midnight of ref's calendar day in the finder's location, carried
// in UTC so relative shifts never cross a DST boundary. Without a clock
// expression a match therefore reports 00:00.
func (f *DateFinder) base(ref time.Time) time.Time {
	local := ref.In(f.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// wallClock reinterprets the UTC-carried result as a wall-clock time in loc.
func wallClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
