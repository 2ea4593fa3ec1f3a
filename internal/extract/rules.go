package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when/rules"
)

// Boundaries stand in for \b, which RE2 only supports for ASCII.
const (
	leftEdge  = `(?:^|[^\p{L}\d])`
	rightEdge = `(?:[^\p{L}\d]|$)`
)

var monthByPrefix = map[string]int{
	"янв": 1, "фев": 2, "мар": 3, "апр": 4, "мая": 5, "май": 5,
	"июн": 6, "июл": 7, "авг": 8, "сен": 9, "окт": 10, "ноя": 11, "дек": 12,
}

// exactMonthDate matches "25 декабря" and "25 декабря 2026".
func exactMonthDate() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)` + leftEdge +
			`(0?[1-9]|[12]\d|3[01])\s+` +
			`(январ\p{L}*|феврал\p{L}*|март\p{L}*|апрел\p{L}*|ма[яй]|июн\p{L}*|июл\p{L}*|август\p{L}*|сентябр\p{L}*|октябр\p{L}*|ноябр\p{L}*|декабр\p{L}*)` +
			`(?:\s+(\d{4}))?` + rightEdge),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			day, _ := strconv.Atoi(m.Captures[0])
			name := []rune(strings.ToLower(m.Captures[1]))
			if len(name) < 3 {
				return false, nil
			}
			month, ok := monthByPrefix[string(name[:3])]
			if !ok {
				return false, nil
			}
			year := 0
			if len(m.Captures) > 2 && m.Captures[2] != "" {
				year, _ = strconv.Atoi(m.Captures[2])
			}
			return setDate(c, ref, year, month, day), nil
		},
	}
}

// numericDate matches "25.11", "25.11.26" and "25.11.2026".
func numericDate() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?:^|[^\p{L}\d.:])` +
			`(0?[1-9]|[12]\d|3[01])\.(0?[1-9]|1[0-2])(?:\.(\d{4}|\d{2}))?` +
			`(?:[^\p{L}\d:]|$)`),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			day, _ := strconv.Atoi(m.Captures[0])
			month, _ := strconv.Atoi(m.Captures[1])
			year := 0
			if len(m.Captures) > 2 && m.Captures[2] != "" {
				year, _ = strconv.Atoi(m.Captures[2])
				if year < 100 {
					year += 2000
				}
			}
			return setDate(c, ref, year, month, day), nil
		},
	}
}

// clockTime matches "15:00" and "9:30".
func clockTime() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?:^|[^\p{L}\d:.])([01]?\d|2[0-3]):([0-5]\d)(?:[^\p{L}\d:]|$)`),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			hour, _ := strconv.Atoi(m.Captures[0])
			minute, _ := strconv.Atoi(m.Captures[1])
			c.Hour = &hour
			c.Minute = &minute
			return true, nil
		},
	}
}

// casualDate matches "сегодня", "завтра" and "послезавтра".
func casualDate() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)` + leftEdge + `(сегодня|послезавтра|завтра)` + rightEdge),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			switch strings.ToLower(m.Captures[0]) {
			case "завтра":
				c.Duration += 24 * time.Hour
			case "послезавтра":
				c.Duration += 48 * time.Hour
			}
			return true, nil
		},
	}
}

// relativeDays matches "через 3 дня" and "через 2 недели".
func relativeDays() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)` + leftEdge + `(через\s+(\d{1,3})\s+(день|дн\p{L}*|недел\p{L}*))` + rightEdge),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			n, err := strconv.Atoi(m.Captures[1])
			if err != nil {
				return false, nil
			}
			days := n
			if strings.HasPrefix(strings.ToLower(m.Captures[2]), "недел") {
				days = n * 7
			}
			c.Duration += time.Duration(days) * 24 * time.Hour
			return true, nil
		},
	}
}

var weekdayByPrefix = map[string]time.Weekday{
	"пон": time.Monday, "вто": time.Tuesday, "сре": time.Wednesday, "чет": time.Thursday,
	"пят": time.Friday, "суб": time.Saturday, "вос": time.Sunday,
}

const weekdayNames = `(понедельник\p{L}*|вторник\p{L}*|сред[уаые]|четверг\p{L}*|пятниц[уаые]|суббот[уаые]|воскресень[еяю])`

const nextWeekPhrase = `на\s+следующей\s+неделе`

var weekdayPattern = regexp.MustCompile(`(?i)` + leftEdge + `(?:во?|ко?|до)\s+` +
	`(?:(следующ\p{L}*|ближайш\p{L}*)\s+)?` + weekdayNames +
	`(\s+` + nextWeekPhrase + `)?` + rightEdge)

// weekdayDate matches "в субботу", "к пятнице", "в следующий вторник" and
// "в среду на следующей неделе". A bare weekday resolves to its next
// occurrence on or after ref; "следующ…" moves it into the next calendar
// week.
func weekdayDate() rules.Rule {
	return &rules.F{
		RegExp: weekdayPattern,
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			name := []rune(strings.ToLower(m.Captures[1]))
			if len(name) < 3 {
				return false, nil
			}
			day, ok := weekdayByPrefix[string(name[:3])]
			if !ok {
				return false, nil
			}
			modifier := strings.ToLower(m.Captures[0])
			following := strings.HasPrefix(modifier, "следующ") || m.Captures[2] != ""
			c.Duration = time.Duration(weekdayOffset(ref.Weekday(), day, following)) * 24 * time.Hour
			return true, nil
		},
	}
}

// nextWeek matches a bare "на следующей неделе" as seven days ahead. When
// the same cluster names a weekday, weekdayDate owns the phrase.
func nextWeek() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)` + leftEdge + `(` + nextWeekPhrase + `)` + rightEdge),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			if weekdayPattern.MatchString(c.Text) {
				return false, nil
			}
			c.Duration += 7 * 24 * time.Hour
			return true, nil
		},
	}
}

// weekdayOffset counts days from 'from' to the target weekday. In the
// current week the result is in [0, 6]; with following it lands in the
// Monday-based week after from's.
func weekdayOffset(from, to time.Weekday, following bool) int {
	if !following {
		return (int(to) - int(from) + 7) % 7
	}
	toNextMonday := 7 - isoWeekday(from) + 1
	return toNextMonday + isoWeekday(to) - 1
}

// isoWeekday numbers Monday as 1 and Sunday as 7.
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// setDate moves the context to a calendar date, keeping ref's clock.
// Without an explicit year the date resolves to its next occurrence on or
// after ref. The shift is expressed as a duration so it composes with the
// clock rules regardless of the day ref falls on.
func setDate(c *rules.Context, ref time.Time, year, month, day int) bool {
	if year == 0 {
		year = ref.Year()
		candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, ref.Location())
		today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
		if candidate.Before(today) {
			year++
		}
	}
	target := time.Date(year, time.Month(month), day,
		ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
	if target.Day() != day || int(target.Month()) != month {
		return false
	}
	c.Duration = target.Sub(ref)
	return true
}
