package intelligence

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/eventpilot/internal/domain"
)

var (
	clockToken     = regexp.MustCompile(`(\d{1,2}:\d{2})`)
	contractorWord = regexp.MustCompile(`(?i)подрядчик\p{L}*`)
)

// DefaultMatchers returns the built-in rules in priority order.
func DefaultMatchers() []Matcher {
	return []Matcher{MatchHostTimeChange, MatchContractorAdd}
}

// MatchHostTimeChange recognises "change the host's time to HH:MM". Without
// a time token the rule does not match.
func MatchHostTimeChange(text string) (Intent, bool) {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "измени") && !strings.Contains(lower, "поменяй") {
		return Intent{}, false
	}
	if !strings.Contains(lower, "ведущ") {
		return Intent{}, false
	}
	m := clockToken.FindStringSubmatch(text)
	if m == nil {
		return Intent{}, false
	}
	return Intent{Name: IntentHostTimeChange, Value: m[1]}, true
}

// MatchContractorAdd recognises "add a contractor ...". The description is
// whatever follows the word "подрядчик" in any inflection.
func MatchContractorAdd(text string) (Intent, bool) {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "добав") || !strings.Contains(lower, "подрядчик") {
		return Intent{}, false
	}
	name := ""
	if loc := contractorWord.FindStringIndex(text); loc != nil {
		name = strings.Trim(text[loc[1]:], " :.-,\t\n")
	}
	if name == "" {
		name = domain.UnnamedContractor
	}
	return Intent{Name: IntentContractorAdd, Value: name}, true
}
