package domain

import "time"

const isoDate = "2006-01-02"

// ContractorEntry builds the record appended to the contractors section.
func ContractorEntry(name string, addedAt time.Time) Value {
	obj := NewObject()
	obj.Set("name", String(name))
	obj.Set("added_at", String(NewTimestamp(addedAt).String()))
	return ObjectValue(obj)
}

// DeadlineEntry builds the record appended to the deadlines section.
func DeadlineEntry(due time.Time, context string, capturedAt time.Time) Value {
	obj := NewObject()
	obj.Set("due_date", String(due.Format(isoDate)))
	obj.Set("context", String(context))
	obj.Set("captured_at", String(NewTimestamp(capturedAt).String()))
	return ObjectValue(obj)
}

// Deadline is the typed view of a deadlines entry.
type Deadline struct {
	DueDate time.Time
	Context string
}

// ParseDeadline reads a deadlines entry. Entries with a missing or
// malformed due_date are reported as not ok.
func ParseDeadline(v Value) (Deadline, bool) {
	obj, ok := v.Obj()
	if !ok {
		return Deadline{}, false
	}
	raw, _ := obj.Get("due_date")
	due, ok := raw.Str()
	if !ok {
		return Deadline{}, false
	}
	t, err := time.Parse(isoDate, due)
	if err != nil {
		return Deadline{}, false
	}
	ctxVal, _ := obj.Get("context")
	return Deadline{DueDate: t, Context: ctxVal.Text()}, true
}

// Deadlines returns the parseable deadline entries of the project in
// document order.
func (p *Project) Deadlines() []Deadline {
	s, ok := p.Sections.Get(SectionDeadlines)
	if !ok {
		return nil
	}
	var out []Deadline
	for _, e := range s.Entries {
		if d, ok := ParseDeadline(e); ok {
			out = append(out, d)
		}
	}
	return out
}
