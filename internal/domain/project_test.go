package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSections_AllCategoriesInOrder(t *testing.T) {
	ss := NewSections()
	assert.Equal(t, SectionNames(), ss.Names())
	for _, name := range ss.Names() {
		s, ok := ss.Get(name)
		require.True(t, ok)
		assert.NotNil(t, s.Notes)
		assert.Empty(t, s.Notes)
		assert.Nil(t, s.Entries)
	}
}

func TestProject_Section_CreatesMissing(t *testing.T) {
	p := &Project{}
	s := p.Section("новая")
	require.NotNil(t, s)
	assert.Equal(t, []string{"новая"}, p.Sections.Names())
	assert.Same(t, s, p.Section("новая"))
}

func TestProject_RecordAppends(t *testing.T) {
	p := &Project{}
	at := time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)
	p.Record(ActionNote, "first", at)
	p.Record(ActionFreeformUpdate, "second", at.Add(time.Minute))

	require.Len(t, p.History, 2)
	assert.Equal(t, ActionNote, p.History[0].Action)
	assert.Equal(t, "first", p.History[0].Details)
	assert.Equal(t, ActionFreeformUpdate, p.History[1].Action)
}

func TestProject_JSONFieldNames(t *testing.T) {
	p := &Project{
		EventID:   "abc",
		Title:     "Встреча",
		Date:      "2025-12-25",
		Time:      "15:00",
		Notes:     "raw",
		Sections:  NewSections(),
		CreatedAt: NewTimestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"event_id", "title", "date", "time", "place", "audience", "notes", "sections", "created_at", "history"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "2025-01-01T00:00:00Z", raw["created_at"])
}

func TestProject_RoundTripKeepsUnknownSectionKeys(t *testing.T) {
	doc := `{
		"event_id": "e1",
		"title": "T",
		"date": null,
		"time": null,
		"place": null,
		"audience": null,
		"notes": "",
		"sections": {
			"подрядчики": {"notes": ["a"], "entries": [{"name": "x", "added_at": "2025-01-01T10:00:00.123456"}]},
			"программа/сценарий": {"notes": [], "ведущий": {"time": "21:00", "extra": [1, 2.5, true, null]}},
			"custom": {"notes": [], "budget": 1500}
		},
		"created_at": "2025-01-01T10:00:00.123456",
		"history": [{"timestamp": "2025-01-01T10:00:00", "action": "note", "details": "hi"}]
	}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(doc), &p))
	assert.Equal(t, []string{"подрядчики", "программа/сценарий", "custom"}, p.Sections.Names())
	assert.Equal(t, 2025, p.CreatedAt.Year())

	program, ok := p.Sections.Get("программа/сценарий")
	require.True(t, ok)
	hostTime, ok := program.Lookup([]string{"ведущий", "time"})
	require.True(t, ok)
	assert.Equal(t, "21:00", hostTime.Text())

	first, err := json.Marshal(&p)
	require.NoError(t, err)

	var again Project
	require.NoError(t, json.Unmarshal(first, &again))
	second, err := json.Marshal(&again)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
	assert.Contains(t, string(second), `"budget":1500`)
	assert.Contains(t, string(second), `"extra":[1,2.5,true,null]`)
}

func TestSection_SetPathCreatesIntermediateObjects(t *testing.T) {
	s := NewSection()
	require.NoError(t, s.SetPath([]string{"ведущий", "time"}, String("21:00")))

	v, ok := s.Lookup([]string{"ведущий", "time"})
	require.True(t, ok)
	assert.Equal(t, "21:00", v.Text())

	require.NoError(t, s.SetPath([]string{"ведущий", "name"}, String("Анна")))
	host, ok := s.Lookup([]string{"ведущий"})
	require.True(t, ok)
	obj, ok := host.Obj()
	require.True(t, ok)
	assert.Equal(t, []string{"time", "name"}, obj.Keys())
}

func TestSection_SetPathRejectsInvalidTargets(t *testing.T) {
	s := NewSection()
	assert.ErrorIs(t, s.SetPath(nil, String("x")), ErrEmptyPath)
	assert.ErrorIs(t, s.SetPath([]string{"notes"}, String("x")), ErrReservedKey)

	require.NoError(t, s.SetPath([]string{"budget"}, String("1000")))
	err := s.SetPath([]string{"budget", "total"}, String("2000"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an object")
	assert.ErrorIs(t, err, ErrPathBlocked)
}

func TestSection_CheckPath(t *testing.T) {
	s := NewSection()
	assert.NoError(t, s.CheckPath([]string{"ведущий", "time"}))
	assert.ErrorIs(t, s.CheckPath([]string{"entries"}), ErrReservedKey)

	require.NoError(t, s.SetPath([]string{"ведущий"}, String("Анна")))
	assert.ErrorIs(t, s.CheckPath([]string{"ведущий", "time"}), ErrPathBlocked)
	assert.NoError(t, s.CheckPath([]string{"ведущий"}))
	assert.NoError(t, s.CheckPath([]string{"музыка", "time"}))
}

func TestSection_EntriesOmittedUntilAdded(t *testing.T) {
	s := NewSection()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes": []}`, string(data))

	s.AddEntry(String("x"))
	data, err = json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes": [], "entries": ["x"]}`, string(data))
}

func TestPendingChange_Validate(t *testing.T) {
	assert.ErrorIs(t, (*PendingChange)(nil).Validate(), ErrChangeMissingSection)
	assert.ErrorIs(t, (&PendingChange{Path: []string{"a"}}).Validate(), ErrChangeMissingSection)
	assert.ErrorIs(t, (&PendingChange{Section: "s"}).Validate(), ErrChangeMissingPath)
	assert.NoError(t, (&PendingChange{Section: "s", Path: []string{"a"}}).Validate())
}

func TestProject_Deadlines(t *testing.T) {
	p := &Project{Sections: NewSections()}
	at := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	s := p.Section(SectionDeadlines)
	s.AddEntry(DeadlineEntry(time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC), "25.11", at))
	s.AddEntry(String("garbage"))

	got := p.Deadlines()
	require.Len(t, got, 1)
	assert.Equal(t, "25.11", got[0].Context)
	assert.Equal(t, 25, got[0].DueDate.Day())
}

func TestProject_SummaryFallsBackToEventID(t *testing.T) {
	p := &Project{EventID: "abc", Date: "2025-12-01"}
	assert.Equal(t, "abc", p.Summary().Title)

	p.Title = "Форум"
	assert.Equal(t, "Форум", p.Summary().Title)
}

func TestProject_UnsetScalarsMarshalAsNull(t *testing.T) {
	raw := `{"event_id":"legacy","title":"Старый","date":null,"time":null,"place":"Лофт","audience":null,
		"notes":"","created_at":"2024-05-01T10:00:00.123456","sections":{},"history":[]}`
	var p Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Empty(t, p.Date)

	data, err := json.Marshal(&p)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"date", "time", "audience"} {
		v, ok := doc[key]
		assert.True(t, ok, key)
		assert.Nil(t, v, key)
	}
	assert.Equal(t, "Лофт", doc["place"])

	p.Date = "2025-12-01"
	p.Title = "R&D <день>"
	data, err = json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2025-12-01"`)
	assert.Contains(t, string(data), `"title":"R&D <день>"`)
}
