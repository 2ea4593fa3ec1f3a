package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/alexanderramin/eventpilot/internal/service"
	"github.com/alexanderramin/eventpilot/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var now = time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

func TestRelativeDaysFrom(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{"today", now, "сегодня"},
		{"later today", now.Add(5 * time.Hour), "сегодня"},
		{"tomorrow", now.Add(24 * time.Hour), "завтра"},
		{"yesterday", now.Add(-24 * time.Hour), "вчера"},
		{"future", now.AddDate(0, 0, 10), "через 10 дн."},
		{"past", now.AddDate(0, 0, -3), "3 дн. назад"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDaysFrom(tt.day, now))
		})
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"long cell", "x"}, {"s", "y"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestFormatProjectList(t *testing.T) {
	p := testutil.NewTestProject("Новогодний корпоратив",
		testutil.WithEventID("0123456789abcdef"),
		testutil.WithDate("2025-12-25"),
		testutil.WithPlace("ресторан «Север»"),
	)
	out := stripANSI(FormatProjectList([]domain.ProjectSummary{p.Summary()}))

	assert.Contains(t, out, "ПРОЕКТЫ")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "Новогодний корпоратив")
	assert.Contains(t, out, "2025-12-25")
	assert.Contains(t, out, "--")
}

func TestFormatProjectDetail(t *testing.T) {
	p := testutil.NewTestProject("Конференция",
		testutil.WithDate("2025-11-20"),
		testutil.WithTime("10:00"),
		testutil.WithSectionNote("Программа", "Открытие в 10:00"),
		testutil.WithDeadline("2025-11-02", "макет баннера"),
	)
	p.Section(domain.SectionContractors).AddEntry(domain.ContractorEntry("типография", now))
	p.Record(domain.ActionNote, "первая заметка", now)

	out := stripANSI(FormatProjectDetail(p, now))

	assert.Contains(t, out, "КОНФЕРЕНЦИЯ")
	assert.Contains(t, out, "2025-11-20 10:00")
	assert.Contains(t, out, "2025-11-02 (завтра)  макет баннера")
	assert.Contains(t, out, "• Открытие в 10:00")
	assert.Contains(t, out, "◦ name: типография")
	assert.Contains(t, out, "первая заметка")
	assert.Contains(t, out, "note")
}

func TestFormatProjectDetail_HistoryTail(t *testing.T) {
	p := testutil.NewTestProject("Тест")
	for i := 0; i < 8; i++ {
		p.Record(domain.ActionNote, string(rune('a'+i)), now)
	}
	out := stripANSI(FormatProjectDetail(p, now))
	assert.NotContains(t, out, "  a\n")
	assert.True(t, strings.HasSuffix(out, "h"))
}

func TestFormatStats(t *testing.T) {
	empty := stripANSI(FormatStats(&service.Stats{}, now))
	assert.Contains(t, empty, "Всего проектов: 0")
	assert.Contains(t, empty, "Ближайших дедлайнов нет.")

	st := &service.Stats{
		TotalProjects: 2,
		Upcoming: []service.UpcomingDeadline{
			{ProjectID: "p1", Title: "Форум", Due: now.AddDate(0, 0, 3), Context: "заказать зал"},
		},
	}
	out := stripANSI(FormatStats(st, now))
	assert.Contains(t, out, "Всего проектов: 2")
	assert.Contains(t, out, "Форум")
	assert.Contains(t, out, "заказать зал")
	assert.Contains(t, out, "через 3 дн.")
}

func TestFormatTransfer(t *testing.T) {
	assert.Equal(t, "Импортировано: 3", stripANSI(FormatTransfer("Импортировано", &service.TransferResult{Transferred: 3})))

	out := stripANSI(FormatTransfer("Импортировано", &service.TransferResult{Transferred: 1, Skipped: []string{"bad.json"}}))
	assert.Contains(t, out, "Пропущено: 1")
	assert.Contains(t, out, "bad.json")
}

func TestFormatButtons_NumbersAcrossRows(t *testing.T) {
	out := stripANSI(FormatButtons([][]string{{"a", "b"}, {"c"}}))
	assert.Equal(t, "[1] a   [2] b\n[3] c", out)
}
