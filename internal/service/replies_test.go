package service

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/alexanderramin/eventpilot/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProjectLabel(t *testing.T) {
	long := strings.Repeat("я", 40)
	tests := []struct {
		name string
		in   domain.ProjectSummary
		want string
	}{
		{name: "with date", in: domain.ProjectSummary{Title: "Вечер", Date: "2025-12-25"}, want: "Вечер (2025-12-25)"},
		{name: "no date", in: domain.ProjectSummary{Title: "Вечер"}, want: "Вечер"},
		{name: "long title cut by runes", in: domain.ProjectSummary{Title: long}, want: strings.Repeat("я", 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectLabel(tt.in))
		})
	}
}

func TestProjectButtons(t *testing.T) {
	got := projectButtons([]string{"a", "b", "c"})
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}, {ButtonBack}}, got)
}

func TestCreationSummary_NoMatchesListsAllSections(t *testing.T) {
	p := testutil.NewTestProject("Пусто")

	got := CreationSummary(p)

	assert.Contains(t, got, "дата не указана")
	assert.Contains(t, got, "место не указано")
	assert.Contains(t, got, "Папки: "+strings.Join(domain.SectionNames(), ", ")+".")
}

func TestProjectCard_ShowsFirstThreeDeadlines(t *testing.T) {
	p := testutil.NewTestProject("Форум",
		testutil.WithCreatedAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		testutil.WithAudience("партнёров"),
		testutil.WithDeadline("2025-02-01", "a"),
		testutil.WithDeadline("2025-02-02", "b"),
		testutil.WithDeadline("2025-02-03", "c"),
		testutil.WithDeadline("2025-02-04", "d"),
	)

	got := ProjectCard(p)

	assert.Contains(t, got, "Аудитория: партнёров")
	assert.Contains(t, got, "Место: не указано")
	assert.Contains(t, got, "— 2025-02-03 — c")
	assert.NotContains(t, got, "— 2025-02-04 — d")
}

func TestProjectCard_NoDeadlines(t *testing.T) {
	got := ProjectCard(testutil.NewTestProject("Форум"))
	assert.True(t, strings.HasSuffix(got, "Дедлайны:\nпока нет"))
}
