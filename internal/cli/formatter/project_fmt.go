package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eventpilot/internal/domain"
	"github.com/alexanderramin/eventpilot/internal/service"
)

const historyTail = 5

// FormatProjectList renders recent projects as a table inside a box.
func FormatProjectList(projects []domain.ProjectSummary) string {
	headers := []string{"ID", "НАЗВАНИЕ", "ДАТА", "ВРЕМЯ", "МЕСТО"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.EventID),
			Bold(p.Title),
			OrDash(p.Date),
			OrDash(p.Time),
			OrDash(p.Place),
		})
	}
	return RenderBox("Проекты", RenderTable(headers, rows))
}

// FormatProjectDetail renders the whole project: header fields, every
// section with its notes, entries and free-form keys, and the tail of the
// history.
func FormatProjectDetail(p *domain.Project, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header(p.Title) + "\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:       "), p.EventID)
	fmt.Fprintf(&b, "%s %s %s\n", Dim("Дата:     "), OrDash(p.Date), p.Time)
	fmt.Fprintf(&b, "%s %s\n", Dim("Место:    "), OrDash(p.Place))
	fmt.Fprintf(&b, "%s %s\n", Dim("Аудитория:"), OrDash(p.Audience))
	fmt.Fprintf(&b, "%s %s\n", Dim("Создан:   "), p.CreatedAt.Time.Format("2006-01-02 15:04"))

	if deadlines := p.Deadlines(); len(deadlines) > 0 {
		b.WriteString("\n" + Header("Дедлайны") + "\n")
		for _, d := range deadlines {
			fmt.Fprintf(&b, "  %s  %s\n", DueStyled(d.DueDate, now), d.Context)
		}
	}

	if p.Sections != nil {
		for _, name := range p.Sections.Names() {
			s, _ := p.Sections.Get(name)
			if isEmptySection(s) {
				continue
			}
			b.WriteString("\n" + StylePurple.Render(name) + "\n")
			for _, n := range s.Notes {
				b.WriteString("  • " + n + "\n")
			}
			for _, e := range s.Entries {
				b.WriteString("  ◦ " + entryLine(e) + "\n")
			}
			for _, k := range s.Fields.Keys() {
				v, _ := s.Fields.Get(k)
				fmt.Fprintf(&b, "  %s %s\n", Dim(k+":"), v.Text())
			}
		}
	}

	if len(p.History) > 0 {
		b.WriteString("\n" + Header("История") + "\n")
		history := p.History
		if len(history) > historyTail {
			history = history[len(history)-historyTail:]
		}
		for _, h := range history {
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				Dim(h.Timestamp.Time.Format("2006-01-02 15:04")),
				StyleBlue.Render(string(h.Action)),
				h.Details)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func isEmptySection(s *domain.Section) bool {
	return len(s.Notes) == 0 && len(s.Entries) == 0 && s.Fields.Len() == 0
}

// entryLine renders an object entry as "key: value" pairs in key order.
func entryLine(v domain.Value) string {
	obj, ok := v.Obj()
	if !ok {
		return v.Text()
	}
	parts := make([]string, 0, obj.Len())
	for _, k := range obj.Keys() {
		val, _ := obj.Get(k)
		parts = append(parts, k+": "+val.Text())
	}
	return strings.Join(parts, ", ")
}

// FormatStats renders the project count and the nearest deadlines.
func FormatStats(st *service.Stats, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", Dim("Всего проектов:"), st.TotalProjects)
	if len(st.Upcoming) == 0 {
		b.WriteString(Dim("Ближайших дедлайнов нет."))
		return RenderBox("Статистика", b.String())
	}
	b.WriteString("\n")
	rows := make([][]string, 0, len(st.Upcoming))
	for _, d := range st.Upcoming {
		rows = append(rows, []string{DueStyled(d.Due, now), Bold(d.Title), d.Context})
	}
	b.WriteString(RenderTable([]string{"СРОК", "ПРОЕКТ", "КОНТЕКСТ"}, rows))
	return RenderBox("Статистика", strings.TrimRight(b.String(), "\n"))
}

// FormatTransfer reports the outcome of an import or export.
func FormatTransfer(verb string, r *service.TransferResult) string {
	line := fmt.Sprintf("%s: %d", verb, r.Transferred)
	if len(r.Skipped) == 0 {
		return StyleGreen.Render(line)
	}
	var b strings.Builder
	b.WriteString(StyleYellow.Render(line) + "\n")
	fmt.Fprintf(&b, "%s %d\n", Dim("Пропущено:"), len(r.Skipped))
	for _, s := range r.Skipped {
		b.WriteString("  " + Dim(s) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatButtons numbers keyboard buttons so they can be picked by digit.
func FormatButtons(rows [][]string) string {
	var lines []string
	n := 0
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, label := range row {
			n++
			cells[i] = StylePurple.Render(fmt.Sprintf("[%d]", n)) + " " + label
		}
		lines = append(lines, strings.Join(cells, "   "))
	}
	return strings.Join(lines, "\n")
}
