package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/eventpilot/internal/domain"
)

// Button labels of the chat keyboards.
const (
	ButtonNewEvent = "Новое событие"
	ButtonProjects = "Мои проекты"
	ButtonStats    = "Статистика"
	ButtonSettings = "Настройки"
	ButtonYes      = "✅ Да"
	ButtonCancel   = "⛔️ Отмена"
	ButtonBack     = "🔙 Главное меню"
)

const (
	textGreeting         = "Привет! Я EventPilot — помогу зафиксировать события и вести проекты.\nВыберите действие из меню ниже."
	textDescribeEvent    = "Опиши событие: дата, время, место, название, для кого, формат, бюджет (если есть).\nМожно в свободной форме."
	textNoProjects       = "У вас пока нет проектов. Создайте новое событие!"
	textUnknownProject   = "Не нашёл такой проект. Выберите из списка или вернитесь в меню."
	textProjectBroken    = "Проект не найден или повреждён."
	textLoadFailed       = "Не удалось загрузить проект."
	textPickFirst        = "Сначала выберите проект."
	textFormulateFirst   = "Сначала сформулируйте изменение или вернитесь в меню."
	textNothingToConfirm = "Нет изменений для подтверждения."
	TextCancelled        = "Отменил изменение."
	textAnswerYesNo      = "Ответьте ✅ Да или ⛔️ Отмена."
	textSettings         = "Настройки скоро появятся. Следите за обновлениями!"
	textUnknownRequest   = "Я пока не понимаю этот запрос. Пожалуйста, воспользуйтесь меню."
	textEmptyDescription = "Описание пустое. Расскажите о событии хотя бы в одном предложении."
	textSaveFailed       = "Не удалось сохранить проект. Попробуйте ещё раз."
	textEditHint         = "Добавить/изменить: напишите свободным текстом, например: “добавь подрядчика: типография «Иванов», срок 25.11” или “измени тайминг выхода ведущего на 21:00”."
	labelTitleRunes      = 32
	cardDeadlines        = 3
)

// Reply is what the conversation sends back: text plus keyboard rows.
type Reply struct {
	Text    string
	Buttons [][]string
}

func mainMenuButtons() [][]string {
	return [][]string{
		{ButtonNewEvent, ButtonProjects},
		{ButtonStats, ButtonSettings},
	}
}

func confirmationButtons() [][]string {
	return [][]string{{ButtonYes, ButtonCancel}, {ButtonBack}}
}

// projectButtons lays labels out two per row with a back button last.
func projectButtons(labels []string) [][]string {
	var rows [][]string
	for _, l := range labels {
		if len(rows) == 0 || len(rows[len(rows)-1]) >= 2 {
			rows = append(rows, []string{l})
			continue
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], l)
	}
	return append(rows, []string{ButtonBack})
}

func sortedLabels(m map[string]string) []string {
	labels := make([]string, 0, len(m))
	for l := range m {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// ProjectLabel is the menu label of a project: the title cut to 32 runes,
// followed by the date in parentheses when known.
func ProjectLabel(s domain.ProjectSummary) string {
	title := []rune(s.Title)
	if len(title) > labelTitleRunes {
		title = title[:labelTitleRunes]
	}
	if s.Date == "" {
		return string(title)
	}
	return fmt.Sprintf("%s (%s)", string(title), s.Date)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CreationSummary describes a freshly created project and the sections
// its description was filed under.
func CreationSummary(p *domain.Project) string {
	var filled []string
	for _, name := range p.Sections.Names() {
		if s, _ := p.Sections.Get(name); len(s.Notes) > 0 {
			filled = append(filled, name)
		}
	}
	if len(filled) == 0 {
		filled = p.Sections.Names()
	}
	return fmt.Sprintf("Создано: %s — %s %s — %s.\nПапки: %s.",
		p.Title,
		orDefault(p.Date, "дата не указана"),
		p.Time,
		orDefault(p.Place, "место не указано"),
		strings.Join(filled, ", "),
	)
}

// ProjectCard renders the project overview shown when a project is opened.
func ProjectCard(p *domain.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Проект: %s\n", p.Title)
	fmt.Fprintf(&b, "Дата: %s %s\n", orDefault(p.Date, "не указана"), p.Time)
	fmt.Fprintf(&b, "Место: %s\n", orDefault(p.Place, "не указано"))
	fmt.Fprintf(&b, "Аудитория: %s\n", orDefault(p.Audience, "не указана"))
	b.WriteString("Дедлайны:\n")
	deadlines := p.Deadlines()
	if len(deadlines) == 0 {
		b.WriteString("пока нет")
		return b.String()
	}
	if len(deadlines) > cardDeadlines {
		deadlines = deadlines[:cardDeadlines]
	}
	lines := make([]string, len(deadlines))
	for i, d := range deadlines {
		lines[i] = fmt.Sprintf("— %s — %s", d.DueDate.Format("2006-01-02"), d.Context)
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// StatsText renders the statistics message.
func StatsText(st *Stats) string {
	lines := []string{fmt.Sprintf("Всего проектов: %d.", st.TotalProjects)}
	if len(st.Upcoming) == 0 {
		lines = append(lines, "Ближайших дедлайнов нет.")
	}
	for _, d := range st.Upcoming {
		lines = append(lines, fmt.Sprintf("— %s — %s — %s", d.Due.Format("2006-01-02"), d.Title, d.Context))
	}
	return strings.Join(lines, "\n")
}

// UpdatedText is the reply after a change has been saved.
func UpdatedText(summary string) string {
	return fmt.Sprintf("Готово: обновил %s.", orDefault(summary, "проект"))
}
