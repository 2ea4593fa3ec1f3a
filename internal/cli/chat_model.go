package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/alexanderramin/eventpilot/internal/cli/formatter"
	"github.com/alexanderramin/eventpilot/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const chatConversationID = "terminal"

type chatLine struct {
	fromUser bool
	text     string
}

// chatModel is the bubbletea front end of a Conversation. Buttons of the
// last reply can be picked by typing their number.
type chatModel struct {
	ctx      context.Context
	conv     *service.Conversation
	convID   string
	input    textinput.Model
	lines    []chatLine
	buttons  [][]string
	quitting bool
}

func newChatModel(ctx context.Context, conv *service.Conversation, convID, userName string) chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 4000
	ti.Placeholder = "сообщение или номер кнопки"

	m := chatModel{ctx: ctx, conv: conv, convID: convID, input: ti}
	m.receive(conv.Start(ctx, convID, userName))
	return m
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 3
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			if text == "/quit" || text == "/exit" {
				m.quitting = true
				return m, tea.Quit
			}
			text = m.buttonByNumber(text)
			m.lines = append(m.lines, chatLine{fromUser: true, text: text})
			m.receive(m.conv.Handle(m.ctx, m.convID, text))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) receive(r service.Reply) {
	m.lines = append(m.lines, chatLine{text: r.Text})
	if len(r.Buttons) > 0 {
		m.buttons = r.Buttons
	}
}

// buttonByNumber maps "3" to the third button of the current keyboard.
func (m chatModel) buttonByNumber(text string) string {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return text
	}
	for _, row := range m.buttons {
		if n <= len(row) {
			return row[n-1]
		}
		n -= len(row)
	}
	return text
}

func (m chatModel) View() string {
	if m.quitting {
		return formatter.Dim("До встречи!") + "\n"
	}

	var b strings.Builder
	for _, l := range m.lines {
		if l.fromUser {
			b.WriteString(formatter.StyleBlue.Render("› "+l.text) + "\n\n")
			continue
		}
		b.WriteString(formatter.StyleFg.Render(l.text) + "\n\n")
	}
	if len(m.buttons) > 0 {
		b.WriteString(formatter.FormatButtons(m.buttons) + "\n\n")
	}
	b.WriteString(formatter.StylePurple.Render("eventpilot") + " " + formatter.Dim("❯") + " " + m.input.View())
	return b.String()
}
