package intelligence

import "github.com/alexanderramin/eventpilot/internal/domain"

// IntentName enumerates the edits the engine recognises.
type IntentName string

const (
	IntentHostTimeChange IntentName = "host_time_change"
	IntentContractorAdd  IntentName = "contractor_add"
	IntentDeadlines      IntentName = "deadlines"
)

// Intent is the structured reading of one instruction.
type Intent struct {
	Name IntentName
	// Value carries the intent argument: the new time for a host change,
	// the contractor description for an addition.
	Value string
}

// Matcher inspects an instruction and reports the intent it expresses.
// Matchers are pure and tried in priority order.
type Matcher func(text string) (Intent, bool)

// EditResult is the outcome of applying one instruction to a project.
type EditResult struct {
	Reply                string
	Updated              bool
	RequiresConfirmation bool
	Pending              *domain.PendingChange
	Summary              string
}

// User-facing replies.
const (
	ReplyNoAction        = "Не нашёл конкретного действия, добавил заметку в историю."
	ReplyDeadlines       = "Зафиксировал дедлайны и изменения."
	ReplyConfirmHint     = "Ответьте: ✅ Да или ⛔️ Отмена"
	ReplyHostNotObject   = "Не могу поменять время ведущего: в программе «ведущий» записан текстом, а не блоком. Добавил заметку в историю."
	valueNotSet          = "не задано"
	defaultChangeSummary = "обновление"
)
