package domain

// HistoryAction classifies an audit-log record.
type HistoryAction string

const (
	ActionConfirmChange  HistoryAction = "confirm_change"
	ActionFreeformUpdate HistoryAction = "freeform_update"
	ActionNote           HistoryAction = "note"
)

// Placeholders used when a value cannot be inferred from user text.
const (
	UntitledProject   = "Без названия"
	UnnamedContractor = "без названия"
)
