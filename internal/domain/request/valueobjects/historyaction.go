package valueobjects

import "fmt"

// HistoryAction classifies an audit trail entry.
type HistoryAction string

const (
	ActionCreated           HistoryAction = "created"
	ActionRegistered        HistoryAction = "registered"
	ActionSentForResolution HistoryAction = "sent_for_resolution"
	ActionResolved          HistoryAction = "resolved"
	ActionAssigned          HistoryAction = "assigned"
	ActionStatusChanged     HistoryAction = "status_changed"
	ActionStepAdded         HistoryAction = "step_added"
	ActionFileAdded         HistoryAction = "file_added"
	ActionDone              HistoryAction = "done"
	ActionOther             HistoryAction = "other"
)

var validHistoryActions = map[HistoryAction]bool{
	ActionCreated:           true,
	ActionRegistered:        true,
	ActionSentForResolution: true,
	ActionResolved:          true,
	ActionAssigned:          true,
	ActionStatusChanged:     true,
	ActionStepAdded:         true,
	ActionFileAdded:         true,
	ActionDone:              true,
	ActionOther:             true,
}

// publicActions may be shown to the submitting company. Work steps, files
// and free-form entries stay internal.
var publicActions = map[HistoryAction]bool{
	ActionCreated:           true,
	ActionRegistered:        true,
	ActionSentForResolution: true,
	ActionResolved:          true,
	ActionAssigned:          true,
	ActionStatusChanged:     true,
	ActionDone:              true,
}

func (a HistoryAction) String() string {
	return string(a)
}

func (a HistoryAction) IsValid() bool {
	return validHistoryActions[a]
}

// IsPublic reports whether the entry is safe for the tracking page.
func (a HistoryAction) IsPublic() bool {
	return publicActions[a]
}

// PublicActions returns the tracking-safe subset in a stable order.
func PublicActions() []HistoryAction {
	return []HistoryAction{
		ActionCreated,
		ActionRegistered,
		ActionSentForResolution,
		ActionResolved,
		ActionAssigned,
		ActionStatusChanged,
		ActionDone,
	}
}

func NewHistoryAction(s string) (HistoryAction, error) {
	a := HistoryAction(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid history action: %s", s)
	}
	return a, nil
}
