package tray

import "github.com/google/uuid"

// Action is what an interactive menu entry does.
type Action int

// Menu actions.
const (
	ActionSettings Action = iota
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionSettings:
		return "settings"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// MenuID is the opaque identifier delivered when a menu entry is clicked.
type MenuID string

// NewMenuID returns a fresh identifier.
func NewMenuID() MenuID {
	return MenuID(uuid.NewString())
}

// MenuEvent reports a click on the entry with ID.
type MenuEvent struct {
	ID MenuID
}

// IDMap resolves menu identifiers to actions. It is built once per menu and
// never modified afterwards.
type IDMap map[MenuID]Action

// Lookup returns the action for id.
func (m IDMap) Lookup(id MenuID) (Action, bool) {
	a, ok := m[id]
	return a, ok
}
