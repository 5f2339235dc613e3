package widget

import tea "github.com/charmbracelet/bubbletea"

// Widget is the capability interface every node exposes. Both answers are
// read once when the node is inserted and stay fixed for its lifetime.
type Widget interface {
	AcceptsFocus() bool
	AcceptsTextInput() bool
}

// Requester is the narrow write access node logic has to focus: it can only
// stage intents, which are applied by the next commit.
type Requester interface {
	RequestFocus(id ID)
	ClearFocus()
	ResignFocus(id ID)
}

// FocusHandler receives "focus changed" notifications.
type FocusHandler interface {
	OnFocusChanged(focused bool)
}

// DescendantFocusHandler is notified when the node enters or leaves the
// focused path.
type DescendantFocusHandler interface {
	OnDescendantFocusChanged(within bool)
}

// IMEHandler receives the synthetic "IME ended" event when focus moves away
// from a text input node. The handler may stage a new intent through req.
type IMEHandler interface {
	OnIMEEnded(self ID, req Requester)
}

// PointerHandler is called after the generic pointer-press trigger ran for
// the pressed node.
type PointerHandler interface {
	OnPointerDown(self ID, req Requester) tea.Cmd
}

// KeyHandler consumes keyboard input delivered to the focused (or fallback)
// node. Returning false lets the key continue to the next delivery pass.
type KeyHandler interface {
	HandleKey(self ID, msg tea.KeyMsg, req Requester) (bool, tea.Cmd)
}

// Describer exposes what a node is to renderers and accessibility builders.
type Describer interface {
	Role() string
	Label() string
}

// Relabeler lets layout reloads update a node's label in place.
type Relabeler interface {
	SetLabel(label string)
}

// Viewer renders a node's content without focus styling.
type Viewer interface {
	View() string
}

// RoleOf returns the node's role, or "widget" when it does not describe itself.
func RoleOf(w Widget) string {
	if d, ok := w.(Describer); ok {
		return d.Role()
	}
	return "widget"
}

// LabelOf returns the node's label, or "" when it does not describe itself.
func LabelOf(w Widget) string {
	if d, ok := w.(Describer); ok {
		return d.Label()
	}
	return ""
}
