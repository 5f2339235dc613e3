package ui

import (
	"strconv"

	"github.com/atomicstack/focustree/internal/access"
	"github.com/atomicstack/focustree/internal/layout"
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg turns a left press into the pointer trigger. Presses that
// miss every row land on the root.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if mouse.Action != tea.MouseActionPress {
		return nil
	}
	if m.finder != nil {
		m.closeFinder(false)
	}
	if entry, ok := m.accessEntryAtRow(mouse.Y); ok {
		kind := access.Focus
		if mouse.Button == tea.MouseButtonRight {
			kind = access.Blur
		}
		access.Apply(m.store, access.Action{Kind: kind, Target: entry.ID})
		return nil
	}
	if mouse.Button != tea.MouseButtonLeft {
		return nil
	}
	id, hit := m.nodeAtRow(mouse.Y)
	if !hit {
		id = m.tree.Root()
	}
	events.UI.Mouse(mouse.X, mouse.Y, id.String())
	return m.pointerDown(id)
}

// pointerDown runs the generic pointer trigger, then the node's own handler.
func (m *Model) pointerDown(id widget.ID) tea.Cmd {
	m.store.PointerDown(m.tree, id)
	if !m.tree.Interactive(id) {
		return nil
	}
	n, ok := m.tree.Node(id)
	if !ok {
		return nil
	}
	if h, ok := n.Widget().(widget.PointerHandler); ok {
		return h.OnPointerDown(id, m.store)
	}
	return nil
}

// toggleDisabled flips the disabled flag of the anchor node.
func (m *Model) toggleDisabled() {
	anchor := m.store.Anchor()
	n, ok := m.tree.Node(anchor)
	if !ok || anchor == m.tree.Root() {
		m.setInfo("Nothing to disable.")
		return
	}
	disabled := !n.Disabled()
	if err := m.tree.SetDisabled(anchor, disabled); err != nil {
		m.errMsg = err.Error()
		return
	}
	events.UI.Toggle("disabled", anchor.String(), disabled)
}

// toggleStashed hides or reveals the group holding the anchor.
func (m *Model) toggleStashed() {
	anchor := m.store.Anchor()
	parent := m.tree.Parent(anchor)
	n, ok := m.tree.Node(parent)
	if !ok || parent == m.tree.Root() {
		m.setInfo("No group to hide.")
		return
	}
	stashed := !n.Stashed()
	if err := m.tree.SetStashed(parent, stashed); err != nil {
		m.errMsg = err.Error()
		return
	}
	events.UI.Toggle("stashed", parent.String(), stashed)
}

// formValues snapshots every input and checkbox, keyed by node path.
func (m *Model) formValues() map[string]string {
	values := make(map[string]string)
	m.tree.Walk(func(n *widget.Node, _ int) bool {
		switch w := n.Widget().(type) {
		case *widget.TextInput:
			values[layout.PathOf(m.tree, n.ID())] = w.Value()
		case *widget.Checkbox:
			values[layout.PathOf(m.tree, n.ID())] = strconv.FormatBool(w.Checked)
		}
		return true
	})
	return values
}
