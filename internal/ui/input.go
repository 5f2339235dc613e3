package ui

import (
	"github.com/atomicstack/focustree/internal/focus"
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Clear   key.Binding
	Find    key.Binding
	Access  key.Binding
	Disable key.Binding
	Stash   key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unfocus")),
		Find:    key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
		Access:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "a11y")),
		Disable: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "disable")),
		Stash:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "hide group")),
		Reload:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Clear, k.Find, k.Access, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Clear},
		{k.Find, k.Access, k.Reload},
		{k.Disable, k.Stash, k.Quit},
	}
}

// handleKeyMsg delivers a key in passes: the finder when open, the key
// target's own handler, Tab navigation, and finally the global bindings.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.finder != nil {
		return m.handleFinderKey(keyMsg)
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	m.errMsg = ""
	m.clearInfo()

	target := m.store.KeyTarget(m.tree)
	if handled, cmd := m.deliverKey(target, keyMsg); handled {
		return cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Next):
		m.store.HandleTab(m.tree, focus.Forward)
	case key.Matches(keyMsg, m.keys.Prev):
		m.store.HandleTab(m.tree, focus.Backward)
	case key.Matches(keyMsg, m.keys.Clear):
		m.store.ClearFocus()
	case key.Matches(keyMsg, m.keys.Find):
		return m.openFinder()
	case key.Matches(keyMsg, m.keys.Access):
		m.showAccess = !m.showAccess
		events.UI.Toggle("accessibility", "", m.showAccess)
	case key.Matches(keyMsg, m.keys.Disable):
		m.toggleDisabled()
	case key.Matches(keyMsg, m.keys.Stash):
		m.toggleStashed()
	case key.Matches(keyMsg, m.keys.Reload):
		if m.layoutPath == "" {
			m.setInfo("No layout file to reload.")
			return nil
		}
		return reloadLayout(m.layoutPath)
	}
	return nil
}

func (m *Model) deliverKey(target widget.ID, msg tea.KeyMsg) (bool, tea.Cmd) {
	n, ok := m.tree.Node(target)
	if !ok {
		return false, nil
	}
	h, ok := n.Widget().(widget.KeyHandler)
	if !ok {
		events.UI.Key(msg.String(), target.String(), false)
		return false, nil
	}
	handled, cmd := h.HandleKey(target, msg, m.store)
	events.UI.Key(msg.String(), target.String(), handled)
	return handled, cmd
}
