package ui

import (
	"github.com/atomicstack/focustree/internal/focus"
	"github.com/atomicstack/focustree/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

// composer is implemented by widgets that own a text editing session.
type composer interface {
	BeginComposition() tea.Cmd
	EndComposition()
}

// updater receives messages that are not keys, such as cursor blinks.
type updater interface {
	Update(tea.Msg) tea.Cmd
}

// imeBridge is the terminal's input-method service: a session is the
// textinput of the node holding it being focused.
type imeBridge struct {
	tree   *widget.Tree
	active widget.ID
	cmds   []tea.Cmd
}

var _ focus.IMEService = (*imeBridge)(nil)

func (b *imeBridge) BeginIMESession(id widget.ID) {
	b.active = id
	if c, ok := b.composer(id); ok {
		if cmd := c.BeginComposition(); cmd != nil {
			b.cmds = append(b.cmds, cmd)
		}
	}
}

func (b *imeBridge) EndIMESession() {
	if c, ok := b.composer(b.active); ok {
		c.EndComposition()
	}
	b.active = widget.ID{}
}

// Active returns the node whose session is open, or the zero ID.
func (b *imeBridge) Active() widget.ID {
	return b.active
}

func (b *imeBridge) composer(id widget.ID) (composer, bool) {
	n, ok := b.tree.Node(id)
	if !ok {
		return nil, false
	}
	c, ok := n.Widget().(composer)
	return c, ok
}

// forward passes a non-key message to the widget holding the session.
func (b *imeBridge) forward(msg tea.Msg) tea.Cmd {
	n, ok := b.tree.Node(b.active)
	if !ok {
		return nil
	}
	if u, ok := n.Widget().(updater); ok {
		return u.Update(msg)
	}
	return nil
}

func (b *imeBridge) drain() []tea.Cmd {
	cmds := b.cmds
	b.cmds = nil
	return cmds
}
