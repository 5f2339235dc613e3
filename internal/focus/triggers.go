package focus

import (
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
)

// HandleTab runs navigation from the current anchor and stages the result.
// It reports whether a target was found; when none is, nothing is staged.
func (s *Store) HandleTab(t *widget.Tree, dir Direction) bool {
	anchor := s.state.Anchor
	next, ok := FindNextFocusable(t, anchor, dir)
	events.Focus.Tab(dir.String(), anchor.String(), next.String(), ok)
	if !ok {
		return false
	}
	s.RequestFocus(next)
	return true
}

// PointerDown records a press on id. The anchor follows the pointer even onto
// nodes that cannot take focus. Pressing outside the focused node's subtree
// stages a clear; the pressed node's own handler, running afterwards, may
// stage focus for itself instead.
func (s *Store) PointerDown(t *widget.Tree, id widget.ID) {
	s.state.Anchor = id
	focused := s.state.Focused
	cleared := focused.IsZero() || !t.InSubtree(focused, id)
	if cleared {
		s.ClearFocus()
	}
	events.Focus.Pointer(id.String(), focused.String(), cleared)
}
