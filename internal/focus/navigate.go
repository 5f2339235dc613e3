package focus

import (
	"github.com/atomicstack/focustree/internal/widget"
)

// Direction selects Tab (Forward) or Shift+Tab (Backward) order.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// FindNextFocusable returns the next node after anchor, in tree order, that
// accepts focus and is interactive. Forward order is preorder; backward order
// is its exact reverse (children right to left, then the node).
//
// The search continues from the anchor's position, walking up one level at a
// time, then wraps to the start (or end) of the tree and stops at the anchor's
// own position, where the anchor itself is a candidate. A stale or zero anchor
// searches the whole tree. Subtrees without focusable descendants are never
// entered.
func FindNextFocusable(t *widget.Tree, anchor widget.ID, dir Direction) (widget.ID, bool) {
	s := search{tree: t, anchor: anchor}
	return s.run(dir)
}

type search struct {
	tree   *widget.Tree
	anchor widget.ID
	// visit observes every node considered as a candidate.
	visit func(widget.ID)
}

func (s *search) run(dir Direction) (widget.ID, bool) {
	root := s.tree.Root()
	if !s.tree.Contains(s.anchor) {
		s.anchor = widget.ID{}
		if dir == Backward {
			return s.last(root)
		}
		return s.first(root)
	}
	if dir == Backward {
		if id, ok := s.afterBackward(); ok {
			return id, true
		}
		id, _, ok := s.wrapBackward(root)
		return id, ok
	}
	if id, ok := s.afterForward(); ok {
		return id, true
	}
	id, _, ok := s.wrapForward(root)
	return id, ok
}

// afterForward searches everything following the anchor in preorder: the
// rest of its subtree, then its following siblings, then the same one level
// up.
func (s *search) afterForward() (widget.ID, bool) {
	if n, ok := s.tree.Node(s.anchor); ok && n.DescendantIsFocusable() {
		for i := 0; i < n.ChildCount(); i++ {
			if id, ok := s.first(n.Child(i)); ok {
				return id, true
			}
		}
	}
	cur := s.anchor
	for parent := s.tree.Parent(cur); !parent.IsZero(); cur, parent = parent, s.tree.Parent(parent) {
		p, _ := s.tree.Node(parent)
		after := false
		for i := 0; i < p.ChildCount(); i++ {
			c := p.Child(i)
			if c == cur {
				after = true
				continue
			}
			if !after {
				continue
			}
			if id, ok := s.first(c); ok {
				return id, true
			}
		}
	}
	return widget.ID{}, false
}

// afterBackward searches everything following the anchor in reverse
// preorder: preceding siblings right to left, then the parent, repeated
// towards the root. The anchor's own subtree precedes it in this order.
func (s *search) afterBackward() (widget.ID, bool) {
	cur := s.anchor
	for parent := s.tree.Parent(cur); !parent.IsZero(); cur, parent = parent, s.tree.Parent(parent) {
		p, _ := s.tree.Node(parent)
		before := false
		for i := p.ChildCount() - 1; i >= 0; i-- {
			c := p.Child(i)
			if c == cur {
				before = true
				continue
			}
			if !before {
				continue
			}
			if id, ok := s.last(c); ok {
				return id, true
			}
		}
		if s.candidate(parent) {
			return parent, true
		}
	}
	return widget.ID{}, false
}

// wrapForward searches in preorder from id, stopping once the anchor has been
// considered. The second result reports that the anchor was reached.
func (s *search) wrapForward(id widget.ID) (widget.ID, bool, bool) {
	if s.candidate(id) {
		return id, true, true
	}
	if id == s.anchor {
		return widget.ID{}, true, false
	}
	n, ok := s.tree.Node(id)
	if !ok || !s.enterable(n) {
		return widget.ID{}, false, false
	}
	for i := 0; i < n.ChildCount(); i++ {
		if found, stop, ok := s.wrapForward(n.Child(i)); stop {
			return found, true, ok
		}
	}
	return widget.ID{}, false, false
}

// wrapBackward searches in reverse preorder from id, stopping once the anchor
// has been considered.
func (s *search) wrapBackward(id widget.ID) (widget.ID, bool, bool) {
	n, ok := s.tree.Node(id)
	if !ok {
		return widget.ID{}, false, false
	}
	if id == s.anchor {
		if found, ok := s.lastInChildren(n); ok {
			return found, true, true
		}
		if s.candidate(id) {
			return id, true, true
		}
		return widget.ID{}, true, false
	}
	if s.enterable(n) {
		for i := n.ChildCount() - 1; i >= 0; i-- {
			if found, stop, ok := s.wrapBackward(n.Child(i)); stop {
				return found, true, ok
			}
		}
	}
	if s.candidate(id) {
		return id, true, true
	}
	return widget.ID{}, false, false
}

// first returns the first candidate in id's subtree in preorder.
func (s *search) first(id widget.ID) (widget.ID, bool) {
	if s.candidate(id) {
		return id, true
	}
	n, ok := s.tree.Node(id)
	if !ok || !s.enterable(n) {
		return widget.ID{}, false
	}
	for i := 0; i < n.ChildCount(); i++ {
		if found, ok := s.first(n.Child(i)); ok {
			return found, true
		}
	}
	return widget.ID{}, false
}

// last returns the first candidate in id's subtree in reverse preorder.
func (s *search) last(id widget.ID) (widget.ID, bool) {
	n, ok := s.tree.Node(id)
	if !ok {
		return widget.ID{}, false
	}
	if found, ok := s.lastInChildren(n); ok {
		return found, true
	}
	if s.candidate(id) {
		return id, true
	}
	return widget.ID{}, false
}

func (s *search) lastInChildren(n *widget.Node) (widget.ID, bool) {
	if !s.enterable(n) {
		return widget.ID{}, false
	}
	for i := n.ChildCount() - 1; i >= 0; i-- {
		if found, ok := s.last(n.Child(i)); ok {
			return found, true
		}
	}
	return widget.ID{}, false
}

// enterable reports whether n's children may contain a candidate. Disabled
// and stashed nodes make their whole subtree non-interactive.
func (s *search) enterable(n *widget.Node) bool {
	return n.DescendantIsFocusable() && !n.Disabled() && !n.Stashed()
}

func (s *search) candidate(id widget.ID) bool {
	if s.visit != nil {
		s.visit(id)
	}
	n, ok := s.tree.Node(id)
	if !ok || !n.AcceptsFocus() {
		return false
	}
	return s.tree.Interactive(id)
}
