package widget

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleID is returned when an ID no longer names a live node.
	ErrStaleID = errors.New("widget: stale id")
	// ErrRoot is returned for operations the root node does not support.
	ErrRoot = errors.New("widget: operation not permitted on root")
	// ErrNotChild is returned when a reorder does not list the parent's children.
	ErrNotChild = errors.New("widget: not a child of parent")
)

const rootName = "root"

// Node is a tree entry together with its focus capability flags.
type Node struct {
	id       ID
	parent   ID
	children []ID
	name     string
	widget   Widget

	acceptsFocus          bool
	acceptsTextInput      bool
	descendantIsFocusable bool

	disabled bool
	stashed  bool
}

func (n *Node) ID() ID                      { return n.id }
func (n *Node) Parent() ID                  { return n.parent }
func (n *Node) Name() string                { return n.name }
func (n *Node) Widget() Widget              { return n.widget }
func (n *Node) AcceptsFocus() bool          { return n.acceptsFocus }
func (n *Node) AcceptsTextInput() bool      { return n.acceptsTextInput }
func (n *Node) DescendantIsFocusable() bool { return n.descendantIsFocusable }
func (n *Node) Disabled() bool              { return n.disabled }
func (n *Node) Stashed() bool               { return n.stashed }

// Children returns a copy of the node's children in order.
func (n *Node) Children() []ID {
	out := make([]ID, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children without copying.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child.
func (n *Node) Child(i int) ID {
	return n.children[i]
}

type slot struct {
	gen  uint32
	node *Node
}

// Tree is an arena of nodes addressed by ID. It is not safe for concurrent
// use; the UI event loop owns it.
type Tree struct {
	slots []slot
	free  []uint32
	root  ID
	size  int
}

// NewTree creates a tree whose root holds the given widget.
func NewTree(root Widget) *Tree {
	t := &Tree{}
	t.root = t.alloc(ID{}, rootName, root)
	return t
}

// Root returns the root node ID.
func (t *Tree) Root() ID {
	return t.root
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return t.size
}

// Node looks up a live node.
func (t *Tree) Node(id ID) (*Node, bool) {
	n := t.lookup(id)
	return n, n != nil
}

// Contains reports whether id names a live node.
func (t *Tree) Contains(id ID) bool {
	return t.lookup(id) != nil
}

// Parent returns the parent of id, or the zero ID for the root and stale ids.
func (t *Tree) Parent(id ID) ID {
	if n := t.lookup(id); n != nil {
		return n.parent
	}
	return ID{}
}

// Children returns a copy of id's children, or nil for stale ids.
func (t *Tree) Children(id ID) []ID {
	if n := t.lookup(id); n != nil {
		return n.Children()
	}
	return nil
}

// ChildByName finds the direct child of parent carrying name.
func (t *Tree) ChildByName(parent ID, name string) (ID, bool) {
	n := t.lookup(parent)
	if n == nil {
		return ID{}, false
	}
	for _, c := range n.children {
		if child := t.lookup(c); child != nil && child.name == name {
			return c, true
		}
	}
	return ID{}, false
}

// Insert appends a new node under parent and returns its ID. The widget's
// capabilities are sampled here and never queried again.
func (t *Tree) Insert(parent ID, name string, w Widget) (ID, error) {
	p := t.lookup(parent)
	if p == nil {
		return ID{}, fmt.Errorf("insert %q under %s: %w", name, parent, ErrStaleID)
	}
	id := t.alloc(parent, name, w)
	p.children = append(p.children, id)
	t.refreshFocusable(parent)
	return id, nil
}

// Remove deletes id and its whole subtree. Every removed ID becomes stale.
func (t *Tree) Remove(id ID) error {
	n := t.lookup(id)
	if n == nil {
		return fmt.Errorf("remove %s: %w", id, ErrStaleID)
	}
	if id == t.root {
		return fmt.Errorf("remove %s: %w", id, ErrRoot)
	}
	parent := t.lookup(n.parent)
	for i, c := range parent.children {
		if c == id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	t.release(n)
	t.refreshFocusable(n.parent)
	return nil
}

// SetDisabled marks a node (and therefore its subtree) as non-interactive.
func (t *Tree) SetDisabled(id ID, disabled bool) error {
	n := t.lookup(id)
	if n == nil {
		return fmt.Errorf("set disabled on %s: %w", id, ErrStaleID)
	}
	n.disabled = disabled
	return nil
}

// SetStashed hides a node (and therefore its subtree).
func (t *Tree) SetStashed(id ID, stashed bool) error {
	n := t.lookup(id)
	if n == nil {
		return fmt.Errorf("set stashed on %s: %w", id, ErrStaleID)
	}
	n.stashed = stashed
	return nil
}

// Reorder replaces the child order of parent. order must be a permutation of
// the current children.
func (t *Tree) Reorder(parent ID, order []ID) error {
	p := t.lookup(parent)
	if p == nil {
		return fmt.Errorf("reorder %s: %w", parent, ErrStaleID)
	}
	if len(order) != len(p.children) {
		return fmt.Errorf("reorder %s: got %d ids for %d children: %w", parent, len(order), len(p.children), ErrNotChild)
	}
	seen := make(map[ID]struct{}, len(order))
	for _, c := range order {
		child := t.lookup(c)
		if child == nil || child.parent != parent {
			return fmt.Errorf("reorder %s: %s: %w", parent, c, ErrNotChild)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("reorder %s: duplicate %s: %w", parent, c, ErrNotChild)
		}
		seen[c] = struct{}{}
	}
	copy(p.children, order)
	return nil
}

// Interactive reports whether id is live and neither it nor any ancestor is
// disabled or stashed. It is computed on every call.
func (t *Tree) Interactive(id ID) bool {
	n := t.lookup(id)
	if n == nil {
		return false
	}
	for n != nil {
		if n.disabled || n.stashed {
			return false
		}
		n = t.lookup(n.parent)
	}
	return true
}

// Path returns the IDs from the root down to id inclusive, or nil when id is
// zero or stale.
func (t *Tree) Path(id ID) []ID {
	n := t.lookup(id)
	if n == nil {
		return nil
	}
	var rev []ID
	for n != nil {
		rev = append(rev, n.id)
		n = t.lookup(n.parent)
	}
	path := make([]ID, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}

// InSubtree reports whether id is root itself or one of its descendants.
func (t *Tree) InSubtree(root, id ID) bool {
	if t.lookup(root) == nil {
		return false
	}
	for n := t.lookup(id); n != nil; n = t.lookup(n.parent) {
		if n.id == root {
			return true
		}
	}
	return false
}

// Walk visits nodes in preorder. Returning false from fn skips the node's
// children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(id ID, depth int, fn func(*Node, int) bool) {
	n := t.lookup(id)
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		t.walk(c, depth+1, fn)
	}
}

func (t *Tree) lookup(id ID) *Node {
	if id.IsZero() || int(id.index) >= len(t.slots) {
		return nil
	}
	s := t.slots[id.index]
	if s.gen != id.gen {
		return nil
	}
	return s.node
}

func (t *Tree) alloc(parent ID, name string, w Widget) ID {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot{gen: 1})
	}
	id := ID{index: idx, gen: t.slots[idx].gen}
	node := &Node{id: id, parent: parent, name: name, widget: w}
	if w != nil {
		node.acceptsFocus = w.AcceptsFocus()
		node.acceptsTextInput = w.AcceptsTextInput()
	}
	t.slots[idx].node = node
	t.size++
	return id
}

func (t *Tree) release(n *Node) {
	for _, c := range n.children {
		if child := t.lookup(c); child != nil {
			t.release(child)
		}
	}
	s := &t.slots[n.id.index]
	s.node = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	t.free = append(t.free, n.id.index)
	t.size--
}

// refreshFocusable recomputes descendantIsFocusable from id up towards the
// root, stopping at the first ancestor whose value did not change.
func (t *Tree) refreshFocusable(id ID) {
	for n := t.lookup(id); n != nil; n = t.lookup(n.parent) {
		next := false
		for _, c := range n.children {
			if child := t.lookup(c); child != nil && (child.acceptsFocus || child.descendantIsFocusable) {
				next = true
				break
			}
		}
		if next == n.descendantIsFocusable {
			return
		}
		n.descendantIsFocusable = next
	}
}
