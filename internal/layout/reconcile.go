package layout

import (
	"fmt"

	"github.com/atomicstack/focustree/internal/widget"
)

// Stats counts what a reconcile changed.
type Stats struct {
	Inserted int
	Removed  int
	Updated  int
}

// Changed reports whether the tree was touched at all.
func (s Stats) Changed() bool {
	return s.Inserted+s.Removed+s.Updated > 0
}

// Reconcile mutates t to match spec. Nodes are matched to existing children by
// name and kind; matched nodes keep their IDs and widget state, so focus and
// typed text survive a reload. Unmatched children are removed, new ones
// inserted, and each parent's children reordered to follow spec.
//
// The layout is validated first; an invalid layout leaves the tree untouched.
func Reconcile(t *widget.Tree, spec Spec, actions Actions) (Stats, error) {
	if err := spec.Validate(actions); err != nil {
		return Stats{}, err
	}
	var st Stats
	if root, ok := t.Node(t.Root()); ok && widget.LabelOf(root.Widget()) != spec.Title {
		if r, ok := root.Widget().(widget.Relabeler); ok {
			r.SetLabel(spec.Title)
			st.Updated++
		}
	}
	if err := reconcileChildren(t, t.Root(), spec.Nodes, actions, &st); err != nil {
		return st, err
	}
	return st, nil
}

func reconcileChildren(t *widget.Tree, parent widget.ID, specs []NodeSpec, actions Actions, st *Stats) error {
	wanted := make(map[string]NodeSpec, len(specs))
	for _, s := range specs {
		wanted[s.Name] = s
	}
	for _, c := range t.Children(parent) {
		n, _ := t.Node(c)
		s, ok := wanted[n.Name()]
		if ok && widget.RoleOf(n.Widget()) == roleForKind(s.Kind) {
			continue
		}
		if err := t.Remove(c); err != nil {
			return fmt.Errorf("reconcile: %w", err)
		}
		st.Removed++
	}

	order := make([]widget.ID, 0, len(specs))
	for _, s := range specs {
		id, ok := t.ChildByName(parent, s.Name)
		if ok {
			changed, err := updateNode(t, id, s)
			if err != nil {
				return err
			}
			if changed {
				st.Updated++
			}
		} else {
			w, err := NewWidget(s, actions)
			if err != nil {
				return err
			}
			id, err = t.Insert(parent, s.Name, w)
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}
			if err := applyFlags(t, id, s); err != nil {
				return err
			}
			st.Inserted++
		}
		order = append(order, id)
		if err := reconcileChildren(t, id, s.Nodes, actions, st); err != nil {
			return err
		}
	}
	if err := t.Reorder(parent, order); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	return nil
}

// updateNode brings a matched node's label and flags in line with s. Widget
// state the user controls (checkbox value, typed text) is left alone.
func updateNode(t *widget.Tree, id widget.ID, s NodeSpec) (bool, error) {
	n, ok := t.Node(id)
	if !ok {
		return false, fmt.Errorf("reconcile: %w", widget.ErrStaleID)
	}
	changed := false
	if widget.LabelOf(n.Widget()) != s.Label {
		if r, ok := n.Widget().(widget.Relabeler); ok {
			r.SetLabel(s.Label)
			changed = true
		}
	}
	if in, ok := n.Widget().(*widget.TextInput); ok {
		if in.Sticky != s.Sticky {
			in.Sticky = s.Sticky
			changed = true
		}
		if in.Input.Placeholder != s.Placeholder {
			in.Input.Placeholder = s.Placeholder
			changed = true
		}
	}
	if n.Disabled() != s.Disabled || n.Stashed() != s.Hidden {
		if err := applyFlags(t, id, s); err != nil {
			return false, err
		}
		changed = true
	}
	return changed, nil
}

func applyFlags(t *widget.Tree, id widget.ID, s NodeSpec) error {
	if err := t.SetDisabled(id, s.Disabled); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	if err := t.SetStashed(id, s.Hidden); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	return nil
}
