// Package access builds the accessibility view of the widget tree and maps
// assistive-technology actions onto focus triggers.
package access

import (
	"strings"

	"github.com/atomicstack/focustree/internal/focus"
	"github.com/atomicstack/focustree/internal/format/table"
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
)

// Entry is one node as assistive technology sees it.
type Entry struct {
	ID        widget.ID
	Depth     int
	Role      string
	Name      string
	Label     string
	Focused   bool
	Focusable bool
	Disabled  bool
	Hidden    bool
}

// State renders the node's flags as a short word list.
func (e Entry) State() string {
	var parts []string
	if e.Focused {
		parts = append(parts, "focused")
	}
	if e.Focusable {
		parts = append(parts, "focusable")
	}
	if e.Disabled {
		parts = append(parts, "disabled")
	}
	if e.Hidden {
		parts = append(parts, "hidden")
	}
	return strings.Join(parts, ",")
}

// Snapshot is the accessibility tree for one committed state.
type Snapshot struct {
	Focused widget.ID
	Entries []Entry
}

// Build reads the committed focused id once and walks the tree. Hidden
// subtrees are listed but not descended into.
func Build(t *widget.Tree, st focus.State) Snapshot {
	snap := Snapshot{Focused: st.Focused}
	t.Walk(func(n *widget.Node, depth int) bool {
		snap.Entries = append(snap.Entries, Entry{
			ID:        n.ID(),
			Depth:     depth,
			Role:      widget.RoleOf(n.Widget()),
			Name:      n.Name(),
			Label:     widget.LabelOf(n.Widget()),
			Focused:   n.ID() == st.Focused,
			Focusable: n.AcceptsFocus(),
			Disabled:  !t.Interactive(n.ID()) && !n.Stashed(),
			Hidden:    n.Stashed(),
		})
		return !n.Stashed()
	})
	events.UI.Accessibility(st.Focused.String(), len(snap.Entries))
	return snap
}

// FocusedEntry returns the entry marked focused, if any.
func (s Snapshot) FocusedEntry() (Entry, bool) {
	for _, e := range s.Entries {
		if e.Focused {
			return e, true
		}
	}
	return Entry{}, false
}

// Lines formats the snapshot as an aligned table with a header row.
func (s Snapshot) Lines() []string {
	rows := make([][]string, 0, len(s.Entries)+1)
	rows = append(rows, []string{"ROLE", "NAME", "LABEL", "STATE"})
	for _, e := range s.Entries {
		rows = append(rows, []string{
			strings.Repeat("  ", e.Depth) + e.Role,
			e.Name,
			e.Label,
			e.State(),
		})
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft})
}

// ActionKind enumerates assistive-technology requests.
type ActionKind int

const (
	Focus ActionKind = iota
	Blur
)

func (k ActionKind) String() string {
	if k == Blur {
		return "blur"
	}
	return "focus"
}

// Action is a focus or blur request issued by assistive technology.
type Action struct {
	Kind   ActionKind
	Target widget.ID
}

// Apply stages the intent for an action. Focus maps to SetFocus and Blur to
// ClearFocus; validation is left to the commit.
func Apply(req widget.Requester, a Action) {
	events.UI.AccessAction(a.Kind.String(), a.Target.String())
	switch a.Kind {
	case Focus:
		req.RequestFocus(a.Target)
	case Blur:
		req.ClearFocus()
	}
}
