package focus

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/atomicstack/focustree/internal/widget"
	"github.com/stretchr/testify/require"
)

// buildForm builds:
//
//	root
//	├── header (label)
//	├── account (group)
//	│   ├── user (text)
//	│   └── pass (text)
//	├── decor (group, nothing focusable)
//	│   └── art (label)
//	├── remember (focusable)
//	└── actions (group)
//	    ├── ok (focusable)
//	    └── cancel (focusable)
func buildForm(t *testing.T) *fixture {
	f := newFixture(t)
	f.add("root", "header", "")
	f.add("root", "account", "")
	f.add("account", "user", "t")
	f.add("account", "pass", "t")
	f.add("root", "decor", "")
	f.add("decor", "art", "")
	f.add("root", "remember", "f")
	f.add("root", "actions", "")
	f.add("actions", "ok", "f")
	f.add("actions", "cancel", "f")
	return f
}

func walkOrder(t *testing.T, f *fixture, start widget.ID, dir Direction, steps int) []string {
	t.Helper()
	var out []string
	anchor := start
	for i := 0; i < steps; i++ {
		next, ok := FindNextFocusable(f.tree, anchor, dir)
		require.True(t, ok)
		out = append(out, f.rec.name(next))
		anchor = next
	}
	return out
}

func TestFindNextFocusableForwardPreorder(t *testing.T) {
	f := buildForm(t)
	got := walkOrder(t, f, widget.ID{}, Forward, 6)
	require.Equal(t, []string{"user", "pass", "remember", "ok", "cancel", "user"}, got)
}

func TestFindNextFocusableBackwardIsReverseOfForward(t *testing.T) {
	f := buildForm(t)
	got := walkOrder(t, f, widget.ID{}, Backward, 6)
	require.Equal(t, []string{"cancel", "ok", "remember", "pass", "user", "cancel"}, got)
}

func TestFindNextFocusableCyclesThroughEveryNodeOnce(t *testing.T) {
	f := buildForm(t)
	focusable := []string{"user", "pass", "remember", "ok", "cancel"}
	for _, dir := range []Direction{Forward, Backward} {
		for _, start := range focusable {
			seen := map[string]int{}
			anchor := f.id(start)
			for i := 0; i < len(focusable); i++ {
				next, ok := FindNextFocusable(f.tree, anchor, dir)
				require.True(t, ok)
				seen[f.rec.name(next)]++
				anchor = next
			}
			require.Equal(t, f.id(start), anchor, "dir %s from %s", dir, start)
			require.Len(t, seen, len(focusable))
			for name, count := range seen {
				require.Equal(t, 1, count, "dir %s from %s visited %s", dir, start, name)
			}
		}
	}
}

func TestFindNextFocusableFromNonFocusableAnchor(t *testing.T) {
	f := buildForm(t)

	next, ok := FindNextFocusable(f.tree, f.id("art"), Forward)
	require.True(t, ok)
	require.Equal(t, f.id("remember"), next)

	next, ok = FindNextFocusable(f.tree, f.id("art"), Backward)
	require.True(t, ok)
	require.Equal(t, f.id("pass"), next)

	next, ok = FindNextFocusable(f.tree, f.id("header"), Forward)
	require.True(t, ok)
	require.Equal(t, f.id("user"), next)
}

func TestFindNextFocusableFocusableContainer(t *testing.T) {
	f := newFixture(t)
	f.add("root", "list", "f")
	f.add("list", "a", "f")
	f.add("list", "b", "f")
	f.add("root", "after", "f")

	require.Equal(t, []string{"a", "b", "after", "list"}, walkOrder(t, f, f.id("list"), Forward, 4))
	require.Equal(t, []string{"b", "a", "list", "after"}, walkOrder(t, f, f.id("after"), Backward, 4))
}

func TestFindNextFocusableSingleAndEmpty(t *testing.T) {
	f := newFixture(t)
	f.add("root", "label", "")
	_, ok := FindNextFocusable(f.tree, widget.ID{}, Forward)
	require.False(t, ok)
	_, ok = FindNextFocusable(f.tree, f.id("label"), Backward)
	require.False(t, ok)

	only := f.add("root", "only", "f")
	for _, dir := range []Direction{Forward, Backward} {
		next, ok := FindNextFocusable(f.tree, only, dir)
		require.True(t, ok)
		require.Equal(t, only, next)
	}
}

func TestFindNextFocusableSkipsNonInteractive(t *testing.T) {
	f := buildForm(t)
	require.NoError(t, f.tree.SetDisabled(f.id("pass"), true))
	require.NoError(t, f.tree.SetStashed(f.id("actions"), true))

	require.Equal(t, []string{"remember", "user", "remember"}, walkOrder(t, f, f.id("user"), Forward, 3))

	// The anchor itself may be disabled; navigation still moves on from it.
	next, ok := FindNextFocusable(f.tree, f.id("pass"), Forward)
	require.True(t, ok)
	require.Equal(t, f.id("remember"), next)
}

func TestFindNextFocusableStaleAnchorSearchesWholeTree(t *testing.T) {
	f := buildForm(t)
	stale := f.id("remember")
	require.NoError(t, f.tree.Remove(stale))

	next, ok := FindNextFocusable(f.tree, stale, Forward)
	require.True(t, ok)
	require.Equal(t, f.id("user"), next)

	next, ok = FindNextFocusable(f.tree, stale, Backward)
	require.True(t, ok)
	require.Equal(t, f.id("cancel"), next)
}

func TestFindNextFocusableNeverEntersPrunedSubtrees(t *testing.T) {
	f := buildForm(t)
	f.add("art", "deep", "")
	f.add("deep", "deeper", "")

	decor, ok := f.tree.Node(f.id("decor"))
	require.True(t, ok)
	require.False(t, decor.DescendantIsFocusable())

	pruned := map[widget.ID]struct{}{
		f.id("art"):    {},
		f.id("deep"):   {},
		f.id("deeper"): {},
	}
	starts := []widget.ID{{}, f.id("user"), f.id("pass"), f.id("remember"), f.id("ok"), f.id("cancel")}
	for _, dir := range []Direction{Forward, Backward} {
		for _, start := range starts {
			s := search{tree: f.tree, anchor: start}
			s.visit = func(id widget.ID) {
				_, bad := pruned[id]
				require.False(t, bad, "visited %s (dir %s, anchor %s)", f.rec.name(id), dir, f.rec.name(start))
			}
			_, found := s.run(dir)
			require.True(t, found)
		}
	}
}

func TestFindNextFocusableDoesNotMutateTree(t *testing.T) {
	f := buildForm(t)
	before := map[widget.ID][2]bool{}
	f.tree.Walk(func(n *widget.Node, _ int) bool {
		before[n.ID()] = [2]bool{n.AcceptsFocus(), n.DescendantIsFocusable()}
		return true
	})
	walkOrder(t, f, f.id("ok"), Forward, 7)
	walkOrder(t, f, f.id("ok"), Backward, 7)
	f.tree.Walk(func(n *widget.Node, _ int) bool {
		require.Equal(t, before[n.ID()], [2]bool{n.AcceptsFocus(), n.DescendantIsFocusable()})
		return true
	})
}

// randomTree grows a tree of n nodes under root with random focus flags, then
// disables and stashes a few of them.
func randomTree(t *testing.T, rng *rand.Rand, n int) *fixture {
	f := newFixture(t)
	names := []string{"root"}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("n%d", i)
		flags := ""
		switch rng.Intn(3) {
		case 0:
			flags = "f"
		case 1:
			if rng.Intn(2) == 0 {
				flags = "t"
			}
		}
		f.add(names[rng.Intn(len(names))], name, flags)
		names = append(names, name)
	}
	for _, name := range names[1:] {
		switch rng.Intn(10) {
		case 0:
			require.NoError(t, f.tree.SetDisabled(f.id(name), true))
		case 1:
			require.NoError(t, f.tree.SetStashed(f.id(name), true))
		}
	}
	return f
}

// referenceNext scans a flat preorder list from the anchor's position,
// wrapping once and ending on the anchor itself.
func referenceNext(tree *widget.Tree, order []widget.ID, anchor widget.ID, dir Direction) (widget.ID, bool) {
	ok := func(id widget.ID) bool {
		n, _ := tree.Node(id)
		return n.AcceptsFocus() && tree.Interactive(id)
	}
	pos := -1
	for i, id := range order {
		if id == anchor {
			pos = i
		}
	}
	count := len(order)
	for step := 1; step <= count; step++ {
		var i int
		switch {
		case pos < 0 && dir == Forward:
			i = step - 1
		case pos < 0:
			i = count - step
		case dir == Forward:
			i = (pos + step) % count
		default:
			i = (pos - step + count) % count
		}
		if ok(order[i]) {
			return order[i], true
		}
	}
	return widget.ID{}, false
}

func TestFindNextFocusableMatchesPreorderOnRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 300; round++ {
		f := randomTree(t, rng, 1+rng.Intn(24))
		var order []widget.ID
		var candidates []widget.ID
		f.tree.Walk(func(n *widget.Node, _ int) bool {
			order = append(order, n.ID())
			if n.AcceptsFocus() && f.tree.Interactive(n.ID()) {
				candidates = append(candidates, n.ID())
			}
			return true
		})

		anchors := append([]widget.ID{{}}, order...)
		for _, dir := range []Direction{Forward, Backward} {
			for _, anchor := range anchors {
				want, wantOK := referenceNext(f.tree, order, anchor, dir)

				s := search{tree: f.tree, anchor: anchor}
				s.visit = func(id widget.ID) {
					if id == anchor || id == f.tree.Root() {
						return
					}
					if n, _ := f.tree.Node(anchor); anchor.IsZero() || n.AcceptsFocus() {
						parent, _ := f.tree.Node(f.tree.Parent(id))
						require.True(t, parent.DescendantIsFocusable(),
							"round %d: visited %s inside a pruned subtree", round, f.rec.name(id))
					}
				}
				got, gotOK := s.run(dir)
				require.Equal(t, wantOK, gotOK, "round %d dir %s anchor %s", round, dir, f.rec.name(anchor))
				require.Equal(t, want, got, "round %d dir %s anchor %s", round, dir, f.rec.name(anchor))
			}

			for _, start := range candidates {
				seen := map[widget.ID]int{}
				anchor := start
				for i := 0; i < len(candidates); i++ {
					next, ok := FindNextFocusable(f.tree, anchor, dir)
					require.True(t, ok)
					seen[next]++
					anchor = next
				}
				require.Equal(t, start, anchor, "round %d dir %s from %s", round, dir, f.rec.name(start))
				require.Len(t, seen, len(candidates))
			}
		}
	}
}
