package focus

import (
	"testing"

	"github.com/atomicstack/focustree/internal/widget"
	"github.com/stretchr/testify/require"
)

// filterLog keeps the log lines starting with one of the given prefixes.
func filterLog(log []string, prefixes ...string) []string {
	var out []string
	for _, line := range log {
		for _, p := range prefixes {
			if len(line) >= len(p) && line[:len(p)] == p {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

func commitFocus(t *testing.T, f *fixture, s *Store, name string) Report {
	t.Helper()
	s.RequestFocus(f.id(name))
	r := s.Commit(f.tree)
	require.Equal(t, f.id(name), s.Focused())
	return r
}

func TestCommitWithoutIntentIsIdempotent(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "remember")
	before := s.State()
	f.reset()

	for i := 0; i < 2; i++ {
		r := s.Commit(f.tree)
		require.False(t, r.Committed)
		require.Empty(t, r.Notifications)
	}
	require.Empty(t, f.rec.log)
	require.Equal(t, before, s.State())
}

func TestCommitConsumesIntentOnce(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	s.RequestFocus(f.id("ok"))
	require.Equal(t, SetFocus, s.Staged().Kind)

	r := s.Commit(f.tree)
	require.True(t, r.Committed)
	require.Equal(t, NoChange, s.Staged().Kind)
	require.False(t, s.Commit(f.tree).Committed)
}

func TestCommitLastWriterWins(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	s.RequestFocus(f.id("ok"))
	s.ClearFocus()
	s.RequestFocus(f.id("cancel"))

	r := s.Commit(f.tree)
	require.Equal(t, f.id("cancel"), r.Focused)
	require.Equal(t, f.id("cancel"), s.Focused())
}

func TestCommitPathAndDescendantNotifications(t *testing.T) {
	f := buildForm(t)
	s := f.store()

	commitFocus(t, f, s, "ok")
	require.Equal(t, []widget.ID{f.id("root"), f.id("actions"), f.id("ok")}, s.State().Path)
	require.Equal(t, []string{
		"within root true",
		"within actions true",
		"within ok true",
		"focus ok true",
	}, f.rec.log)

	f.reset()
	commitFocus(t, f, s, "cancel")
	require.Equal(t, []string{
		"within ok false",
		"within cancel true",
		"focus ok false",
		"focus cancel true",
	}, f.rec.log)

	f.reset()
	s.ClearFocus()
	r := s.Commit(f.tree)
	require.True(t, r.Changed())
	require.Empty(t, s.State().Path)
	require.Equal(t, []string{
		"within root false",
		"within actions false",
		"within cancel false",
		"focus cancel false",
	}, f.rec.log)
}

func TestCommitDemotesInvalidTargets(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "ok")

	s.RequestFocus(f.id("header"))
	r := s.Commit(f.tree)
	require.True(t, r.Demoted)
	require.True(t, s.Focused().IsZero())

	commitFocus(t, f, s, "ok")
	require.NoError(t, f.tree.SetDisabled(f.id("remember"), true))
	s.RequestFocus(f.id("remember"))
	r = s.Commit(f.tree)
	require.True(t, r.Demoted)
	require.True(t, s.Focused().IsZero())

	commitFocus(t, f, s, "ok")
	require.NoError(t, f.tree.SetStashed(f.id("account"), true))
	s.RequestFocus(f.id("user"))
	r = s.Commit(f.tree)
	require.True(t, r.Demoted)
	require.True(t, s.Focused().IsZero())

	s.RequestFocus(widget.ID{})
	r = s.Commit(f.tree)
	require.True(t, r.Demoted)
	require.True(t, s.Focused().IsZero())
}

func TestClearingFocusKeepsAnchor(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "remember")
	require.Equal(t, f.id("remember"), s.Anchor())

	s.ClearFocus()
	s.Commit(f.tree)
	require.True(t, s.Focused().IsZero())
	require.Equal(t, f.id("remember"), s.Anchor())

	require.True(t, s.HandleTab(f.tree, Forward))
	s.Commit(f.tree)
	require.Equal(t, f.id("ok"), s.Focused())
}

func TestResignFocusOnlyForFocusedNode(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "ok")

	s.ResignFocus(f.id("cancel"))
	require.Equal(t, NoChange, s.Staged().Kind)

	s.ResignFocus(f.id("ok"))
	require.Equal(t, ClearFocus, s.Staged().Kind)
	s.Commit(f.tree)
	require.True(t, s.Focused().IsZero())

	// A node only staged for focus does not hold it yet, so resigning is a no-op.
	s.RequestFocus(f.id("cancel"))
	s.ResignFocus(f.id("cancel"))
	require.Equal(t, Intent{Kind: SetFocus, Target: f.id("cancel")}, s.Staged())
	s.Commit(f.tree)
	require.Equal(t, f.id("cancel"), s.Focused())
}

func TestResignFocusOverridesStagedRequest(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "ok")

	s.RequestFocus(f.id("cancel"))
	s.ResignFocus(f.id("ok"))
	require.Equal(t, ClearFocus, s.Staged().Kind)
	s.Commit(f.tree)
	require.True(t, s.Focused().IsZero())
}

func TestSetFocusZeroClears(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "ok")
	s.SetFocus(widget.ID{})
	require.Equal(t, ClearFocus, s.Staged().Kind)
	s.SetFocus(f.id("cancel"))
	require.Equal(t, Intent{Kind: SetFocus, Target: f.id("cancel")}, s.Staged())
}

func TestIMEActiveMatchesFocusedNode(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	check := func() {
		t.Helper()
		st := s.State()
		want := false
		if n, ok := f.tree.Node(st.Focused); ok {
			want = n.AcceptsTextInput()
		}
		require.Equal(t, want, st.IMEActive)
	}

	steps := []func(){
		func() { s.RequestFocus(f.id("user")) },
		func() { s.RequestFocus(f.id("pass")) },
		func() { s.RequestFocus(f.id("ok")) },
		func() { s.RequestFocus(f.id("pass")) },
		func() { s.ClearFocus() },
		func() { s.RequestFocus(f.id("user")) },
		func() { s.RequestFocus(f.id("header")) },
		func() { s.HandleTab(f.tree, Forward) },
		func() { s.HandleTab(f.tree, Backward) },
		func() { s.PointerDown(f.tree, f.id("art")) },
	}
	for _, step := range steps {
		step()
		s.Commit(f.tree)
		check()
	}
}

func TestIMEHandOverBetweenTextInputs(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "user")
	require.Equal(t, []string{"begin-ime user"}, filterLog(f.rec.log, "begin-ime", "end-ime", "ime-ended"))

	f.reset()
	commitFocus(t, f, s, "pass")
	require.Equal(t, []string{
		"ime-ended user",
		"end-ime",
		"begin-ime pass",
		"focus user false",
		"focus pass true",
	}, filterLog(f.rec.log, "begin-ime", "end-ime", "ime-ended", "focus "))
	require.True(t, s.State().IMEActive)
}

func TestIMEReentryReopensSession(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	f.probes["user"].onIMEEnded = func(self widget.ID, req widget.Requester) {
		req.RequestFocus(self)
	}
	commitFocus(t, f, s, "user")
	f.reset()

	s.RequestFocus(f.id("ok"))
	r := s.Commit(f.tree)

	require.True(t, r.Retried)
	require.False(t, r.Dropped)
	require.False(t, r.Changed())
	require.Equal(t, f.id("user"), s.Focused())
	require.True(t, s.State().IMEActive)
	require.Equal(t, []string{"ime-ended user", "end-ime", "begin-ime user"}, f.rec.log)
	require.Equal(t, NoChange, s.Staged().Kind)
}

func TestIMEEndedHandlerRedirectsFocus(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	f.probes["user"].onIMEEnded = func(_ widget.ID, req widget.Requester) {
		req.RequestFocus(f.id("pass"))
		req.RequestFocus(f.id("ok"))
	}
	commitFocus(t, f, s, "user")

	s.RequestFocus(f.id("cancel"))
	r := s.Commit(f.tree)
	require.True(t, r.Retried)
	require.False(t, r.Dropped)
	require.Equal(t, f.id("ok"), s.Focused())
	require.Equal(t, f.id("ok"), s.Anchor())
	require.False(t, s.State().IMEActive)
}

func TestIMECascadeIsBounded(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	f.probes["user"].onIMEEnded = func(self widget.ID, req widget.Requester) {
		req.RequestFocus(f.id("pass"))
	}
	// pass bounces focus back as soon as it gets it.
	f.probes["pass"].onFocus = func(focused bool) {
		if focused {
			s.RequestFocus(f.id("user"))
		}
	}
	commitFocus(t, f, s, "user")

	s.RequestFocus(f.id("ok"))
	r := s.Commit(f.tree)
	require.True(t, r.Retried)
	require.True(t, r.Dropped)
	require.Equal(t, f.id("pass"), s.Focused())
	require.True(t, s.State().IMEActive)
	require.Equal(t, NoChange, s.Staged().Kind)

	// Nothing is left over for the next commit.
	require.False(t, s.Commit(f.tree).Committed)
	require.Equal(t, f.id("pass"), s.Focused())
}

func TestFocusHandlerIntentCarriesToNextCommit(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	f.probes["ok"].onFocus = func(focused bool) {
		if focused {
			s.RequestFocus(f.id("cancel"))
		}
	}

	r := commitFocus(t, f, s, "ok")
	require.False(t, r.Dropped)
	require.Equal(t, Intent{Kind: SetFocus, Target: f.id("cancel")}, s.Staged())

	s.Commit(f.tree)
	require.Equal(t, f.id("cancel"), s.Focused())
}

func TestTabCyclesTwoButtons(t *testing.T) {
	f := newFixture(t)
	f.add("root", "b", "f")
	f.add("root", "c", "f")
	s := f.store()

	var got []string
	for i := 0; i < 3; i++ {
		require.True(t, s.HandleTab(f.tree, Forward))
		s.Commit(f.tree)
		got = append(got, f.rec.name(s.Focused()))
	}
	require.Equal(t, []string{"b", "c", "b"}, got)
}

func TestPointerPressMovesFocusOffTextInput(t *testing.T) {
	f := newFixture(t)
	f.add("root", "b", "t")
	f.add("root", "c", "f")
	s := f.store()
	commitFocus(t, f, s, "b")
	require.True(t, s.State().IMEActive)
	f.reset()

	// The press clears first, then c's own handler asks for focus.
	s.PointerDown(f.tree, f.id("c"))
	require.Equal(t, ClearFocus, s.Staged().Kind)
	s.RequestFocus(f.id("c"))
	s.Commit(f.tree)

	require.Equal(t, f.id("c"), s.Focused())
	require.False(t, s.State().IMEActive)
	require.Equal(t, []string{
		"ime-ended b",
		"end-ime",
		"focus b false",
		"focus c true",
	}, filterLog(f.rec.log, "ime-ended", "end-ime", "begin-ime", "focus "))
}

func TestRemovingFocusedNodeClearsFocus(t *testing.T) {
	f := newFixture(t)
	f.add("root", "b", "f")
	f.add("root", "c", "f")
	s := f.store()
	commitFocus(t, f, s, "b")
	stale := f.id("b")
	require.NoError(t, f.tree.Remove(stale))
	f.reset()

	r := s.Commit(f.tree)
	require.True(t, r.Committed)
	require.True(t, r.Demoted)
	require.True(t, s.Focused().IsZero())
	require.Empty(t, s.State().Path)
	require.Equal(t, stale, s.Anchor())
	require.Equal(t, []string{"within root false"}, f.rec.log)

	require.True(t, s.HandleTab(f.tree, Forward))
	s.Commit(f.tree)
	require.Equal(t, f.id("c"), s.Focused())
}

func TestDisablingFocusedNodeClearsFocus(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "user")
	require.NoError(t, f.tree.SetDisabled(f.id("account"), true))
	f.reset()

	r := s.Commit(f.tree)
	require.True(t, r.Demoted)
	require.True(t, s.Focused().IsZero())
	require.False(t, s.State().IMEActive)
	require.Equal(t, []string{"ime-ended user", "end-ime"}, filterLog(f.rec.log, "ime-ended", "end-ime"))
}

func TestPointerPressOnSiblingClearsFocus(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "ok")

	s.PointerDown(f.tree, f.id("header"))
	s.Commit(f.tree)
	require.True(t, s.Focused().IsZero())
	require.Equal(t, f.id("header"), s.Anchor())

	require.True(t, s.HandleTab(f.tree, Forward))
	s.Commit(f.tree)
	require.Equal(t, f.id("user"), s.Focused())
}

func TestPointerPressInsideFocusedSubtreeKeepsFocus(t *testing.T) {
	f := newFixture(t)
	f.add("root", "list", "f")
	f.add("list", "row", "")
	s := f.store()
	commitFocus(t, f, s, "list")

	s.PointerDown(f.tree, f.id("row"))
	require.Equal(t, NoChange, s.Staged().Kind)
	require.Equal(t, f.id("row"), s.Anchor())
	s.Commit(f.tree)
	require.Equal(t, f.id("list"), s.Focused())
}

func TestKeyTargetFallsBackWhenUnfocused(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	require.True(t, s.KeyTarget(f.tree).IsZero())

	s.SetFallback(f.id("actions"))
	require.Equal(t, f.id("actions"), s.KeyTarget(f.tree))
	require.True(t, s.Focused().IsZero())

	commitFocus(t, f, s, "user")
	require.Equal(t, f.id("user"), s.KeyTarget(f.tree))

	s.ClearFocus()
	s.Commit(f.tree)
	require.NoError(t, f.tree.SetStashed(f.id("actions"), true))
	require.True(t, s.KeyTarget(f.tree).IsZero())
}

func TestWindowActiveDoesNotTouchFocus(t *testing.T) {
	f := buildForm(t)
	s := f.store()
	commitFocus(t, f, s, "ok")
	s.SetWindowActive(false)
	require.False(t, s.State().WindowActive)
	require.False(t, s.Commit(f.tree).Committed)
	require.Equal(t, f.id("ok"), s.Focused())
	s.SetWindowActive(true)
	require.True(t, s.State().WindowActive)
}
