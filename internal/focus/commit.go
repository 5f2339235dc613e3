package focus

import (
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
)

// NotificationKind identifies an entry in a commit Report.
type NotificationKind int

const (
	// NotifyIMEEnded is the synthetic "IME ended" event delivered to a node.
	NotifyIMEEnded NotificationKind = iota
	// NotifyEndIMESession is the call to IMEService.EndIMESession.
	NotifyEndIMESession
	// NotifyBeginIMESession is the call to IMEService.BeginIMESession.
	NotifyBeginIMESession
	// NotifyDescendantFocus is "descendant focus changed" delivered to a node.
	NotifyDescendantFocus
	// NotifyFocus is "focus changed" delivered to a node.
	NotifyFocus
)

func (k NotificationKind) String() string {
	switch k {
	case NotifyIMEEnded:
		return "ime-ended"
	case NotifyEndIMESession:
		return "end-ime-session"
	case NotifyBeginIMESession:
		return "begin-ime-session"
	case NotifyDescendantFocus:
		return "descendant-focus"
	case NotifyFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// Notification is one observable effect of a commit, in delivery order.
type Notification struct {
	Kind   NotificationKind
	Target widget.ID
	Value  bool
}

// Report describes what a commit did.
type Report struct {
	// Committed is false when there was nothing to apply.
	Committed bool
	Intent    Intent
	Previous  widget.ID
	Focused   widget.ID
	// Demoted is set when a SetFocus target (or the current focus) failed
	// validation and was turned into a clear.
	Demoted bool
	// Retried is set when the IME-ended notification staged a new intent that
	// was resolved in the same commit.
	Retried bool
	// Dropped is set when a handler staged again after the retry was spent;
	// that intent is discarded.
	Dropped       bool
	Notifications []Notification
}

// Changed reports whether the focused node changed.
func (r Report) Changed() bool {
	return r.Previous != r.Focused
}

// Commit applies the staged intent to the committed state. It runs once per
// input batch and never fails: targets that are stale, disabled, stashed or
// not focusable are demoted to a clear.
//
// With nothing staged the commit is a no-op, unless the focused node stopped
// being interactive since the last commit; that case is handled as a clear.
func (s *Store) Commit(t *widget.Tree) Report {
	intent := s.take()
	if intent.Kind == NoChange {
		if s.state.Focused.IsZero() || t.Interactive(s.state.Focused) {
			return Report{}
		}
		intent = Intent{Kind: SetFocus, Target: s.state.Focused}
	}

	prev := s.state.Focused
	r := &Report{Committed: true, Intent: intent, Previous: prev}
	next := s.resolve(t, intent, r)

	if next != prev && s.state.IMEActive {
		s.endIME(t, prev, r)
		if s.intent.Kind != NoChange {
			retry := s.take()
			r.Retried = true
			next = s.resolve(t, retry, r)
			events.IME.Retry(prev.String(), next.String())
		}
	}

	if !next.IsZero() && !s.state.IMEActive {
		if n, ok := t.Node(next); ok && n.AcceptsTextInput() {
			s.ime.BeginIMESession(next)
			s.state.IMEActive = true
			r.add(NotifyBeginIMESession, next, true)
			events.IME.Begin(next.String())
		}
	}

	newPath := t.Path(next)
	s.diffPath(t, s.state.Path, newPath, r)

	if next != prev {
		if n, ok := t.Node(prev); ok {
			if h, ok := n.Widget().(widget.FocusHandler); ok {
				h.OnFocusChanged(false)
			}
			r.add(NotifyFocus, prev, false)
		}
		if n, ok := t.Node(next); ok {
			if h, ok := n.Widget().(widget.FocusHandler); ok {
				h.OnFocusChanged(true)
			}
			r.add(NotifyFocus, next, true)
		}
	}

	s.state.Focused = next
	s.state.Path = newPath
	if !next.IsZero() {
		s.state.Anchor = next
	}
	// Handlers notified above may stage again. That intent waits for the next
	// commit, unless this commit already spent its retry.
	if r.Retried && s.intent.Kind != NoChange {
		dropped := s.take()
		r.Dropped = true
		events.IME.CascadeBounded(prev.String(), dropped.Target.String())
	}
	r.Focused = next

	events.Focus.Commit(prev.String(), next.String(), s.state.Anchor.String(), len(r.Notifications))
	return *r
}

// resolve turns an intent into the prospective focused node.
func (s *Store) resolve(t *widget.Tree, intent Intent, r *Report) widget.ID {
	switch intent.Kind {
	case ClearFocus:
		return widget.ID{}
	case SetFocus:
		n, ok := t.Node(intent.Target)
		switch {
		case !ok:
			r.Demoted = true
			events.Focus.Demote(intent.Target.String(), "stale")
			return widget.ID{}
		case !n.AcceptsFocus():
			r.Demoted = true
			events.Focus.Demote(intent.Target.String(), "not-focusable")
			return widget.ID{}
		case !t.Interactive(intent.Target):
			r.Demoted = true
			events.Focus.Demote(intent.Target.String(), "not-interactive")
			return widget.ID{}
		}
		return intent.Target
	default:
		return s.state.Focused
	}
}

// endIME delivers the synthetic IME-ended event to the node losing focus and
// ends the platform session. A removed node only gets the platform call.
func (s *Store) endIME(t *widget.Tree, prev widget.ID, r *Report) {
	if n, ok := t.Node(prev); ok {
		if h, ok := n.Widget().(widget.IMEHandler); ok {
			h.OnIMEEnded(prev, s)
		}
		r.add(NotifyIMEEnded, prev, false)
	}
	s.ime.EndIMESession()
	s.state.IMEActive = false
	r.add(NotifyEndIMESession, prev, false)
	events.IME.End(prev.String())
}

// diffPath notifies every live node whose membership in the focused path
// flipped: first the nodes leaving the path, then the ones entering it, each
// in root-to-leaf order.
func (s *Store) diffPath(t *widget.Tree, oldPath, newPath []widget.ID, r *Report) {
	inNew := make(map[widget.ID]struct{}, len(newPath))
	for _, id := range newPath {
		inNew[id] = struct{}{}
	}
	inOld := make(map[widget.ID]struct{}, len(oldPath))
	for _, id := range oldPath {
		inOld[id] = struct{}{}
	}
	for _, id := range oldPath {
		if _, ok := inNew[id]; ok {
			continue
		}
		s.notifyDescendant(t, id, false, r)
	}
	for _, id := range newPath {
		if _, ok := inOld[id]; ok {
			continue
		}
		s.notifyDescendant(t, id, true, r)
	}
}

func (s *Store) notifyDescendant(t *widget.Tree, id widget.ID, within bool, r *Report) {
	n, ok := t.Node(id)
	if !ok {
		return
	}
	if h, ok := n.Widget().(widget.DescendantFocusHandler); ok {
		h.OnDescendantFocusChanged(within)
	}
	r.add(NotifyDescendantFocus, id, within)
}

func (r *Report) add(kind NotificationKind, target widget.ID, value bool) {
	r.Notifications = append(r.Notifications, Notification{Kind: kind, Target: target, Value: value})
}
