package focus

import (
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
)

// IntentKind enumerates staged focus changes.
type IntentKind int

const (
	NoChange IntentKind = iota
	ClearFocus
	SetFocus
)

func (k IntentKind) String() string {
	switch k {
	case ClearFocus:
		return "clear"
	case SetFocus:
		return "set"
	default:
		return "none"
	}
}

// Intent is a pending focus change. Target is only meaningful for SetFocus.
type Intent struct {
	Kind   IntentKind
	Target widget.ID
}

// State is the committed focus record.
type State struct {
	Focused      widget.ID
	Path         []widget.ID
	Anchor       widget.ID
	Fallback     widget.ID
	WindowActive bool
	IMEActive    bool
}

// Store holds the committed State and the staged Intent. Only Commit writes
// Focused, Path and IMEActive; everything else stages intents. The anchor is
// written by Commit and by PointerDown, which moves it before any handler
// runs so a press on a non-focusable node still sets where Tab starts.
type Store struct {
	state  State
	intent Intent
	ime    IMEService
}

// NewStore returns an empty store bound to an input-method service. A nil
// service is replaced by one that ignores all calls.
func NewStore(ime IMEService) *Store {
	if ime == nil {
		ime = nopIME{}
	}
	return &Store{
		state: State{WindowActive: true},
		ime:   ime,
	}
}

// State returns a copy of the last committed state.
func (s *Store) State() State {
	st := s.state
	if st.Path != nil {
		st.Path = append([]widget.ID(nil), st.Path...)
	}
	return st
}

// Focused returns the committed focused node, or the zero ID.
func (s *Store) Focused() widget.ID {
	return s.state.Focused
}

// Anchor returns the position Tab navigation starts from.
func (s *Store) Anchor() widget.ID {
	return s.state.Anchor
}

// Staged returns the intent the next commit will apply.
func (s *Store) Staged() Intent {
	return s.intent
}

// RequestFocus stages focus for id. Validation happens at commit time.
func (s *Store) RequestFocus(id widget.ID) {
	s.stage(Intent{Kind: SetFocus, Target: id})
}

// SetFocus stages focus for id, or a clear when id is zero.
func (s *Store) SetFocus(id widget.ID) {
	if id.IsZero() {
		s.ClearFocus()
		return
	}
	s.RequestFocus(id)
}

// ClearFocus stages removal of focus.
func (s *Store) ClearFocus() {
	s.stage(Intent{Kind: ClearFocus})
}

// ResignFocus stages a clear only when id is the committed focused node.
// Whatever is staged already is replaced, like any other write.
func (s *Store) ResignFocus(id widget.ID) {
	if id.IsZero() || s.state.Focused != id {
		return
	}
	s.ClearFocus()
}

// SetFallback names the node that receives keyboard input while nothing is
// focused. It never becomes the focused node itself.
func (s *Store) SetFallback(id widget.ID) {
	s.state.Fallback = id
	events.Focus.Fallback(id.String())
}

// SetWindowActive records whether the hosting window has platform focus.
func (s *Store) SetWindowActive(active bool) {
	if s.state.WindowActive == active {
		return
	}
	s.state.WindowActive = active
	events.Focus.Window(active)
}

// KeyTarget returns the node keyboard events are delivered to: the focused
// node, else the fallback while it is still interactive.
func (s *Store) KeyTarget(t *widget.Tree) widget.ID {
	if !s.state.Focused.IsZero() {
		return s.state.Focused
	}
	if !s.state.Fallback.IsZero() && t.Interactive(s.state.Fallback) {
		return s.state.Fallback
	}
	return widget.ID{}
}

func (s *Store) stage(i Intent) {
	s.intent = i
	events.Focus.Stage(i.Kind.String(), i.Target.String())
}

func (s *Store) take() Intent {
	i := s.intent
	s.intent = Intent{}
	return i
}

var _ widget.Requester = (*Store)(nil)
