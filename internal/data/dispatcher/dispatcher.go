package dispatcher

import (
	"github.com/atomicstack/focustree/internal/backend"
	"github.com/atomicstack/focustree/internal/focus"
	"github.com/atomicstack/focustree/internal/layout"
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
)

// Result reports what handling a backend event changed.
type Result struct {
	LayoutUpdated bool
	Stats         layout.Stats
	Err           error
}

// Dispatcher applies backend events to the widget tree. It runs on the UI
// goroutine; the focus store only sees the fallback change here, the
// consequences for focus are picked up by the next commit.
type Dispatcher struct {
	tree    *widget.Tree
	store   *focus.Store
	actions layout.Actions
}

func New(t *widget.Tree, s *focus.Store, actions layout.Actions) *Dispatcher {
	return &Dispatcher{tree: t, store: s, actions: actions}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		events.Layout.Error(evt.Path, evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindLayout:
		spec, ok := evt.Data.(layout.Spec)
		if !ok {
			return res
		}
		stats, err := layout.Reconcile(d.tree, spec, d.actions)
		if err != nil {
			events.Layout.Error(evt.Path, err)
			res.Err = err
			return res
		}
		res.Stats = stats
		res.LayoutUpdated = stats.Changed()
		d.applyFallback(spec)
		events.Layout.Reload(evt.Path, stats.Inserted, stats.Removed, stats.Updated)
	}
	return res
}

func (d *Dispatcher) applyFallback(spec layout.Spec) {
	if d.store == nil {
		return
	}
	id, _ := layout.Resolve(d.tree, spec.Fallback)
	if id != d.store.State().Fallback {
		d.store.SetFallback(id)
	}
}
