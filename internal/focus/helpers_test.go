package focus

import (
	"fmt"
	"testing"

	"github.com/atomicstack/focustree/internal/widget"
	"github.com/stretchr/testify/require"
)

// recorder collects node notifications and IME calls in delivery order.
type recorder struct {
	names map[widget.ID]string
	log   []string
}

func (r *recorder) name(id widget.ID) string {
	if n, ok := r.names[id]; ok {
		return n
	}
	return id.String()
}

func (r *recorder) BeginIMESession(id widget.ID) {
	r.log = append(r.log, "begin-ime "+r.name(id))
}

func (r *recorder) EndIMESession() {
	r.log = append(r.log, "end-ime")
}

type probe struct {
	name      string
	focusable bool
	text      bool
	rec       *recorder
	// onIMEEnded runs inside the IME-ended notification.
	onIMEEnded func(self widget.ID, req widget.Requester)
	// onFocus runs inside the focus-changed notification.
	onFocus func(focused bool)
}

func (p *probe) AcceptsFocus() bool     { return p.focusable }
func (p *probe) AcceptsTextInput() bool { return p.text }

func (p *probe) OnFocusChanged(focused bool) {
	p.rec.log = append(p.rec.log, fmt.Sprintf("focus %s %t", p.name, focused))
	if p.onFocus != nil {
		p.onFocus(focused)
	}
}

func (p *probe) OnDescendantFocusChanged(within bool) {
	p.rec.log = append(p.rec.log, fmt.Sprintf("within %s %t", p.name, within))
}

func (p *probe) OnIMEEnded(self widget.ID, req widget.Requester) {
	p.rec.log = append(p.rec.log, "ime-ended "+p.name)
	if p.onIMEEnded != nil {
		p.onIMEEnded(self, req)
	}
}

// fixture is a tree of probes addressed by name.
type fixture struct {
	t      *testing.T
	tree   *widget.Tree
	rec    *recorder
	ids    map[string]widget.ID
	probes map[string]*probe
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &recorder{names: map[widget.ID]string{}}
	f := &fixture{t: t, rec: rec, ids: map[string]widget.ID{}, probes: map[string]*probe{}}
	root := &probe{name: "root", rec: rec}
	f.tree = widget.NewTree(root)
	f.ids["root"] = f.tree.Root()
	f.probes["root"] = root
	rec.names[f.tree.Root()] = "root"
	return f
}

// add inserts a probe. flags: "f" accepts focus, "t" accepts text input too.
func (f *fixture) add(parent, name, flags string) widget.ID {
	f.t.Helper()
	p := &probe{name: name, rec: f.rec}
	switch flags {
	case "f":
		p.focusable = true
	case "t":
		p.focusable = true
		p.text = true
	}
	id, err := f.tree.Insert(f.ids[parent], name, p)
	require.NoError(f.t, err)
	f.ids[name] = id
	f.probes[name] = p
	f.rec.names[id] = name
	return id
}

func (f *fixture) id(name string) widget.ID {
	f.t.Helper()
	id, ok := f.ids[name]
	require.True(f.t, ok, "unknown node %q", name)
	return id
}

func (f *fixture) store() *Store {
	return NewStore(f.rec)
}

func (f *fixture) reset() {
	f.rec.log = nil
}
