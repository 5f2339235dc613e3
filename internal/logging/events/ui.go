package events

import "github.com/atomicstack/focustree/internal/logging"

type UITracer struct{}

type FinderTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Finder  = FinderTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key, target string, handled bool) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "target": target, "handled": handled})
}

func (UITracer) Mouse(x, y int, target string) {
	logging.Trace("ui.mouse", map[string]interface{}{"x": x, "y": y, "target": target})
}

func (UITracer) Toggle(what, target string, value bool) {
	logging.Trace("ui.toggle", map[string]interface{}{"what": what, "target": target, "value": value})
}

func (UITracer) Accessibility(focused string, nodes int) {
	logging.Trace("ui.accessibility", map[string]interface{}{"focused": focused, "nodes": nodes})
}

func (UITracer) AccessAction(kind, target string) {
	logging.Trace("ui.access.action", map[string]interface{}{"kind": kind, "target": target})
}

func (FinderTracer) Open() {
	logging.Trace("finder.open", nil)
}

func (FinderTracer) Query(query string, matches int) {
	logging.Trace("finder.query", map[string]interface{}{"query": query, "matches": matches})
}

func (FinderTracer) Select(query, target string) {
	logging.Trace("finder.select", map[string]interface{}{"query": query, "target": target})
}

func (FinderTracer) Cancel(query string) {
	logging.Trace("finder.cancel", map[string]interface{}{"query": query})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
