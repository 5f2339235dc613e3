package events

import "github.com/atomicstack/focustree/internal/logging"

type FocusTracer struct{}

type IMETracer struct{}

var (
	Focus = FocusTracer{}
	IME   = IMETracer{}
)

func (FocusTracer) Stage(kind, target string) {
	logging.Trace("focus.stage", map[string]interface{}{"kind": kind, "target": target})
}

func (FocusTracer) Tab(direction, anchor, result string, found bool) {
	logging.Trace("focus.tab", map[string]interface{}{
		"direction": direction,
		"anchor":    anchor,
		"result":    result,
		"found":     found,
	})
}

func (FocusTracer) Pointer(target, focused string, cleared bool) {
	logging.Trace("focus.pointer", map[string]interface{}{"target": target, "focused": focused, "cleared": cleared})
}

func (FocusTracer) Demote(target, reason string) {
	logging.Trace("focus.commit.demote", map[string]interface{}{"target": target, "reason": reason})
}

func (FocusTracer) Commit(previous, focused, anchor string, notifications int) {
	logging.Trace("focus.commit", map[string]interface{}{
		"previous":      previous,
		"focused":       focused,
		"anchor":        anchor,
		"notifications": notifications,
	})
}

func (FocusTracer) Window(active bool) {
	logging.Trace("focus.window", map[string]interface{}{"active": active})
}

func (FocusTracer) Fallback(target string) {
	logging.Trace("focus.fallback", map[string]interface{}{"target": target})
}

func (IMETracer) Begin(target string) {
	logging.Trace("focus.ime.begin", map[string]interface{}{"target": target})
}

func (IMETracer) End(target string) {
	logging.Trace("focus.ime.end", map[string]interface{}{"target": target})
}

func (IMETracer) Retry(target, resolved string) {
	logging.Trace("focus.ime.retry", map[string]interface{}{"target": target, "resolved": resolved})
}

// CascadeBounded records an intent staged after the single re-entrant
// resolution was used up. The intent is dropped.
func (IMETracer) CascadeBounded(target, dropped string) {
	logging.Trace("focus.ime.cascade-bounded", map[string]interface{}{"target": target, "dropped": dropped})
}
