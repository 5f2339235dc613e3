package events

import "github.com/atomicstack/focustree/internal/logging"

type LayoutTracer struct{}

var Layout = LayoutTracer{}

func (LayoutTracer) Load(path string, nodes int) {
	logging.Trace("layout.load", map[string]interface{}{"path": path, "nodes": nodes})
}

func (LayoutTracer) Reload(path string, inserted, removed, updated int) {
	logging.Trace("layout.reload", map[string]interface{}{
		"path":     path,
		"inserted": inserted,
		"removed":  removed,
		"updated":  updated,
	})
}

func (LayoutTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("layout.error", map[string]interface{}{"path": path, "error": err.Error()})
}
