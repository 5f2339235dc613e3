package ui

import (
	"fmt"

	"github.com/atomicstack/focustree/internal/backend"
	"github.com/atomicstack/focustree/internal/layout"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// reloadMsg carries a layout loaded on demand rather than by the watcher.
type reloadMsg struct {
	event backend.Event
}

func reloadLayout(path string) tea.Cmd {
	return func() tea.Msg {
		spec, err := layout.Load(path)
		return reloadMsg{event: backend.Event{Kind: backend.KindLayout, Path: path, Data: spec, Err: err}}
	}
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) handleReloadMsg(msg tea.Msg) tea.Cmd {
	reload, ok := msg.(reloadMsg)
	if !ok {
		return nil
	}
	if m.applyBackendEvent(reload.event) {
		m.setInfo("Layout reloaded.")
	}
	return nil
}

// applyBackendEvent hands evt to the dispatcher. Structural changes are
// picked up by the commit that closes this update.
func (m *Model) applyBackendEvent(evt backend.Event) bool {
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.backendLastErr = res.Err.Error()
		return false
	}
	m.backendLastErr = ""
	if res.LayoutUpdated && m.verbose {
		m.setInfo(fmt.Sprintf("Layout updated: %d added, %d removed, %d changed.",
			res.Stats.Inserted, res.Stats.Removed, res.Stats.Updated))
	}
	return true
}

func (m *Model) hasBackendIssue() (bool, string) {
	if m.backendLastErr == "" {
		return false, ""
	}
	return true, m.backendLastErr
}
