package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/focustree/internal/layout"
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/ui/command"
	"github.com/atomicstack/focustree/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultActions returns the actions the built-in layout refers to.
func DefaultActions() layout.Actions {
	return layout.Actions{
		"save":     saveAction,
		"validate": validateAction,
	}
}

func saveAction(values map[string]string) (string, error) {
	keys := make([]string, 0, len(values))
	for k, v := range values {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return "Nothing to save.", nil
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + values[k]
	}
	return "Saved " + strings.Join(parts, ", "), nil
}

func validateAction(values map[string]string) (string, error) {
	if strings.TrimSpace(values["profile/user"]) == "" {
		return "", fmt.Errorf("profile/user is required")
	}
	if email := values["profile/email"]; email != "" && !strings.Contains(email, "@") {
		return "", fmt.Errorf("profile/email: %q is not an address", email)
	}
	return "Form is valid.", nil
}

func (m *Model) handlePressedMsg(msg tea.Msg) tea.Cmd {
	pressed, ok := msg.(widget.PressedMsg)
	if !ok {
		return nil
	}
	if pressed.Action == nil {
		m.setInfo(fmt.Sprintf("%s does nothing.", pressed.Label))
		return nil
	}
	if m.pendingID != "" {
		m.setInfo(fmt.Sprintf("Still running %s.", m.pendingLabel))
		return nil
	}
	m.pendingID = pressed.ID.String()
	m.pendingLabel = pressed.Label
	m.forceClearInfo()
	m.errMsg = ""
	return m.bus.Execute(command.Request{
		ID:      m.pendingID,
		Label:   pressed.Label,
		Handler: pressed.Action,
		Values:  m.formValues(),
	})
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.ActionResult)
	if !ok {
		return nil
	}
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}
