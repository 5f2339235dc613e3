package command

import (
	"fmt"

	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a button action invocation.
type Request struct {
	ID      string
	Label   string
	Handler widget.ActionFunc
	// Values is the form snapshot handed to Handler.
	Values map[string]string
}

// ActionResult is delivered back to the UI once an action finished.
type ActionResult struct {
	ID    string
	Label string
	Info  string
	Err   error
}

// Bus coordinates the execution of button actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace
// logs. The handler runs off the UI goroutine and only sees req.Values.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		info, err := req.Handler(req.Values)
		if err == nil && info == "" {
			events.Command.NoOp(req.ID, req.Label)
		}
		res := ActionResult{ID: req.ID, Label: req.Label, Info: info, Err: err}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", res))
		return res
	}
}
