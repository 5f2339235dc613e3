package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/focustree/internal/access"
	"github.com/atomicstack/focustree/internal/backend"
	"github.com/atomicstack/focustree/internal/data/dispatcher"
	"github.com/atomicstack/focustree/internal/focus"
	"github.com/atomicstack/focustree/internal/layout"
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/theme"
	"github.com/atomicstack/focustree/internal/ui/command"
	"github.com/atomicstack/focustree/internal/widget"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Layout     layout.Spec
	LayoutPath string
	// Actions backs the buttons in Layout. Nil uses DefaultActions.
	Actions    layout.Actions
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Watcher    *backend.Watcher
}

// Model implements the Bubble Tea model hosting a focus tree.
type Model struct {
	tree       *widget.Tree
	store      *focus.Store
	ime        *imeBridge
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	layoutPath string

	keys keyMap
	help help.Model

	finder     *finder
	showAccess bool
	access     access.Snapshot
	lastReport focus.Report

	pendingID    string
	pendingLabel string

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	backend        *backend.Watcher
	backendLastErr string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the widget tree for opts.Layout and wires the focus store
// to it.
func NewModel(opts Options) (*Model, error) {
	actions := opts.Actions
	if actions == nil {
		actions = DefaultActions()
	}
	tree, err := layout.Build(opts.Layout, actions)
	if err != nil {
		return nil, fmt.Errorf("build layout: %w", err)
	}
	events.Layout.Load(opts.LayoutPath, tree.Len())

	bridge := &imeBridge{tree: tree}
	store := focus.NewStore(bridge)
	if id, ok := layout.Resolve(tree, opts.Layout.Fallback); ok {
		store.SetFallback(id)
	}

	m := &Model{
		tree:       tree,
		store:      store,
		ime:        bridge,
		dispatcher: dispatcher.New(tree, store, actions),
		bus:        command.New(),
		layoutPath: opts.LayoutPath,
		keys:       defaultKeyMap(),
		help:       help.New(),
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		backend:    opts.Watcher,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Width = m.width
	m.registerHandlers()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages. Each message is one input batch:
// handlers only stage focus intents, and finishUpdate commits them once.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	if cmd := m.ime.forward(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):         m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(tea.FocusMsg{}):         m.handleWindowFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):          m.handleWindowBlurMsg,
		reflect.TypeOf(widget.PressedMsg{}):    m.handlePressedMsg,
		reflect.TypeOf(command.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
		reflect.TypeOf(reloadMsg{}):            m.handleReloadMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate runs the focus commit for the batch, then hands any commands
// produced by the IME bridge back to the program.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	report := m.store.Commit(m.tree)
	if report.Committed {
		m.lastReport = report
	}
	cmds = append(cmds, m.ime.drain()...)
	if m.showAccess {
		m.access = access.Build(m.tree, m.store.State())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Tree exposes the widget tree.
func (m *Model) Tree() *widget.Tree {
	return m.tree
}

// Focus exposes the committed focus state.
func (m *Model) Focus() focus.State {
	return m.store.State()
}

// LastReport returns the most recent commit that applied an intent.
func (m *Model) LastReport() focus.Report {
	return m.lastReport
}

func (m *Model) handleWindowFocusMsg(tea.Msg) tea.Cmd {
	m.store.SetWindowActive(true)
	return nil
}

func (m *Model) handleWindowBlurMsg(tea.Msg) tea.Cmd {
	m.store.SetWindowActive(false)
	return nil
}
