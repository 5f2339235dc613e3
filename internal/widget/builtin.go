package widget

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionFunc runs when a button is pressed, off the UI goroutine. values is a
// snapshot of the form taken at press time, keyed by node path. The returned
// string is shown as an informational message.
type ActionFunc func(values map[string]string) (string, error)

// PressedMsg is emitted when a button is activated by key or pointer.
type PressedMsg struct {
	ID     ID
	Label  string
	Action ActionFunc
}

// Group is a non-focusable container.
type Group struct {
	Title string

	within bool
}

func NewGroup(title string) *Group { return &Group{Title: title} }

func (*Group) AcceptsFocus() bool                     { return false }
func (*Group) AcceptsTextInput() bool                 { return false }
func (*Group) Role() string                           { return "group" }
func (g *Group) Label() string                        { return g.Title }
func (g *Group) SetLabel(label string)                { g.Title = label }
func (g *Group) View() string                         { return g.Title }
func (g *Group) FocusWithin() bool                    { return g.within }
func (g *Group) OnDescendantFocusChanged(within bool) { g.within = within }

// Label is static, non-focusable text.
type Label struct {
	Text string
}

func NewLabel(text string) *Label { return &Label{Text: text} }

func (*Label) AcceptsFocus() bool      { return false }
func (*Label) AcceptsTextInput() bool  { return false }
func (*Label) Role() string            { return "label" }
func (l *Label) Label() string         { return l.Text }
func (l *Label) SetLabel(label string) { l.Text = label }
func (l *Label) View() string          { return l.Text }

// Button takes focus when pressed and runs its action on enter, space or
// pointer press.
type Button struct {
	Text   string
	Action ActionFunc

	focused bool
}

func NewButton(text string, action ActionFunc) *Button {
	return &Button{Text: text, Action: action}
}

func (*Button) AcceptsFocus() bool      { return true }
func (*Button) AcceptsTextInput() bool  { return false }
func (*Button) Role() string            { return "button" }
func (b *Button) Label() string         { return b.Text }
func (b *Button) SetLabel(label string) { b.Text = label }
func (b *Button) View() string          { return "[ " + b.Text + " ]" }
func (b *Button) Focused() bool         { return b.focused }

func (b *Button) OnFocusChanged(focused bool) { b.focused = focused }

func (b *Button) OnPointerDown(self ID, req Requester) tea.Cmd {
	req.RequestFocus(self)
	return b.press(self)
}

func (b *Button) HandleKey(self ID, msg tea.KeyMsg, _ Requester) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		return true, b.press(self)
	}
	return false, nil
}

func (b *Button) press(self ID) tea.Cmd {
	msg := PressedMsg{ID: self, Label: b.Text, Action: b.Action}
	return func() tea.Msg { return msg }
}

// Checkbox toggles on space, enter or pointer press.
type Checkbox struct {
	Text    string
	Checked bool

	focused bool
}

func NewCheckbox(text string, checked bool) *Checkbox {
	return &Checkbox{Text: text, Checked: checked}
}

func (*Checkbox) AcceptsFocus() bool      { return true }
func (*Checkbox) AcceptsTextInput() bool  { return false }
func (*Checkbox) Role() string            { return "checkbox" }
func (c *Checkbox) Label() string         { return c.Text }
func (c *Checkbox) SetLabel(label string) { c.Text = label }
func (c *Checkbox) Focused() bool         { return c.focused }

func (c *Checkbox) View() string {
	if c.Checked {
		return "[x] " + c.Text
	}
	return "[ ] " + c.Text
}

func (c *Checkbox) OnFocusChanged(focused bool) { c.focused = focused }

func (c *Checkbox) OnPointerDown(self ID, req Requester) tea.Cmd {
	req.RequestFocus(self)
	c.Checked = !c.Checked
	return nil
}

func (c *Checkbox) HandleKey(_ ID, msg tea.KeyMsg, _ Requester) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		c.Checked = !c.Checked
		return true, nil
	}
	return false, nil
}

// TextInput is a single-line editor. Its IME session maps onto the focus
// state of the wrapped textinput model.
type TextInput struct {
	Title string
	// Sticky inputs request focus back when their IME session is ended.
	Sticky bool
	Input  textinput.Model

	focused  bool
	imeEnded int
}

func NewTextInput(title, placeholder string) *TextInput {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = 256
	in.Width = 32
	in.Cursor.SetMode(cursor.CursorStatic)
	return &TextInput{Title: title, Input: in}
}

func (*TextInput) AcceptsFocus() bool      { return true }
func (*TextInput) AcceptsTextInput() bool  { return true }
func (*TextInput) Role() string            { return "textbox" }
func (t *TextInput) Label() string         { return t.Title }
func (t *TextInput) SetLabel(label string) { t.Title = label }
func (t *TextInput) Value() string         { return t.Input.Value() }
func (t *TextInput) SetValue(v string)     { t.Input.SetValue(v) }
func (t *TextInput) Focused() bool         { return t.focused }
func (t *TextInput) Composing() bool       { return t.Input.Focused() }

// IMEEndedCount returns how many times the IME session was ended.
func (t *TextInput) IMEEndedCount() int { return t.imeEnded }

func (t *TextInput) View() string {
	return t.Title + ": " + t.Input.View()
}

func (t *TextInput) OnFocusChanged(focused bool) { t.focused = focused }

func (t *TextInput) OnPointerDown(self ID, req Requester) tea.Cmd {
	req.RequestFocus(self)
	return nil
}

func (t *TextInput) OnIMEEnded(self ID, req Requester) {
	t.imeEnded++
	if t.Sticky {
		req.RequestFocus(self)
	}
}

// BeginComposition starts the input session.
func (t *TextInput) BeginComposition() tea.Cmd {
	return t.Input.Focus()
}

// EndComposition ends the input session.
func (t *TextInput) EndComposition() {
	t.Input.Blur()
}

func (t *TextInput) HandleKey(_ ID, msg tea.KeyMsg, _ Requester) (bool, tea.Cmd) {
	if !t.Input.Focused() {
		return false, nil
	}
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete,
		tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd,
		tea.KeyCtrlA, tea.KeyCtrlE, tea.KeyCtrlK, tea.KeyCtrlU, tea.KeyCtrlW:
	default:
		return false, nil
	}
	var cmd tea.Cmd
	t.Input, cmd = t.Input.Update(msg)
	return true, cmd
}

// Update forwards non-key messages (cursor blinks) to the wrapped input.
func (t *TextInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.Input, cmd = t.Input.Update(msg)
	return cmd
}
