package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/focustree/internal/access"
	"github.com/atomicstack/focustree/internal/focus"
	"github.com/atomicstack/focustree/internal/layout"
	"github.com/atomicstack/focustree/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// headerRows is the number of rows above the first tree row.
const headerRows = 1

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// treeRow is a rendered node. Rows are laid out in preorder, so a row index
// maps back to a node for pointer hit testing.
type treeRow struct {
	id   widget.ID
	line styledLine
}

// View implements tea.Model.
func (m *Model) View() string {
	// Reserve the last row for the status bar.
	lines := limitHeight(m.bodyLines(), m.height-1, m.width)
	lines = applyWidth(lines, m.width)

	status := applyWidth([]styledLine{m.statusLine()}, m.width)
	lines = append(lines, status...)
	return renderLines(lines)
}

// bodyLines renders everything above the status bar before height limiting.
func (m *Model) bodyLines() []styledLine {
	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.headerText(), style: styles.Header})

	rows := m.treeRows()
	if len(rows) == 0 {
		lines = append(lines, styledLine{text: "(nothing to show)", style: styles.Info})
	}
	for _, row := range rows {
		lines = append(lines, row.line)
	}
	if m.finder != nil {
		lines = append(lines, styledLine{})
		lines = append(lines, m.finderLines()...)
	}
	if m.showAccess {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "Accessibility", style: styles.PanelTitle})
		for _, line := range m.access.Lines() {
			lines = append(lines, styledLine{text: line, style: styles.PanelBody})
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.help.View(m.keys), raw: true})
	}
	return lines
}

// rowHidden reports whether screen row y shows no body content: the status
// bar, or the truncation marker when the body did not fit.
func (m *Model) rowHidden(y int) bool {
	if m.height <= 0 {
		return false
	}
	limit := m.height - 1
	if y >= limit {
		return true
	}
	return len(m.bodyLines()) > limit && y >= limit-1
}

func (m *Model) headerText() string {
	title := "focustree"
	if n, ok := m.tree.Node(m.tree.Root()); ok {
		if label := widget.LabelOf(n.Widget()); label != "" {
			title = label
		}
	}
	if !m.store.State().WindowActive {
		title += " (inactive)"
	}
	return title
}

// treeRows renders every visible node below the root. Stashed subtrees are
// skipped entirely.
func (m *Model) treeRows() []treeRow {
	st := m.store.State()
	root := m.tree.Root()
	rows := make([]treeRow, 0, m.tree.Len())
	m.tree.Walk(func(n *widget.Node, depth int) bool {
		if n.ID() == root {
			return true
		}
		if n.Stashed() {
			return false
		}
		rows = append(rows, treeRow{id: n.ID(), line: m.buildNodeLine(n, depth, st)})
		return true
	})
	return rows
}

func (m *Model) buildNodeLine(n *widget.Node, depth int, st focus.State) styledLine {
	indent := strings.Repeat("  ", depth-1)
	focused := n.ID() == st.Focused
	marker := " "
	markerStyle := styles.ItemIndicator
	switch {
	case focused:
		marker = "▌"
		markerStyle = styles.FocusIndicator
	case n.ID() == st.Anchor:
		marker = "›"
		markerStyle = styles.Anchor
	}

	w := n.Widget()
	content := widget.LabelOf(w)
	if v, ok := w.(widget.Viewer); ok {
		content = v.View()
	}
	if content == "" {
		content = n.Name()
	}

	if _, ok := w.(*widget.TextInput); ok {
		// The textinput view carries its own cursor escapes.
		prefix := marker
		if markerStyle != nil {
			prefix = markerStyle.Render(marker)
		}
		return styledLine{text: indent + prefix + " " + content, raw: true}
	}

	lineStyle := styles.Item
	switch g := w.(type) {
	case *widget.Group:
		content = "▾ " + content
		lineStyle = styles.Group
		if g.FocusWithin() {
			lineStyle = styles.GroupWithin
		}
	case *widget.Label:
		lineStyle = styles.Label
	}
	if focused {
		lineStyle = styles.Focused
	} else if !m.tree.Interactive(n.ID()) {
		lineStyle = styles.Disabled
	}
	head := indent + marker
	return styledLine{
		text:          head + " " + content,
		style:         lineStyle,
		prefixStyle:   markerStyle,
		highlightFrom: len([]rune(head)),
	}
}

// nodeAtRow maps a screen row to the node rendered there.
func (m *Model) nodeAtRow(y int) (widget.ID, bool) {
	idx := y - headerRows
	if idx < 0 {
		return widget.ID{}, false
	}
	if m.rowHidden(y) {
		return widget.ID{}, false
	}
	rows := m.treeRows()
	if idx >= len(rows) {
		return widget.ID{}, false
	}
	return rows[idx].id, true
}

// accessEntryAtRow maps a screen row inside the accessibility panel to its
// entry. The panel sits below the tree after a blank, a title and the table
// header.
func (m *Model) accessEntryAtRow(y int) (access.Entry, bool) {
	if !m.showAccess || m.finder != nil {
		return access.Entry{}, false
	}
	if m.rowHidden(y) {
		return access.Entry{}, false
	}
	rows := len(m.treeRows())
	if rows == 0 {
		rows = 1
	}
	idx := y - (headerRows + rows + 3)
	if idx < 0 || idx >= len(m.access.Entries) {
		return access.Entry{}, false
	}
	return m.access.Entries[idx], true
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if warn, msg := m.hasBackendIssue(); warn {
		return styledLine{text: fmt.Sprintf("Layout: %s", msg), style: styles.Error}
	}
	st := m.store.State()
	parts := []string{
		"focus " + m.describe(st.Focused),
		"anchor " + m.describe(st.Anchor),
	}
	if st.IMEActive {
		parts = append(parts, "ime")
	}
	if m.verbose && m.lastReport.Committed {
		parts = append(parts, fmt.Sprintf("commit %s→%s (%d)",
			m.lastReport.Previous, m.lastReport.Focused, len(m.lastReport.Notifications)))
	}
	return styledLine{text: strings.Join(parts, "  "), style: styles.Status}
}

func (m *Model) describe(id widget.ID) string {
	if id.IsZero() {
		return "none"
	}
	if !m.tree.Contains(id) {
		return "(removed)"
	}
	if id == m.tree.Root() {
		return "root"
	}
	return layout.PathOf(m.tree, id)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if ansi.StringWidth(text) > width {
				text = ansi.Truncate(text, width, "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
