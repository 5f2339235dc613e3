package ui

import (
	"sort"

	"github.com/atomicstack/focustree/internal/layout"
	"github.com/atomicstack/focustree/internal/logging/events"
	"github.com/atomicstack/focustree/internal/widget"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const finderMaxMatches = 6

// finder is the jump-to-node prompt. It sits outside the widget tree; picking
// a match stages a focus request like any other trigger.
type finder struct {
	input      textinput.Model
	candidates []finderMatch
	matches    []finderMatch
	cursor     int
}

type finderMatch struct {
	id    widget.ID
	path  string
	label string
}

func (f finderMatch) text() string {
	if f.label == "" || f.label == f.path {
		return f.path
	}
	return f.label + " (" + f.path + ")"
}

func (m *Model) openFinder() tea.Cmd {
	in := textinput.New()
	in.Prompt = "find: "
	in.Placeholder = "node label or path"
	in.Cursor.SetMode(cursor.CursorStatic)
	if styles.FinderPrompt != nil {
		in.PromptStyle = *styles.FinderPrompt
	}
	f := &finder{input: in}
	m.tree.Walk(func(n *widget.Node, _ int) bool {
		if n.Stashed() {
			return false
		}
		if n.AcceptsFocus() && m.tree.Interactive(n.ID()) {
			f.candidates = append(f.candidates, finderMatch{
				id:    n.ID(),
				path:  layout.PathOf(m.tree, n.ID()),
				label: widget.LabelOf(n.Widget()),
			})
		}
		return true
	})
	f.matches = f.candidates
	m.finder = f
	events.Finder.Open()
	return m.finder.input.Focus()
}

func (m *Model) closeFinder(selected bool) {
	if m.finder == nil {
		return
	}
	if !selected {
		events.Finder.Cancel(m.finder.input.Value())
	}
	m.finder = nil
}

func (m *Model) handleFinderKey(msg tea.KeyMsg) tea.Cmd {
	f := m.finder
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closeFinder(false)
		return nil
	case tea.KeyEnter:
		if f.cursor < len(f.matches) {
			match := f.matches[f.cursor]
			events.Finder.Select(f.input.Value(), match.id.String())
			m.store.RequestFocus(match.id)
			m.closeFinder(true)
			return nil
		}
		m.closeFinder(false)
		return nil
	case tea.KeyUp, tea.KeyCtrlP:
		if f.cursor > 0 {
			f.cursor--
		}
		return nil
	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		if f.cursor < len(f.matches)-1 {
			f.cursor++
		}
		return nil
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if query := f.input.Value(); query != before {
		f.filter(query)
		events.Finder.Query(query, len(f.matches))
	}
	return cmd
}

// filter ranks candidates by fuzzy distance. Ties keep tree order.
func (f *finder) filter(query string) {
	f.cursor = 0
	if query == "" {
		f.matches = f.candidates
		return
	}
	targets := make([]string, len(f.candidates))
	for i, c := range f.candidates {
		targets[i] = c.text()
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	f.matches = make([]finderMatch, len(ranks))
	for i, r := range ranks {
		f.matches[i] = f.candidates[r.OriginalIndex]
	}
}

func (m *Model) finderLines() []styledLine {
	f := m.finder
	lines := []styledLine{{text: f.input.View(), raw: true}}
	if len(f.matches) == 0 {
		return append(lines, styledLine{text: "  no matches", style: styles.Info})
	}
	start := 0
	if f.cursor >= finderMaxMatches {
		start = f.cursor - finderMaxMatches + 1
	}
	end := start + finderMaxMatches
	if end > len(f.matches) {
		end = len(f.matches)
	}
	for i := start; i < end; i++ {
		style := styles.FinderMatch
		prefix := "  "
		if i == f.cursor {
			style = styles.FinderSelected
			prefix = "> "
		}
		lines = append(lines, styledLine{text: prefix + f.matches[i].text(), style: style})
	}
	return lines
}
