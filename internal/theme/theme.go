package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header         *lipgloss.Style
	Group          *lipgloss.Style
	GroupWithin    *lipgloss.Style
	Item           *lipgloss.Style
	ItemIndicator  *lipgloss.Style
	Focused        *lipgloss.Style
	FocusIndicator *lipgloss.Style
	Anchor         *lipgloss.Style
	Disabled       *lipgloss.Style
	Label          *lipgloss.Style
	Error          *lipgloss.Style
	Info           *lipgloss.Style
	Footer         *lipgloss.Style
	FinderPrompt   *lipgloss.Style
	FinderMatch    *lipgloss.Style
	FinderSelected *lipgloss.Style
	PanelTitle     *lipgloss.Style
	PanelBody      *lipgloss.Style
	Status         *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Group: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	GroupWithin: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Focused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	FocusIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	Anchor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Disabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FinderPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FinderMatch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FinderSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PanelBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
