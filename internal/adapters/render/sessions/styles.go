package sessions

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	pinned     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	userRole   lipgloss.Style
	studioRole lipgloss.Style
	timestamp  lipgloss.Style
	content    lipgloss.Style
	errorText  lipgloss.Style
	mediaURL   lipgloss.Style
	attachment lipgloss.Style
	statusKey  lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	barText    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		pinned:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		section:    lipgloss.NewStyle().Bold(true).MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		userRole:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		studioRole: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		timestamp:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		content:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		errorText:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		mediaURL:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")).Underline(true),
		attachment: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		statusKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barText:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
