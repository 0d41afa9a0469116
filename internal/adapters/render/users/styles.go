package users

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	email  lipgloss.Style
	admin  lipgloss.Style
	role   lipgloss.Style
	meta   lipgloss.Style
	empty  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		email:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		admin:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		role:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:  lipgloss.NewStyle().Faint(true),
	}
}
