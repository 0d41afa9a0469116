package users

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/userdir-cli/internal/domain"
)

// Render formats the managed user list for the terminal, newest first as the
// engine caches them.
func Render(users []domain.ManagedUser) string {
	return renderView(users, newStyles())
}

func renderView(users []domain.ManagedUser, s styles) string {
	lines := []string{
		s.title.Render("Managed Users"),
		s.header.Render(fmt.Sprintf("users: %d", len(users))),
	}

	if len(users) == 0 {
		lines = append(lines, s.empty.Render("No users in the directory."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, user := range users {
		lines = append(lines, renderUser(user, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderUser(user domain.ManagedUser, s styles) string {
	roleStyle := s.role
	if user.Role == domain.RoleAdmin {
		roleStyle = s.admin
	}

	line := fmt.Sprintf("%s  %s  %s",
		s.meta.Render(fmt.Sprintf("#%d", user.ID)),
		s.email.Render(user.Email),
		roleStyle.Render(string(user.Role)),
	)

	if user.CreatedAt != nil {
		line += "  " + s.meta.Render("created "+user.CreatedAt.Format("2006-01-02"))
	}

	return line
}
