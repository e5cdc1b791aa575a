package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	docStyleMarginVertical   = 1
	docStyleMarginHorizontal = 2
)

// theme - набор стилей для отрисовки. Светлый и темный варианты
// переключаются из главного меню, выбор сохраняется между запусками.
type theme struct {
	doc      lipgloss.Style
	title    lipgloss.Style
	subtle   lipgloss.Style
	errText  lipgloss.Style
	status   lipgloss.Style
	favorite lipgloss.Style
	overdue  lipgloss.Style
	selected lipgloss.Style
}

func darkTheme() theme {
	return theme{
		doc:      lipgloss.NewStyle().Margin(docStyleMarginVertical, docStyleMarginHorizontal),
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		favorite: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	}
}

func lightTheme() theme {
	return theme{
		doc:      lipgloss.NewStyle().Margin(docStyleMarginVertical, docStyleMarginHorizontal),
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1A1A1A")),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#C4225A")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		favorite: lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("90")),
	}
}

// themeByName возвращает тему по сохраненному имени.
func themeByName(name string) (theme, bool) {
	if name == "light" {
		return lightTheme(), false
	}
	return darkTheme(), true
}
