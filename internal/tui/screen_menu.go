package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// updateMenuScreen обрабатывает выбор пункта главного меню.
func (m *model) updateMenuScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.mainMenu, cmd = m.mainMenu.Update(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, cmd
	}

	switch keyMsg.String() {
	case keyQuit:
		return m, tea.Quit
	case keyEnter:
		item, isMenuItem := m.mainMenu.SelectedItem().(menuItem)
		if !isMenuItem {
			return m, cmd
		}
		switch item.id {
		case "media":
			m.state = mediaListScreen
			m.refreshMediaList()
			return m, tea.Batch(cmd, m.fetchMediaCmd(), tea.ClearScreen)
		case "persons":
			m.state = personListScreen
			m.refreshPersonList()
			return m, tea.Batch(cmd, m.fetchPersonsCmd(), tea.ClearScreen)
		case "loans":
			m.state = loanListScreen
			m.refreshLoanList()
			return m, tea.Batch(cmd, m.fetchLoansCmd(m.loanScope, time.Now()), tea.ClearScreen)
		case "categories":
			m.state = categoryListScreen
			m.refreshCategoryList()
			return m, tea.Batch(cmd, m.fetchCategoriesCmd(), tea.ClearScreen)
		case "statistics":
			m.state = statisticsScreen
			// Статистика считается по всем выдачам и всем медиа
			return m, tea.Batch(cmd, m.fetchLoansCmd(loanScopeAll, time.Now()), m.fetchMediaCmd(), tea.ClearScreen)
		case "theme":
			return m.toggleTheme()
		case "logout":
			return m.logout()
		}
	}
	return m, cmd
}
