package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateCategoryListScreen обрабатывает сообщения для экрана категорий.
func (m *model) updateCategoryListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.categoryList, cmd = m.categoryList.Update(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.categoryList.FilterState() != list.Unfiltered {
		return m, cmd
	}

	switch keyMsg.String() {
	case keyEsc:
		m.state = menuScreen
		return m, tea.ClearScreen
	case keyQuit:
		return m, tea.Quit
	case keyAdd:
		m.categoryNameInput.SetValue("")
		m.categoryNameInput.Focus()
		m.state = categoryFormScreen
		return m, textinput.Blink
	case keyDelete:
		if category, found := m.selectedCategory(); found {
			return m, tea.Batch(cmd, m.deleteCategoryCmd(category.CategoryID))
		}
	case "r":
		return m, tea.Batch(cmd, m.fetchCategoriesCmd())
	}
	return m, cmd
}

// updateCategoryFormScreen обрабатывает ввод имени новой категории.
func (m *model) updateCategoryFormScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = categoryListScreen
			m.categoryNameInput.Blur()
			return m, tea.ClearScreen
		case keyEnter:
			name := strings.TrimSpace(m.categoryNameInput.Value())
			if name == "" {
				return m.setStatusMessage("Введите название категории")
			}
			createCmd := m.createCategoryCmd(name)
			statusModel, statusCmd := m.setStatusMessage("Создание категории...")
			return statusModel, tea.Batch(createCmd, statusCmd)
		}
	}
	var cmd tea.Cmd
	m.categoryNameInput, cmd = m.categoryNameInput.Update(msg)
	return m, cmd
}

// viewCategoryFormScreen отображает форму новой категории.
func (m *model) viewCategoryFormScreen() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render("Новая категория") + "\n\n")
	b.WriteString(m.categoryNameInput.View() + "\n\n")
	if m.err != nil {
		b.WriteString(m.theme.errText.Render("Ошибка: "+m.err.Error()) + "\n")
	}
	return b.String()
}
