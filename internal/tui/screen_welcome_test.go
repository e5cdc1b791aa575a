//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/maynagashev/mediakeeper/models"
)

func TestWelcomeScreen_RecentUserShortcut(t *testing.T) {
	t.Run("Цифра подставляет имя и переводит к паролю", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.state = welcomeScreen
		m.caches.RecentUsers.ReplaceAll([]models.User{
			{UserID: 1, Username: "anna"},
			{UserID: 2, Username: "bernd"},
		})

		_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})

		assert.Equal(t, loginScreen, m.state)
		assert.Equal(t, "bernd", m.loginUsernameInput.Value())
		assert.Equal(t, loginFieldPassword, m.loginFocusedField)
	})

	t.Run("Цифра вне списка ничего не делает", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.state = welcomeScreen
		m.caches.RecentUsers.ReplaceAll([]models.User{{UserID: 1, Username: "anna"}})

		_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})

		assert.Equal(t, welcomeScreen, m.state)
		assert.Empty(t, m.loginUsernameInput.Value())
	})

	t.Run("Список в подсказке нумеруется", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.caches.RecentUsers.ReplaceAll([]models.User{{UserID: 1, Username: "anna"}})

		view := m.viewWelcomeScreen()

		assert.Contains(t, view, "1) anna")
	})
}
