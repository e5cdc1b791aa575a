package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateWelcomeScreen обрабатывает клавиши приветственного экрана.
func (m *model) updateWelcomeScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit:
			return m, tea.Quit
		case keyEnter:
			m.state = loginScreen
			m.loginFocusedField = 0
			m.loginUsernameInput.Focus()
			m.loginPasswordInput.Blur()
			return m, textinput.Blink
		case "r":
			m.state = registerScreen
			m.registerFocusedField = 0
			focusField(m.registerInputs, 0)
			return m, textinput.Blink
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			// Быстрый вход: цифра подставляет имя недавнего пользователя
			idx := int(keyMsg.String()[0] - '1')
			users := m.caches.RecentUsers.Items()
			if idx < len(users) {
				m.state = loginScreen
				m.loginUsernameInput.SetValue(users[idx].Username)
				m.loginFocusedField = loginFieldPassword
				m.applyLoginFocus()
				return m, textinput.Blink
			}
		}
	}
	return m, nil
}

// viewWelcomeScreen отображает приветственный экран.
func (m *model) viewWelcomeScreen() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render("MediaKeeper") + "\n\n")
	b.WriteString("Учет домашней медиатеки и выдачи медиа.\n\n")

	// Подсказка с недавними пользователями (если сервер их отдал),
	// цифра рядом с именем работает как быстрый вход
	users := m.caches.RecentUsers.Items()
	if len(users) > 0 {
		names := make([]string, 0, len(users))
		for i, u := range users {
			if i >= 9 {
				break
			}
			names = append(names, fmt.Sprintf("%d) %s", i+1, u.Username))
		}
		b.WriteString(m.theme.subtle.Render("Недавние пользователи: "+strings.Join(names, "  ")) + "\n\n")
	}

	b.WriteString("Нажмите Enter для входа или r для регистрации.\n")
	return b.String()
}
