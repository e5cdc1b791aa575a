package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Индексы полей экрана входа. Третье "поле" - чекбокс "оставаться в системе".
const (
	loginFieldUsername = iota
	loginFieldPassword
	loginFieldStay
	numLoginFields
)

// updateLoginScreen обрабатывает ввод данных для входа.
//
//nolint:gocognit // Переключение фокуса между полями и чекбоксом
func (m *model) updateLoginScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateLoginInputs(msg)
	}

	switch keyMsg.String() {
	case keyEsc:
		m.state = welcomeScreen
		m.loginUsernameInput.Blur()
		m.loginPasswordInput.Blur()
		m.err = nil
		return m, tea.ClearScreen
	case keyTab, keyDown:
		m.loginFocusedField = (m.loginFocusedField + 1) % numLoginFields
		m.applyLoginFocus()
		return m, textinput.Blink
	case keyShiftTab, keyUp:
		m.loginFocusedField = (m.loginFocusedField + numLoginFields - 1) % numLoginFields
		m.applyLoginFocus()
		return m, textinput.Blink
	case " ":
		if m.loginFocusedField == loginFieldStay {
			m.stayLoggedIn = !m.stayLoggedIn
			return m, nil
		}
	case keyEnter:
		if m.loginFocusedField == loginFieldUsername {
			m.loginFocusedField = loginFieldPassword
			m.applyLoginFocus()
			return m, textinput.Blink
		}
		return m.submitLogin()
	}

	return m.updateLoginInputs(msg)
}

// applyLoginFocus переводит фокус на активное поле.
func (m *model) applyLoginFocus() {
	m.loginUsernameInput.Blur()
	m.loginPasswordInput.Blur()
	switch m.loginFocusedField {
	case loginFieldUsername:
		m.loginUsernameInput.Focus()
	case loginFieldPassword:
		m.loginPasswordInput.Focus()
	}
}

// updateLoginInputs передает сообщение активному текстовому полю.
func (m *model) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.loginFocusedField {
	case loginFieldUsername:
		m.loginUsernameInput, cmd = m.loginUsernameInput.Update(msg)
	case loginFieldPassword:
		m.loginPasswordInput, cmd = m.loginPasswordInput.Update(msg)
	}
	return m, cmd
}

// submitLogin запускает вход с введенными данными.
func (m *model) submitLogin() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.loginUsernameInput.Value())
	password := m.loginPasswordInput.Value()
	if username == "" || password == "" {
		return m.setStatusMessage("Введите имя пользователя и пароль")
	}
	loginCmd := m.makeLoginCmd(username, password, m.stayLoggedIn)
	statusModel, statusCmd := m.setStatusMessage("Выполняется вход...")
	return statusModel, tea.Batch(loginCmd, statusCmd)
}

// viewLoginScreen отображает экран входа.
func (m *model) viewLoginScreen() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render("Вход в учетную запись") + "\n\n")
	b.WriteString(m.loginUsernameInput.View() + "\n")
	b.WriteString(m.loginPasswordInput.View() + "\n")

	checkbox := "[ ]"
	if m.stayLoggedIn {
		checkbox = "[x]"
	}
	stayLine := checkbox + " Оставаться в системе"
	if m.loginFocusedField == loginFieldStay {
		stayLine = m.theme.selected.Render("> " + stayLine)
	} else {
		stayLine = "  " + stayLine
	}
	b.WriteString(stayLine + "\n\n")

	if m.err != nil {
		b.WriteString(m.theme.errText.Render("Ошибка: "+m.err.Error()) + "\n")
	}
	return b.String()
}
