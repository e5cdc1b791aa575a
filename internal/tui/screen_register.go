package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/internal/validate"
)

// updateRegisterScreen обрабатывает ввод данных для регистрации.
func (m *model) updateRegisterScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleFormInput(
		msg,
		m.registerInputs,
		&m.registerFocusedField,
		m.submitRegister,
		welcomeScreen,
	)
}

// submitRegister проверяет форму и запускает регистрацию.
func (m *model) submitRegister() (tea.Model, tea.Cmd) {
	form := validate.RegisterForm{
		Email:    strings.TrimSpace(m.registerInputs[registerFieldEmail].Value()),
		Username: strings.TrimSpace(m.registerInputs[registerFieldUsername].Value()),
		Password: m.registerInputs[registerFieldPassword].Value(),
	}
	if errs := validate.Register(form); errs != nil {
		m.fieldErrors = errs
		return m, nil
	}
	m.fieldErrors = nil
	registerCmd := m.makeRegisterCmd(form.Email, form.Username, form.Password)
	statusModel, statusCmd := m.setStatusMessage("Выполняется регистрация...")
	return statusModel, tea.Batch(registerCmd, statusCmd)
}

// viewRegisterScreen отображает экран регистрации.
func (m *model) viewRegisterScreen() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render("Регистрация") + "\n\n")

	fieldNames := [numRegisterFields]string{"Email", "Username", "Password"}
	for i, input := range m.registerInputs {
		b.WriteString(input.View() + "\n")
		if msg, ok := m.fieldErrors[fieldNames[i]]; ok {
			b.WriteString(m.theme.errText.Render("  "+msg) + "\n")
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.theme.errText.Render("Ошибка: "+m.err.Error()) + "\n")
	}
	return b.String()
}
