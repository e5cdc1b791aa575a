//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUpdateLoginScreen проверяет обработку клавиш на экране входа.
func TestUpdateLoginScreen(t *testing.T) {
	tests := []struct {
		name          string
		inputMsg      tea.Msg
		initialField  int
		expectedField int
		expectedState screenState
		initModel     func(m *model)
	}{
		{
			name:          "ПереключениеПоляВперед",
			inputMsg:      tea.KeyMsg{Type: tea.KeyTab},
			initialField:  loginFieldUsername,
			expectedField: loginFieldPassword,
			expectedState: loginScreen,
			initModel:     func(_ *model) {},
		},
		{
			name:          "ПереключениеНаЧекбокс",
			inputMsg:      tea.KeyMsg{Type: tea.KeyTab},
			initialField:  loginFieldPassword,
			expectedField: loginFieldStay,
			expectedState: loginScreen,
			initModel:     func(_ *model) {},
		},
		{
			name:          "ПереключениеПоляНазад",
			inputMsg:      tea.KeyMsg{Type: tea.KeyShiftTab},
			initialField:  loginFieldPassword,
			expectedField: loginFieldUsername,
			expectedState: loginScreen,
			initModel:     func(_ *model) {},
		},
		{
			name:          "ОтменаВхода",
			inputMsg:      tea.KeyMsg{Type: tea.KeyEsc},
			initialField:  loginFieldUsername,
			expectedField: loginFieldUsername,
			expectedState: welcomeScreen,
			initModel:     func(_ *model) {},
		},
		{
			name:          "EnterВПервомПолеПереводитФокус",
			inputMsg:      tea.KeyMsg{Type: tea.KeyEnter},
			initialField:  loginFieldUsername,
			expectedField: loginFieldPassword,
			expectedState: loginScreen,
			initModel:     func(_ *model) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m.state = loginScreen
			m.loginFocusedField = tt.initialField
			tt.initModel(m)

			updated, _ := m.updateLoginScreen(tt.inputMsg)

			updatedModel, ok := updated.(*model)
			require.True(t, ok)
			assert.Equal(t, tt.expectedField, updatedModel.loginFocusedField)
			assert.Equal(t, tt.expectedState, updatedModel.state)
		})
	}
}

func TestUpdateLoginScreen_StayLoggedInToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = loginScreen
	m.loginFocusedField = loginFieldStay
	require.False(t, m.stayLoggedIn)

	_, _ = m.updateLoginScreen(tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.stayLoggedIn)

	_, _ = m.updateLoginScreen(tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.stayLoggedIn)
}

func TestSubmitLogin_EmptyFields(t *testing.T) {
	m, client := newTestModel(t)
	m.state = loginScreen

	_, _ = m.submitLogin()

	// Без имени и пароля запрос к серверу не отправляется
	assert.Contains(t, m.status, "Введите")
	client.AssertNotCalled(t, "Login")
}

func TestSubmitLogin_ReturnsCommand(t *testing.T) {
	m, _ := newTestModel(t)
	m.loginUsernameInput.SetValue("anna")
	m.loginPasswordInput.SetValue("secret-password")

	_, cmd := m.submitLogin()

	require.NotNil(t, cmd)
	assert.Contains(t, m.status, "вход")
}
