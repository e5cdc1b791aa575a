package tui

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/internal/api"
	"github.com/maynagashev/mediakeeper/internal/auth"
	"github.com/maynagashev/mediakeeper/internal/cache"
	"github.com/maynagashev/mediakeeper/internal/isbn"
)

const (
	statusMessageTimeout   = 2 * time.Second // Время отображения статусных сообщений
	helpStatusHeightOffset = 2               // Высота строки помощи и статуса
)

// Init - команда, выполняемая при запуске приложения.
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.session.Session().Authenticated {
		// Сессия восстановлена из сохраненного токена
		cmds = append(cmds, m.fetchAllCmd())
	} else {
		cmds = append(cmds, m.fetchRecentUsersCmd())
	}
	return tea.Batch(cmds...)
}

// setStatusMessage устанавливает статусное сообщение и запускает
// команду для его очистки через таймаут.
func (m *model) setStatusMessage(status string) (tea.Model, tea.Cmd) {
	m.status = status
	return m, clearStatusCmd(statusMessageTimeout)
}

// getMainContentView возвращает основное содержимое для текущего состояния.
func (m *model) getMainContentView() string {
	switch m.state {
	case welcomeScreen:
		return m.viewWelcomeScreen()
	case loginScreen:
		return m.viewLoginScreen()
	case registerScreen:
		return m.viewRegisterScreen()
	case menuScreen:
		return m.mainMenu.View()
	case mediaListScreen:
		return m.mediaList.View()
	case mediaFormScreen:
		return m.viewMediaFormScreen()
	case mediaDetailScreen:
		return m.viewMediaDetailScreen()
	case categoryPickScreen:
		return m.categoryPickList.View()
	case personListScreen:
		return m.personList.View()
	case personFormScreen:
		return m.viewPersonFormScreen()
	case loanListScreen:
		return m.viewLoanListScreen()
	case loanPersonScreen:
		return m.loanPersonList.View()
	case loanFormScreen:
		return m.viewLoanFormScreen()
	case categoryListScreen:
		return m.categoryList.View()
	case categoryFormScreen:
		return m.viewCategoryFormScreen()
	case statisticsScreen:
		return m.viewStatisticsScreen()
	default:
		return "Неизвестное состояние!"
	}
}

// helpFor возвращает строку подсказки для экрана.
func helpFor(state screenState) string {
	switch state {
	case welcomeScreen:
		return "Enter: войти | 1-9: вход за недавнего пользователя | r: регистрация | q: выход"
	case loginScreen:
		return "Tab: следующее поле | Пробел на чекбоксе: переключить | Enter: войти | Esc: назад"
	case registerScreen:
		return "Tab: следующее поле | Enter: зарегистрироваться | Esc: назад"
	case menuScreen:
		return "Enter: выбрать | q: выход"
	case mediaListScreen:
		return "Enter: детали | a: добавить | e: изменить | d: удалить | f: избранное | v: выдать | r: обновить | Esc: меню"
	case mediaFormScreen:
		return "Tab: следующее поле | Ctrl+B: поиск по ISBN | Enter: сохранить | Esc: отмена"
	case mediaDetailScreen:
		return "f: избранное | c: категории | Esc: назад"
	case categoryPickScreen:
		return "Enter: назначить/снять | Esc: назад"
	case personListScreen:
		return "a: добавить | e: изменить | d: удалить | r: обновить | Esc: меню"
	case personFormScreen:
		return "Tab: следующее поле | Enter: сохранить | Esc: отмена"
	case loanListScreen:
		return "f: фильтр | v: вернуть | r: обновить | Esc: меню"
	case loanPersonScreen:
		return "Enter: выбрать персону | Esc: отмена"
	case loanFormScreen:
		return "Enter: оформить выдачу | Esc: отмена"
	case categoryListScreen:
		return "a: добавить | d: удалить | r: обновить | Esc: меню"
	case categoryFormScreen:
		return "Enter: создать | Esc: отмена"
	case statisticsScreen:
		return "p: период таймлайна | Esc: меню"
	default:
		return ""
	}
}

// getDebugInfoString генерирует отладочную информацию.
func (m *model) getDebugInfoString() string {
	var debugInfo strings.Builder
	session := m.session.Session()
	debugInfo.WriteString(fmt.Sprintf(" [State: %d]\n", m.state))
	debugInfo.WriteString(fmt.Sprintf(" [URL: %s]\n", m.serverURL))
	debugInfo.WriteString(fmt.Sprintf(" [User: %s]\n", session.Username))
	debugInfo.WriteString(fmt.Sprintf(" [Authenticated: %t]\n", session.Authenticated))
	debugInfo.WriteString(fmt.Sprintf(" [Media: %d, Persons: %d, Loans: %d, Categories: %d]\n",
		m.caches.Media.Len(), m.caches.Persons.Len(), m.caches.Loans.Len(), m.caches.Categories.Len()))
	return debugInfo.String()
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	mainContent := m.getMainContentView()
	help := m.theme.subtle.Render(helpFor(m.state))

	// --- Формируем подвал (статус + отладка) --- //
	var footer strings.Builder
	if m.status != "" {
		footer.WriteString("\n")
		footer.WriteString(m.theme.status.Render(m.status))
	}
	if m.debugMode {
		footer.WriteString("\n\n---\nОтладка:\n")
		footer.WriteString(m.getDebugInfoString())
	}

	styledContent := m.theme.doc.Render(mainContent)
	return fmt.Sprintf("%s\n%s%s", styledContent, help, footer.String())
}

// Start запускает TUI приложение.
func Start(
	apiClient api.Client,
	books *isbn.Client,
	session *auth.Manager,
	storage *auth.Storage,
	serverURL string,
	debugMode bool,
) {
	caches := cache.NewSet()
	m := initModel(apiClient, books, session, storage, caches, serverURL, debugMode)

	// Пытаемся восстановить сессию из сохраненного токена
	restored := session.Restore(time.Now())
	if restored.Authenticated {
		slog.Info("Сессия восстановлена", "username", restored.Username)
		m.state = menuScreen
	} else {
		m.loginUsernameInput.Focus()
		m.state = welcomeScreen
	}

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("Ошибка при запуске TUI", "error", err)
		os.Exit(1)
	}
}
