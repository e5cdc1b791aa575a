package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/internal/api"
)

// Update обрабатывает входящие сообщения.
//
//nolint:gocognit,funlen,gocyclo // Роутинг по экранам и типам сообщений
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// == Глобальные сообщения (не зависят от экрана) ==
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := m.theme.doc.GetFrameSize()
		listWidth := msg.Width - h
		listHeight := msg.Height - v - helpStatusHeightOffset

		m.mainMenu.SetSize(listWidth, listHeight)
		m.mediaList.SetSize(listWidth, listHeight)
		m.personList.SetSize(listWidth, listHeight)
		m.loanList.SetSize(listWidth, listHeight)
		m.categoryList.SetSize(listWidth, listHeight)
		m.categoryPickList.SetSize(listWidth, listHeight)
		m.loanPersonList.SetSize(listWidth, listHeight)
		return m, nil

	case clearStatusMsg:
		// Ошибка показывается столько же, сколько статусная строка
		m.status = ""
		m.err = nil
		return m, nil

	case loginSuccessMsg:
		return m.handleLoginSuccess(msg)

	case registerSuccessMsg:
		// После регистрации возвращаемся на экран входа
		m.state = loginScreen
		m.err = nil
		m.fieldErrors = nil
		m.loginFocusedField = 0
		m.loginUsernameInput.SetValue(m.registerInputs[registerFieldUsername].Value())
		m.loginUsernameInput.Focus()
		m.loginPasswordInput.Blur()
		slog.Info("Регистрация выполнена, переход к входу")
		return m.setStatusMessage("Регистрация выполнена, теперь войдите")

	case recentUsersMsg:
		m.caches.RecentUsers.ReplaceAll(msg.users)
		return m, nil

	case mediaLoadedMsg:
		m.caches.Media.ReplaceAll(msg.items)
		m.refreshMediaList()
		return m, nil

	case mediaSavedMsg:
		m.err = nil
		if msg.created {
			m.caches.Media.Append(msg.media)
		} else {
			m.caches.Media.Upsert(msg.media)
		}
		m.refreshMediaList()
		if m.state == mediaFormScreen {
			m.state = mediaListScreen
		}
		return m.setStatusMessage("Сохранено: " + msg.media.Title)

	case mediaUpdatedMsg:
		m.err = nil
		m.caches.Media.Upsert(msg.media)
		m.refreshMediaList()
		if m.state == categoryPickScreen {
			m.refreshCategoryPickList()
		}
		return m, nil

	case mediaDeletedMsg:
		m.caches.Media.Remove(msg.id)
		m.refreshMediaList()
		return m.setStatusMessage("Медиа удалено")

	case personsLoadedMsg:
		m.caches.Persons.ReplaceAll(msg.items)
		m.refreshPersonList()
		return m, nil

	case personSavedMsg:
		m.err = nil
		if msg.created {
			m.caches.Persons.Append(msg.person)
		} else {
			m.caches.Persons.Upsert(msg.person)
		}
		m.refreshPersonList()
		if m.state == personFormScreen {
			m.state = personListScreen
		}
		return m.setStatusMessage("Сохранено: " + msg.person.FullName())

	case personDeletedMsg:
		m.caches.Persons.Remove(msg.id)
		m.refreshPersonList()
		return m.setStatusMessage("Персона удалена")

	case categoriesLoadedMsg:
		m.caches.Categories.ReplaceAll(msg.items)
		m.refreshCategoryList()
		return m, nil

	case categoryCreatedMsg:
		m.err = nil
		m.caches.Categories.Append(msg.category)
		m.refreshCategoryList()
		if m.state == categoryFormScreen {
			m.state = categoryListScreen
		}
		return m.setStatusMessage("Категория создана")

	case categoryDeletedMsg:
		m.caches.Categories.Remove(msg.id)
		m.refreshCategoryList()
		// Серверная каскадная чистка категорий у медиа, перечитываем медиа
		return m, m.fetchMediaCmd()

	case loansLoadedMsg:
		switch msg.scope {
		case loanScopeActive:
			m.caches.ActiveLoans.ReplaceAll(msg.items)
		case loanScopeOverdue:
			m.caches.OverdueLoans.ReplaceAll(msg.items)
		default:
			m.caches.Loans.ReplaceAll(msg.items)
		}
		if m.state == loanListScreen && m.loanScope == msg.scope {
			m.refreshLoanList()
		}
		return m, nil

	case loanCreatedMsg:
		m.err = nil
		m.caches.Loans.Append(msg.loan)
		m.refreshLoanList()
		if m.state == loanFormScreen {
			m.state = loanListScreen
		}
		// Статус медиа сменился на BORROWED, перечитываем медиа
		return m.setStatus("Выдача оформлена", m.fetchMediaCmd())

	case loanReturnedMsg:
		m.err = nil
		m.caches.Loans.Upsert(msg.loan)
		m.caches.ActiveLoans.Remove(msg.loan.LoanID)
		m.caches.OverdueLoans.Remove(msg.loan.LoanID)
		m.refreshLoanList()
		return m.setStatus("Возврат оформлен", m.fetchMediaCmd())

	case bookInfoMsg:
		m.applyBookInfo(msg.book)
		return m.setStatusMessage("Данные книги подставлены")

	case fetchFailedMsg:
		return m.handleFetchFailed(msg)

	case errMsg:
		return m.handleError(msg.err)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// == Обработка по текущему экрану ==
	var updatedModel tea.Model = m
	var stateCmd tea.Cmd

	switch m.state {
	case welcomeScreen:
		updatedModel, stateCmd = m.updateWelcomeScreen(msg)
	case loginScreen:
		updatedModel, stateCmd = m.updateLoginScreen(msg)
	case registerScreen:
		updatedModel, stateCmd = m.updateRegisterScreen(msg)
	case menuScreen:
		updatedModel, stateCmd = m.updateMenuScreen(msg)
	case mediaListScreen:
		updatedModel, stateCmd = m.updateMediaListScreen(msg)
	case mediaFormScreen:
		updatedModel, stateCmd = m.updateMediaFormScreen(msg)
	case mediaDetailScreen:
		updatedModel, stateCmd = m.updateMediaDetailScreen(msg)
	case categoryPickScreen:
		updatedModel, stateCmd = m.updateCategoryPickScreen(msg)
	case personListScreen:
		updatedModel, stateCmd = m.updatePersonListScreen(msg)
	case personFormScreen:
		updatedModel, stateCmd = m.updatePersonFormScreen(msg)
	case loanListScreen:
		updatedModel, stateCmd = m.updateLoanListScreen(msg)
	case loanPersonScreen:
		updatedModel, stateCmd = m.updateLoanPersonScreen(msg)
	case loanFormScreen:
		updatedModel, stateCmd = m.updateLoanFormScreen(msg)
	case categoryListScreen:
		updatedModel, stateCmd = m.updateCategoryListScreen(msg)
	case categoryFormScreen:
		updatedModel, stateCmd = m.updateCategoryFormScreen(msg)
	case statisticsScreen:
		updatedModel, stateCmd = m.updateStatisticsScreen(msg)
	}

	finalModel, ok := updatedModel.(*model)
	if !ok {
		slog.Error("Ошибка каста модели в *model")
		return m, tea.Quit
	}
	return finalModel, stateCmd
}

// handleLoginSuccess переводит TUI в главное меню и запускает загрузку данных.
func (m *model) handleLoginSuccess(msg loginSuccessMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.fieldErrors = nil
	m.loginPasswordInput.SetValue("")
	m.state = menuScreen
	slog.Info("Вход выполнен", "username", msg.session.Username)
	statusModel, statusCmd := m.setStatusMessage("Добро пожаловать, " + msg.session.Username + "!")
	return statusModel, tea.Batch(statusCmd, m.fetchAllCmd(), tea.ClearScreen)
}

// handleFetchFailed помечает кеш ошибкой. Прежние данные остаются видимыми.
func (m *model) handleFetchFailed(msg fetchFailedMsg) (tea.Model, tea.Cmd) {
	slog.Warn("Ошибка загрузки", "scope", msg.scope, "error", msg.err)
	switch msg.scope {
	case "media":
		m.caches.Media.Fail(msg.err.Error())
	case "persons":
		m.caches.Persons.Fail(msg.err.Error())
	case "categories":
		m.caches.Categories.Fail(msg.err.Error())
	case "loans":
		m.caches.Loans.Fail(msg.err.Error())
	case "activeLoans":
		m.caches.ActiveLoans.Fail(msg.err.Error())
	case "overdueLoans":
		m.caches.OverdueLoans.Fail(msg.err.Error())
	case "recentUsers":
		// Подсказка необязательна, статус не показываем
		return m, nil
	}
	return m.setStatusMessage("Ошибка загрузки: " + msg.err.Error())
}

// handleError показывает ошибку операции. Ошибка авторизации только
// логируется: сессия не сбрасывается, пользователь продолжает работу
// с кешированными данными.
func (m *model) handleError(err error) (tea.Model, tea.Cmd) {
	m.err = err
	if errors.Is(err, api.ErrAuthorization) {
		slog.Warn("Сервер отклонил токен", "error", err)
		return m.setStatusMessage("Ошибка авторизации")
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		// Сообщение сервера показываем как есть
		return m.setStatusMessage(apiErr.Message)
	}
	slog.Error("Ошибка операции", "error", err)
	return m.setStatusMessage(fmt.Sprintf("Ошибка: %v", err))
}

// logout сбрасывает сессию и все кеши и возвращает на экран входа.
func (m *model) logout() (tea.Model, tea.Cmd) {
	if err := m.session.Logout(); err != nil {
		slog.Warn("Ошибка при выходе", "error", err)
	}
	m.caches.Reset()
	m.refreshMediaList()
	m.refreshPersonList()
	m.refreshLoanList()
	m.refreshCategoryList()
	m.state = welcomeScreen
	m.err = nil
	slog.Info("Выход из учетной записи выполнен")
	statusModel, statusCmd := m.setStatusMessage("Вы вышли из учетной записи")
	return statusModel, tea.Batch(statusCmd, m.fetchRecentUsersCmd(), tea.ClearScreen)
}

// toggleTheme переключает тему и сохраняет выбор.
func (m *model) toggleTheme() (tea.Model, tea.Cmd) {
	m.darkTheme = !m.darkTheme
	name := "light"
	if m.darkTheme {
		m.theme = darkTheme()
		name = "dark"
	} else {
		m.theme = lightTheme()
	}
	if err := m.storage.SaveTheme(name); err != nil {
		slog.Warn("Не удалось сохранить тему", "error", err)
	}
	return m.setStatusMessage("Тема: " + name)
}

// setStatus объединяет статусное сообщение с дополнительной командой.
func (m *model) setStatus(status string, extra tea.Cmd) (tea.Model, tea.Cmd) {
	statusModel, statusCmd := m.setStatusMessage(status)
	return statusModel, tea.Batch(statusCmd, extra)
}

// refreshLoanListAt перечитывает выдачи текущего фильтра с сервера.
func (m *model) refreshLoanListAt(asOf time.Time) tea.Cmd {
	return m.fetchLoansCmd(m.loanScope, asOf)
}
