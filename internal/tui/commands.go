package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/models"
)

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
func clearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// --- Команды аутентификации --- //

// makeLoginCmd выполняет вход через менеджер сессии.
func (m *model) makeLoginCmd(username, password string, stayLoggedIn bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		session, err := m.session.Login(ctx, username, password, stayLoggedIn)
		if err != nil {
			// Возвращаем исходную ошибку API клиента без добавления контекста
			return errMsg{err: err}
		}
		return loginSuccessMsg{session: session}
	}
}

// makeRegisterCmd выполняет регистрацию через API.
func (m *model) makeRegisterCmd(email, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.session.Register(ctx, email, username, password); err != nil {
			return errMsg{err: err}
		}
		return registerSuccessMsg{}
	}
}

// fetchRecentUsersCmd загружает список недавних пользователей
// для подсказки на экране входа. Запрос не требует токена.
func (m *model) fetchRecentUsersCmd() tea.Cmd {
	return func() tea.Msg {
		users, err := m.apiClient.RecentUsers(context.Background())
		if err != nil {
			// Подсказка необязательна, ошибку только логируем
			slog.Warn("Не удалось загрузить недавних пользователей", "error", err)
			return fetchFailedMsg{scope: "recentUsers", err: err}
		}
		return recentUsersMsg{users: users}
	}
}

// --- Команды загрузки коллекций --- //

func (m *model) fetchMediaCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.apiClient.MediaByUsername(context.Background())
		if err != nil {
			return fetchFailedMsg{scope: "media", err: err}
		}
		return mediaLoadedMsg{items: items}
	}
}

func (m *model) fetchPersonsCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.apiClient.Persons(context.Background())
		if err != nil {
			return fetchFailedMsg{scope: "persons", err: err}
		}
		return personsLoadedMsg{items: items}
	}
}

func (m *model) fetchCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.apiClient.Categories(context.Background())
		if err != nil {
			return fetchFailedMsg{scope: "categories", err: err}
		}
		return categoriesLoadedMsg{items: items}
	}
}

// fetchLoansCmd загружает выдачи выбранного фильтра. Для просроченных
// текущая дата передается параметром запроса.
func (m *model) fetchLoansCmd(scope loanScope, asOf time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var items []models.Loan
		var err error
		switch scope {
		case loanScopeActive:
			items, err = m.apiClient.ActiveLoans(ctx)
		case loanScopeOverdue:
			items, err = m.apiClient.OverdueLoans(ctx, models.NewDate(asOf))
		default:
			items, err = m.apiClient.Loans(ctx)
		}
		if err != nil {
			return fetchFailedMsg{scope: loanCacheName(scope), err: err}
		}
		return loansLoadedMsg{scope: scope, items: items}
	}
}

// loanCacheName возвращает имя кеша выдач для сообщений об ошибке загрузки.
func loanCacheName(scope loanScope) string {
	switch scope {
	case loanScopeActive:
		return "activeLoans"
	case loanScopeOverdue:
		return "overdueLoans"
	default:
		return "loans"
	}
}

// fetchAllCmd загружает все коллекции после входа.
func (m *model) fetchAllCmd() tea.Cmd {
	return tea.Batch(
		m.fetchMediaCmd(),
		m.fetchPersonsCmd(),
		m.fetchCategoriesCmd(),
		m.fetchLoansCmd(loanScopeAll, time.Now()),
	)
}

// --- Команды изменения медиа --- //

// saveMediaCmd создает новое медиа или обновляет существующее (id != 0).
func (m *model) saveMediaCmd(id int64, req models.MediaRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if id == 0 {
			saved, err := m.apiClient.CreateMedia(ctx, req)
			if err != nil {
				return errMsg{err: err}
			}
			return mediaSavedMsg{media: *saved, created: true}
		}
		saved, err := m.apiClient.UpdateMedia(ctx, id, req)
		if err != nil {
			return errMsg{err: err}
		}
		return mediaSavedMsg{media: *saved}
	}
}

func (m *model) deleteMediaCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.apiClient.DeleteMedia(context.Background(), id); err != nil {
			return errMsg{err: err}
		}
		return mediaDeletedMsg{id: id}
	}
}

func (m *model) setFavoriteCmd(id int64, isFavorite bool) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.apiClient.SetFavorite(context.Background(), id, isFavorite)
		if err != nil {
			return errMsg{err: err}
		}
		return mediaUpdatedMsg{media: *updated}
	}
}

func (m *model) assignCategoryCmd(mediaID, categoryID int64) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.apiClient.AssignCategory(context.Background(), mediaID, categoryID)
		if err != nil {
			return errMsg{err: err}
		}
		return mediaUpdatedMsg{media: *updated}
	}
}

func (m *model) removeCategoryCmd(mediaID, categoryID int64) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.apiClient.RemoveCategory(context.Background(), mediaID, categoryID)
		if err != nil {
			return errMsg{err: err}
		}
		return mediaUpdatedMsg{media: *updated}
	}
}

// lookupISBNCmd ищет книгу в Google Books для предзаполнения формы.
func (m *model) lookupISBNCmd(isbnValue string) tea.Cmd {
	return func() tea.Msg {
		book, err := m.books.Lookup(context.Background(), isbnValue)
		if err != nil {
			return errMsg{err: err}
		}
		return bookInfoMsg{book: book}
	}
}

// --- Команды изменения персон --- //

// savePersonCmd создает новую персону или обновляет существующую (id != 0).
func (m *model) savePersonCmd(id int64, p models.Person) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if id == 0 {
			saved, err := m.apiClient.CreatePerson(ctx, p)
			if err != nil {
				return errMsg{err: err}
			}
			return personSavedMsg{person: *saved, created: true}
		}
		saved, err := m.apiClient.UpdatePerson(ctx, id, p)
		if err != nil {
			return errMsg{err: err}
		}
		return personSavedMsg{person: *saved}
	}
}

func (m *model) deletePersonCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.apiClient.DeletePerson(context.Background(), id); err != nil {
			return errMsg{err: err}
		}
		return personDeletedMsg{id: id}
	}
}

// --- Команды изменения категорий --- //

func (m *model) createCategoryCmd(name string) tea.Cmd {
	return func() tea.Msg {
		created, err := m.apiClient.CreateCategory(context.Background(), name)
		if err != nil {
			return errMsg{err: err}
		}
		return categoryCreatedMsg{category: *created}
	}
}

func (m *model) deleteCategoryCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.apiClient.DeleteCategory(context.Background(), id); err != nil {
			return errMsg{err: err}
		}
		return categoryDeletedMsg{id: id}
	}
}

// --- Команды выдач --- //

func (m *model) createLoanCmd(mediaID, personID int64, dueDate models.Date, borrowedAt models.DateTime) tea.Cmd {
	return func() tea.Msg {
		created, err := m.apiClient.CreateLoan(context.Background(), mediaID, personID, dueDate, borrowedAt)
		if err != nil {
			return errMsg{err: err}
		}
		return loanCreatedMsg{loan: *created}
	}
}

func (m *model) returnLoanCmd(loanID int64, returnedAt models.DateTime) tea.Cmd {
	return func() tea.Msg {
		returned, err := m.apiClient.ReturnLoan(context.Background(), loanID, returnedAt)
		if err != nil {
			return errMsg{err: err}
		}
		return loanReturnedMsg{loan: *returned}
	}
}
