package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/maynagashev/mediakeeper/internal/api"
	"github.com/maynagashev/mediakeeper/internal/auth"
	"github.com/maynagashev/mediakeeper/internal/cache"
	"github.com/maynagashev/mediakeeper/internal/isbn"
	"github.com/maynagashev/mediakeeper/internal/loans"
	"github.com/maynagashev/mediakeeper/internal/validate"
	"github.com/maynagashev/mediakeeper/models"
)

// Состояния (экраны) приложения.
type screenState int

const (
	welcomeScreen      screenState = iota // Приветственный экран
	loginScreen                           // Экран входа
	registerScreen                        // Экран регистрации
	menuScreen                            // Главное меню
	mediaListScreen                       // Список медиа
	mediaFormScreen                       // Форма добавления/редактирования медиа
	mediaDetailScreen                     // Детали медиа
	categoryPickScreen                    // Выбор категории для назначения медиа
	personListScreen                      // Список персон
	personFormScreen                      // Форма персоны
	loanListScreen                        // Список выдач
	loanPersonScreen                      // Выбор персоны для новой выдачи
	loanFormScreen                        // Ввод срока возврата новой выдачи
	categoryListScreen                    // Список категорий
	categoryFormScreen                    // Форма новой категории
	statisticsScreen                      // Статистика выдач
)

// Индексы полей формы медиа.
const (
	mediaFieldTitle = iota
	mediaFieldType
	mediaFieldProducer
	mediaFieldReleaseYear
	mediaFieldISBN
	mediaFieldNotes
	numMediaFields
)

// Индексы полей формы персоны.
const (
	personFieldFirstName = iota
	personFieldLastName
	personFieldAddress
	personFieldEmail
	personFieldPhone
	numPersonFields
)

// Индексы полей формы регистрации.
const (
	registerFieldEmail = iota
	registerFieldUsername
	registerFieldPassword
	numRegisterFields
)

// Константы для TUI.
const (
	defaultListWidth  = 80 // Стандартная ширина терминала для списка
	defaultListHeight = 24 // Стандартная высота терминала для списка

	keyEnter    = "enter"
	keyQuit     = "q"
	keyEsc      = "esc"
	keyEdit     = "e"
	keyAdd      = "a"
	keyDelete   = "d"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
)

// Фильтр списка выдач.
type loanScope int

const (
	loanScopeAll loanScope = iota
	loanScopeActive
	loanScopeOverdue
)

func (s loanScope) String() string {
	switch s {
	case loanScopeActive:
		return "Активные"
	case loanScopeOverdue:
		return "Просроченные"
	default:
		return "Все"
	}
}

// mediaItem представляет медиа в списке.
// Реализует интерфейс list.Item.
type mediaItem struct {
	media models.Media
}

func (i mediaItem) Title() string {
	title := i.media.Title
	if i.media.IsFavorite {
		title = "★ " + title
	}
	return title
}

func (i mediaItem) Description() string {
	parts := []string{i.media.Type}
	if i.media.ReleaseYear != 0 {
		parts = append(parts, fmt.Sprintf("%d", i.media.ReleaseYear))
	}
	parts = append(parts, mediaStateLabel(i.media.MediaState))
	if len(i.media.Categories) > 0 {
		names := make([]string, 0, len(i.media.Categories))
		for _, c := range i.media.Categories {
			names = append(names, c.CategoryName)
		}
		parts = append(parts, "["+strings.Join(names, ", ")+"]")
	}
	return strings.Join(parts, " | ")
}

func (i mediaItem) FilterValue() string { return i.media.Title }

func mediaStateLabel(state string) string {
	switch state {
	case models.MediaStateAvailable:
		return "доступно"
	case models.MediaStateBorrowed:
		return "выдано"
	case models.MediaStateUnavailable:
		return "недоступно"
	default:
		return state
	}
}

// personItem представляет персону в списке.
type personItem struct {
	person models.Person
}

func (i personItem) Title() string { return i.person.FullName() }

func (i personItem) Description() string {
	parts := make([]string, 0, 2)
	if i.person.Email != "" {
		parts = append(parts, i.person.Email)
	}
	if i.person.Phone != "" {
		parts = append(parts, i.person.Phone)
	}
	return strings.Join(parts, " | ")
}

func (i personItem) FilterValue() string { return i.person.FullName() }

// loanItem представляет выдачу в списке. Статус вычисляется на момент
// построения элемента, а не хранится.
type loanItem struct {
	loan models.Loan
	asOf time.Time
}

func (i loanItem) Title() string {
	return fmt.Sprintf("%s → %s", i.loan.Media.Title, i.loan.Person.FullName())
}

func (i loanItem) Description() string {
	status := loans.StatusOf(i.loan, i.asOf)
	desc := fmt.Sprintf("выдано %s, срок %s, %s",
		i.loan.BorrowedAt.Time.Format("02.01.2006"),
		i.loan.DueDate.Time.Format("02.01.2006"),
		status.String(),
	)
	if i.loan.ReturnedAt != nil {
		desc += " " + i.loan.ReturnedAt.Time.Format("02.01.2006")
	}
	return desc
}

func (i loanItem) FilterValue() string {
	return i.loan.Media.Title + " " + i.loan.Person.FullName()
}

// categoryItem представляет категорию в списке.
type categoryItem struct {
	category models.Category
	assigned bool // Назначена ли выбранному медиа (на экране выбора)
}

func (i categoryItem) Title() string {
	if i.assigned {
		return i.category.CategoryName + " ✓"
	}
	return i.category.CategoryName
}

func (i categoryItem) Description() string { return "" }

func (i categoryItem) FilterValue() string { return i.category.CategoryName }

// menuItem представляет пункт главного меню.
type menuItem struct {
	title string
	id    string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return "" }
func (i menuItem) FilterValue() string { return i.title }

// --- Сообщения от асинхронных команд --- //

type loginSuccessMsg struct {
	session auth.Session
}

type registerSuccessMsg struct{}

type recentUsersMsg struct {
	users []models.User
}

type mediaLoadedMsg struct {
	items []models.Media
}

// mediaSavedMsg приходит после создания или обновления медиа.
type mediaSavedMsg struct {
	media   models.Media
	created bool
}

type mediaDeletedMsg struct {
	id int64
}

// mediaUpdatedMsg приходит от операций, где сервер возвращает
// обновленное медиа целиком (избранное, назначение/снятие категории).
type mediaUpdatedMsg struct {
	media models.Media
}

type personsLoadedMsg struct {
	items []models.Person
}

type personSavedMsg struct {
	person  models.Person
	created bool
}

type personDeletedMsg struct {
	id int64
}

type categoriesLoadedMsg struct {
	items []models.Category
}

type categoryCreatedMsg struct {
	category models.Category
}

type categoryDeletedMsg struct {
	id int64
}

type loansLoadedMsg struct {
	scope loanScope
	items []models.Loan
}

type loanCreatedMsg struct {
	loan models.Loan
}

type loanReturnedMsg struct {
	loan models.Loan
}

type bookInfoMsg struct {
	book isbn.BookInfo
}

// fetchFailedMsg сообщает о неудачной загрузке коллекции.
// Кеш при этом сохраняет прежние данные.
type fetchFailedMsg struct {
	scope string
	err   error
}

type errMsg struct {
	err error
}

// Сообщение для очистки статуса.
type clearStatusMsg struct{}

// model представляет состояние TUI приложения.
type model struct {
	state         screenState
	previousState screenState // Предыдущее состояние (для возврата)

	apiClient  api.Client
	books      *isbn.Client
	session    *auth.Manager
	storage    *auth.Storage
	caches     *cache.Set
	serverURL  string
	debugMode  bool
	darkTheme  bool
	theme      theme

	// Вход и регистрация
	loginUsernameInput   textinput.Model
	loginPasswordInput   textinput.Model
	loginFocusedField    int
	stayLoggedIn         bool
	registerInputs       []textinput.Model
	registerFocusedField int
	fieldErrors          validate.FieldErrors

	mainMenu list.Model

	// Медиа
	mediaList         list.Model
	mediaInputs       []textinput.Model
	mediaFocusedField int
	editingMediaID    int64 // 0 при создании нового
	selectedMediaID   int64

	categoryPickList list.Model

	// Персоны
	personList         list.Model
	personInputs       []textinput.Model
	personFocusedField int
	editingPersonID    int64

	// Выдачи
	loanList         list.Model
	loanScope        loanScope
	loanPersonList   list.Model
	loanDueDateInput textinput.Model
	loanMediaID      int64
	loanPersonID     int64

	// Категории
	categoryList      list.Model
	categoryNameInput textinput.Model

	statsPeriod loans.Period

	status string // Статусное сообщение внизу экрана
	err    error  // Последняя ошибка для отображения

	width  int
	height int
}
