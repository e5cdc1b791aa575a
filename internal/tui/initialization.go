package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/maynagashev/mediakeeper/internal/api"
	"github.com/maynagashev/mediakeeper/internal/auth"
	"github.com/maynagashev/mediakeeper/internal/cache"
	"github.com/maynagashev/mediakeeper/internal/isbn"
)

// Константы, используемые при инициализации.
const (
	initPasswordCharLimit = 156
	initUserCharLimit     = 128
	initFieldCharLimit    = 256
	initNotesCharLimit    = 1024
	initFieldWidth        = 40
	initDateWidth         = 12
)

// initLoginInputs инициализирует поля для экрана входа.
func initLoginInputs() (textinput.Model, textinput.Model) {
	userInput := textinput.New()
	userInput.Placeholder = "Имя пользователя"
	userInput.CharLimit = initUserCharLimit
	userInput.Width = initFieldWidth

	passInput := textinput.New()
	passInput.Placeholder = "Пароль"
	passInput.CharLimit = initPasswordCharLimit
	passInput.Width = initFieldWidth
	passInput.EchoMode = textinput.EchoPassword
	return userInput, passInput
}

// initRegisterInputs инициализирует поля для экрана регистрации.
func initRegisterInputs() []textinput.Model {
	inputs := make([]textinput.Model, numRegisterFields)
	placeholders := [numRegisterFields]string{"Email", "Имя пользователя", "Пароль"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = initFieldCharLimit
		ti.Width = initFieldWidth
		inputs[i] = ti
	}
	inputs[registerFieldPassword].EchoMode = textinput.EchoPassword
	return inputs
}

// initMediaInputs инициализирует поля формы медиа.
func initMediaInputs() []textinput.Model {
	inputs := make([]textinput.Model, numMediaFields)
	placeholders := [numMediaFields]string{
		"Название",
		"Тип (BOOK, CD, FILM, GAME)",
		"Автор / издатель",
		"Год выпуска",
		"ISBN",
		"Заметки",
	}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = initFieldCharLimit
		ti.Width = initFieldWidth
		inputs[i] = ti
	}
	inputs[mediaFieldNotes].CharLimit = initNotesCharLimit
	return inputs
}

// initPersonInputs инициализирует поля формы персоны.
func initPersonInputs() []textinput.Model {
	inputs := make([]textinput.Model, numPersonFields)
	placeholders := [numPersonFields]string{"Имя", "Фамилия", "Адрес", "Email", "Телефон"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = initFieldCharLimit
		ti.Width = initFieldWidth
		inputs[i] = ti
	}
	return inputs
}

// initDueDateInput инициализирует поле ввода срока возврата.
func initDueDateInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "ГГГГ-ММ-ДД"
	ti.CharLimit = initDateWidth
	ti.Width = initFieldWidth
	return ti
}

// initCategoryNameInput инициализирует поле ввода имени категории.
func initCategoryNameInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Название категории"
	ti.CharLimit = initFieldCharLimit
	ti.Width = initFieldWidth
	return ti
}

// initEntityList инициализирует компонент списка с общими настройками.
func initEntityList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false) // Мы переопределяем справку
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initCompactList инициализирует список без фильтрации и статусной строки
// (меню и экраны выбора).
func initCompactList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initMainMenu инициализирует главное меню.
func initMainMenu() list.Model {
	menu := initCompactList("MediaKeeper")
	_ = menu.SetItems([]list.Item{
		menuItem{title: "Медиа", id: "media"},
		menuItem{title: "Персоны", id: "persons"},
		menuItem{title: "Выдачи", id: "loans"},
		menuItem{title: "Категории", id: "categories"},
		menuItem{title: "Статистика", id: "statistics"},
		menuItem{title: "Сменить тему", id: "theme"},
		menuItem{title: "Выйти из учетной записи", id: "logout"},
	})
	menu.SetSize(defaultListWidth, defaultListHeight)
	return menu
}

// initModel создает начальное состояние модели.
func initModel(
	apiClient api.Client,
	books *isbn.Client,
	session *auth.Manager,
	storage *auth.Storage,
	caches *cache.Set,
	serverURL string,
	debugMode bool,
) model {
	loginUserInput, loginPassInput := initLoginInputs()
	selectedTheme, dark := themeByName(storage.LoadTheme())

	return model{
		state:              welcomeScreen,
		apiClient:          apiClient,
		books:              books,
		session:            session,
		storage:            storage,
		caches:             caches,
		serverURL:          serverURL,
		debugMode:          debugMode,
		darkTheme:          dark,
		theme:              selectedTheme,
		loginUsernameInput: loginUserInput,
		loginPasswordInput: loginPassInput,
		registerInputs:     initRegisterInputs(),
		mainMenu:           initMainMenu(),
		mediaList:          initEntityList("Медиа"),
		mediaInputs:        initMediaInputs(),
		categoryPickList:   initCompactList("Назначить категорию"),
		personList:         initEntityList("Персоны"),
		personInputs:       initPersonInputs(),
		loanList:           initEntityList("Выдачи"),
		loanPersonList:     initCompactList("Кому выдать?"),
		loanDueDateInput:   initDueDateInput(),
		categoryList:       initEntityList("Категории"),
		categoryNameInput:  initCategoryNameInput(),
	}
}
