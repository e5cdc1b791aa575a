// Package models содержит общие типы данных, которыми клиент обменивается
// с бэкендом MediaKeeper. Тэги `json` соответствуют DTO бэкенда,
// все идентификаторы назначаются сервером.
package models

// Типы медиа, известные бэкенду.
const (
	MediaTypeBook = "BOOK"
	MediaTypeCD   = "CD"
	MediaTypeFilm = "FILM"
	MediaTypeGame = "GAME"
)

// Состояния медиа.
const (
	MediaStateAvailable   = "AVAILABLE"
	MediaStateBorrowed    = "BORROWED"
	MediaStateUnavailable = "UNAVAILABLE"
)

// User представляет пользователя системы (владельца каталога).
// Хеш пароля сервер наружу не отдает.
type User struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Person представляет человека, которому выдаются медиа.
type Person struct {
	PersonID  int64  `json:"personId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullName возвращает имя и фамилию одной строкой для отображения.
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Category представляет пользовательскую категорию медиа.
type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// Media представляет единицу каталога (книга, CD, фильм, игра).
// Категории приходят вложенным списком в ответах чтения;
// при создании/обновлении сервер ожидает список идентификаторов.
type Media struct {
	MediaID     int64      `json:"mediaId"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Producer    string     `json:"producer,omitempty"`
	ReleaseYear int        `json:"releaseYear"`
	ISBN        string     `json:"isbn,omitempty"`
	IsFavorite  bool       `json:"isFavorite"`
	MediaState  string     `json:"mediaState"`
	Notes       string     `json:"notes,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
}

// HasCategory сообщает, назначена ли медиа категория с данным ID.
func (m Media) HasCategory(categoryID int64) bool {
	for _, c := range m.Categories {
		if c.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// MediaRequest - тело запроса на создание/обновление медиа.
// Категории передаются идентификаторами.
type MediaRequest struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Producer    string  `json:"producer,omitempty"`
	ReleaseYear int     `json:"releaseYear"`
	ISBN        string  `json:"isbn,omitempty"`
	IsFavorite  bool    `json:"isFavorite"`
	MediaState  string  `json:"mediaState"`
	Notes       string  `json:"notes,omitempty"`
	Categories  []int64 `json:"categories"`
}

// Loan представляет выдачу медиа человеку.
// BorrowedAt и DueDate обязательны, ReturnedAt появляется после возврата.
// Статус выдачи (активна/просрочена/возвращена) не хранится,
// он вычисляется из этих полей (пакет internal/loans).
type Loan struct {
	LoanID     int64     `json:"loanId"`
	Person     Person    `json:"person"`
	Media      Media     `json:"media"`
	BorrowedAt DateTime  `json:"borrowedAt"`
	DueDate    Date      `json:"dueDate"`
	ReturnedAt *DateTime `json:"returnedAt,omitempty"`
}

// RegisterRequest представляет тело запроса на регистрацию.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest представляет тело запроса на вход.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse представляет тело ответа при успешном входе.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
