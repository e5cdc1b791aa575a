package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/maynagashev/mediakeeper/models"
)

// ErrAuthorization сигнализирует об ошибке авторизации (401).
// Клиент не разлогинивает пользователя автоматически, решение за вызывающим.
var ErrAuthorization = errors.New("ошибка авторизации")

// requestTimeout - общий таймаут HTTP-запроса к серверу.
const requestTimeout = 4 * time.Second

// APIError - ошибка, для которой сервер вернул осмысленное сообщение
// (обычно 400 с телом {"message": ...}). Сообщение показывается
// пользователю как есть.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("ошибка сервера: статус %d", e.StatusCode)
}

// Client определяет интерфейс для взаимодействия с API сервера MediaKeeper.
type Client interface {
	// Register регистрирует нового пользователя.
	Register(ctx context.Context, email, username, password string) error
	// Login аутентифицирует пользователя и возвращает JWT токен.
	Login(ctx context.Context, username, password string) (string, error)
	// RecentUsers возвращает последних зарегистрированных пользователей
	// (подсказки на экране входа).
	RecentUsers(ctx context.Context) ([]models.User, error)

	// Persons возвращает всех персон.
	Persons(ctx context.Context) ([]models.Person, error)
	// PersonsByUsername возвращает персон, принадлежащих пользователю.
	PersonsByUsername(ctx context.Context, username string) ([]models.Person, error)
	// CreatePerson создает персону и возвращает ее с серверным ID.
	CreatePerson(ctx context.Context, p models.Person) (*models.Person, error)
	// UpdatePerson обновляет персону целиком.
	UpdatePerson(ctx context.Context, id int64, p models.Person) (*models.Person, error)
	// DeletePerson удаляет персону.
	DeletePerson(ctx context.Context, id int64) error

	// MediaByUsername возвращает каталог медиа текущего пользователя.
	MediaByUsername(ctx context.Context) ([]models.Media, error)
	// CreateMedia создает медиа и возвращает его с серверным ID.
	CreateMedia(ctx context.Context, m models.MediaRequest) (*models.Media, error)
	// UpdateMedia обновляет медиа целиком.
	UpdateMedia(ctx context.Context, id int64, m models.MediaRequest) (*models.Media, error)
	// DeleteMedia удаляет медиа.
	DeleteMedia(ctx context.Context, id int64) error
	// SetFavorite переключает флаг избранного, возвращает обновленное медиа.
	SetFavorite(ctx context.Context, id int64, isFavorite bool) (*models.Media, error)
	// AssignCategory назначает категорию медиа, возвращает обновленное медиа.
	AssignCategory(ctx context.Context, mediaID, categoryID int64) (*models.Media, error)
	// RemoveCategory снимает категорию с медиа, возвращает обновленное медиа.
	RemoveCategory(ctx context.Context, mediaID, categoryID int64) (*models.Media, error)

	// Categories возвращает категории текущего пользователя.
	Categories(ctx context.Context) ([]models.Category, error)
	// CreateCategory создает категорию.
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	// DeleteCategory удаляет категорию.
	DeleteCategory(ctx context.Context, id int64) error

	// Loans возвращает все выдачи.
	Loans(ctx context.Context) ([]models.Loan, error)
	// ActiveLoans возвращает невозвращенные выдачи.
	ActiveLoans(ctx context.Context) ([]models.Loan, error)
	// OverdueLoans возвращает просроченные на указанную дату выдачи.
	OverdueLoans(ctx context.Context, currentDate models.Date) ([]models.Loan, error)
	// CreateLoan выдает медиа персоне.
	CreateLoan(ctx context.Context, mediaID, personID int64,
		dueDate models.Date, borrowedAt models.DateTime) (*models.Loan, error)
	// ReturnLoan отмечает возврат выдачи.
	ReturnLoan(ctx context.Context, loanID int64, returnedAt models.DateTime) (*models.Loan, error)

	// SetAuthToken устанавливает JWT токен для аутентифицированных запросов.
	SetAuthToken(token string)
}

// httpClient реализует интерфейс Client для взаимодействия с сервером по HTTP.
type httpClient struct {
	baseURL    string       // Базовый URL сервера, например "http://localhost:8080/api"
	httpClient *http.Client // HTTP клиент с общим таймаутом
	authToken  string       // JWT токен для аутентифицированных запросов
}

// NewHTTPClient создает новый экземпляр API клиента.
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SetAuthToken устанавливает токен аутентификации для клиента.
func (c *httpClient) SetAuthToken(token string) {
	c.authToken = token
}

// setAuthHeader добавляет заголовок авторизации к запросу.
func (c *httpClient) setAuthHeader(req *http.Request) error {
	if c.authToken == "" {
		return errors.New("токен аутентификации отсутствует")
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	return nil
}

// decodeError извлекает сообщение об ошибке из тела ответа.
// Сервер отдает {"message": ...} для ошибок валидации, иногда просто текст.
func decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthorization
	}
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if readErr == nil && len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && payload.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
		}
		// Не JSON - возможно, сервер вернул сообщение простым текстом.
		if resp.StatusCode == http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
		}
	}
	return &APIError{StatusCode: resp.StatusCode}
}

// doJSON выполняет запрос с опциональным JSON-телом и декодирует JSON-ответ
// в out. Если out == nil, тело успешного ответа игнорируется.
func (c *httpClient) doJSON(ctx context.Context, method, path string,
	query url.Values, body any, out any, authorized bool,
) error {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("ошибка формирования URL %s: %w", path, err)
	}
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("ошибка кодирования тела запроса: %w", marshalErr)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		if err = c.setAuthHeader(req); err != nil {
			return err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("ошибка декодирования ответа %s %s: %w", method, path, err)
		}
	}
	return nil
}

// --- Аутентификация --- //

// Register отправляет запрос на регистрацию.
// Ошибки занятости имени/почты приходят с сообщением сервера (APIError).
func (c *httpClient) Register(ctx context.Context, email, username, password string) error {
	body := models.RegisterRequest{Email: email, Username: username, Password: password}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", nil, body, nil, false)
}

// Login отправляет запрос на вход и сохраняет токен в клиенте.
func (c *httpClient) Login(ctx context.Context, username, password string) (string, error) {
	body := models.LoginRequest{Username: username, Password: password}
	var resp models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, body, &resp, false); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("сервер вернул пустой токен")
	}
	c.authToken = resp.AccessToken
	return resp.AccessToken, nil
}

// RecentUsers получает список последних пользователей для экрана входа.
func (c *httpClient) RecentUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/returnUsers", nil, nil, &users, false); err != nil {
		return nil, err
	}
	return users, nil
}

// --- Персоны --- //

func (c *httpClient) Persons(ctx context.Context) ([]models.Person, error) {
	var persons []models.Person
	if err := c.doJSON(ctx, http.MethodGet, "/persons", nil, nil, &persons, true); err != nil {
		return nil, err
	}
	return persons, nil
}

func (c *httpClient) PersonsByUsername(ctx context.Context, username string) ([]models.Person, error) {
	query := url.Values{"username": {username}}
	var persons []models.Person
	if err := c.doJSON(ctx, http.MethodGet, "/persons/by-username", query, nil, &persons, true); err != nil {
		return nil, err
	}
	return persons, nil
}

func (c *httpClient) CreatePerson(ctx context.Context, p models.Person) (*models.Person, error) {
	var created models.Person
	if err := c.doJSON(ctx, http.MethodPost, "/persons", nil, p, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) UpdatePerson(ctx context.Context, id int64, p models.Person) (*models.Person, error) {
	var updated models.Person
	path := "/persons/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, p, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *httpClient) DeletePerson(ctx context.Context, id int64) error {
	path := "/persons/" + strconv.FormatInt(id, 10)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// --- Медиа --- //

func (c *httpClient) MediaByUsername(ctx context.Context) ([]models.Media, error) {
	var media []models.Media
	if err := c.doJSON(ctx, http.MethodGet, "/media/by-username", nil, nil, &media, true); err != nil {
		return nil, err
	}
	return media, nil
}

func (c *httpClient) CreateMedia(ctx context.Context, m models.MediaRequest) (*models.Media, error) {
	var created models.Media
	if err := c.doJSON(ctx, http.MethodPost, "/media", nil, m, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) UpdateMedia(ctx context.Context, id int64, m models.MediaRequest) (*models.Media, error) {
	var updated models.Media
	path := "/media/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, m, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *httpClient) DeleteMedia(ctx context.Context, id int64) error {
	path := "/media/" + strconv.FormatInt(id, 10)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// SetFavorite переключает флаг избранного.
func (c *httpClient) SetFavorite(ctx context.Context, id int64, isFavorite bool) (*models.Media, error) {
	body := map[string]bool{"isFavorite": isFavorite}
	var updated models.Media
	path := "/media/" + strconv.FormatInt(id, 10) + "/favorite"
	if err := c.doJSON(ctx, http.MethodPut, path, nil, body, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AssignCategory назначает категорию. Сервер возвращает медиа целиком,
// включая изменения, не отраженные в самом запросе.
func (c *httpClient) AssignCategory(ctx context.Context, mediaID, categoryID int64) (*models.Media, error) {
	var updated models.Media
	path := fmt.Sprintf("/media/%d/assign-category/%d", mediaID, categoryID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *httpClient) RemoveCategory(ctx context.Context, mediaID, categoryID int64) (*models.Media, error) {
	var updated models.Media
	path := fmt.Sprintf("/media/%d/remove-category/%d", mediaID, categoryID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// --- Категории --- //

func (c *httpClient) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories/user/dto", nil, nil, &categories, true); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *httpClient) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	body := map[string]string{"categoryName": name}
	var created models.Category
	if err := c.doJSON(ctx, http.MethodPost, "/categories", nil, body, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) DeleteCategory(ctx context.Context, id int64) error {
	path := "/categories/" + strconv.FormatInt(id, 10)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// --- Выдачи --- //

func (c *httpClient) Loans(ctx context.Context) ([]models.Loan, error) {
	var loans []models.Loan
	if err := c.doJSON(ctx, http.MethodGet, "/loans/all", nil, nil, &loans, true); err != nil {
		return nil, err
	}
	return loans, nil
}

func (c *httpClient) ActiveLoans(ctx context.Context) ([]models.Loan, error) {
	var loans []models.Loan
	if err := c.doJSON(ctx, http.MethodGet, "/loans/active", nil, nil, &loans, true); err != nil {
		return nil, err
	}
	return loans, nil
}

func (c *httpClient) OverdueLoans(ctx context.Context, currentDate models.Date) ([]models.Loan, error) {
	query := url.Values{"currentDate": {currentDate.Format(models.DateLayout)}}
	var loans []models.Loan
	if err := c.doJSON(ctx, http.MethodGet, "/loans/overdue", query, nil, &loans, true); err != nil {
		return nil, err
	}
	return loans, nil
}

// CreateLoan выдает медиа персоне. Даты передаются параметрами запроса,
// тело пустое - так устроен эндпоинт бэкенда.
func (c *httpClient) CreateLoan(ctx context.Context, mediaID, personID int64,
	dueDate models.Date, borrowedAt models.DateTime,
) (*models.Loan, error) {
	query := url.Values{
		"dueDate":    {dueDate.Format(models.DateLayout)},
		"borrowedAt": {borrowedAt.Format(models.DateTimeLayout)},
	}
	var created models.Loan
	path := fmt.Sprintf("/loans/%d/%d", mediaID, personID)
	if err := c.doJSON(ctx, http.MethodPost, path, query, nil, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) ReturnLoan(ctx context.Context, loanID int64, returnedAt models.DateTime) (*models.Loan, error) {
	body := map[string]string{"returnedAt": returnedAt.Format(models.DateTimeLayout)}
	var updated models.Loan
	path := fmt.Sprintf("/loans/%d/return", loanID)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, body, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}
