// Package isbn ищет книгу по ISBN в Google Books и возвращает данные
// для предзаполнения формы медиа.
package isbn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1"

	requestTimeout = 4 * time.Second
)

// ErrNotFound возвращается, когда по ISBN ничего не найдено.
var ErrNotFound = errors.New("по этому ISBN ничего не найдено")

// BookInfo - данные книги для предзаполнения формы. Пустые поля
// означают, что Google Books ими не располагает.
type BookInfo struct {
	Title       string
	Producer    string // Авторы через запятую
	Type        string
	ReleaseYear int
}

// Client - клиент Google Books API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient создает клиент с ключом API. Ключ может быть пустым:
// Google Books отвечает и без него, но с более жесткими лимитами.
func NewClient(apiKey string) *Client {
	return NewClientAt(defaultBaseURL, apiKey)
}

// NewClientAt создает клиент с произвольным базовым URL (для тестов).
func NewClientAt(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Ответ Google Books, только нужные поля.
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			PrintType     string   `json:"printType"`
			PublishedDate string   `json:"publishedDate"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Lookup ищет книгу по ISBN. Используется первый результат поиска.
func (c *Client) Lookup(ctx context.Context, isbn string) (BookInfo, error) {
	query := url.Values{}
	query.Set("q", "isbn:"+isbn)
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}

	reqURL := c.baseURL + "/volumes?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return BookInfo{}, fmt.Errorf("создание запроса: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return BookInfo{}, fmt.Errorf("запрос к Google Books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Google Books вернул ошибку", "status", resp.StatusCode)
		return BookInfo{}, fmt.Errorf("google books: статус %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return BookInfo{}, fmt.Errorf("разбор ответа: %w", err)
	}
	if len(payload.Items) == 0 {
		return BookInfo{}, ErrNotFound
	}

	info := payload.Items[0].VolumeInfo
	book := BookInfo{
		Title:    info.Title,
		Producer: strings.Join(info.Authors, ", "),
		Type:     info.PrintType,
	}
	// publishedDate бывает "2004", "2004-05" или "2004-05-17"
	year, _, _ := strings.Cut(info.PublishedDate, "-")
	if y, err := strconv.Atoi(year); err == nil {
		book.ReleaseYear = y
	}
	return book, nil
}
