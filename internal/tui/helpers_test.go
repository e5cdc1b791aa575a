//nolint:testpackage // Тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/mediakeeper/internal/api"
	"github.com/maynagashev/mediakeeper/internal/auth"
	"github.com/maynagashev/mediakeeper/internal/cache"
	"github.com/maynagashev/mediakeeper/internal/isbn"
	"github.com/maynagashev/mediakeeper/models"
)

// mockAPIClient - мок API клиента. Встраивает интерфейс, чтобы
// переопределять только нужные тесту методы.
type mockAPIClient struct {
	mock.Mock
	api.Client
}

func (m *mockAPIClient) Login(_ context.Context, username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

func (m *mockAPIClient) Register(_ context.Context, email, username, password string) error {
	args := m.Called(email, username, password)
	return args.Error(0)
}

func (m *mockAPIClient) SetAuthToken(token string) {
	m.Called(token)
}

func (m *mockAPIClient) MediaByUsername(_ context.Context) ([]models.Media, error) {
	args := m.Called()
	items, _ := args.Get(0).([]models.Media)
	return items, args.Error(1)
}

func (m *mockAPIClient) CreateMedia(_ context.Context, req models.MediaRequest) (*models.Media, error) {
	args := m.Called(req)
	media, _ := args.Get(0).(*models.Media)
	return media, args.Error(1)
}

func (m *mockAPIClient) SetFavorite(_ context.Context, id int64, isFavorite bool) (*models.Media, error) {
	args := m.Called(id, isFavorite)
	media, _ := args.Get(0).(*models.Media)
	return media, args.Error(1)
}

func (m *mockAPIClient) AssignCategory(_ context.Context, mediaID, categoryID int64) (*models.Media, error) {
	args := m.Called(mediaID, categoryID)
	media, _ := args.Get(0).(*models.Media)
	return media, args.Error(1)
}

func (m *mockAPIClient) CreateLoan(_ context.Context, mediaID, personID int64,
	dueDate models.Date, borrowedAt models.DateTime,
) (*models.Loan, error) {
	args := m.Called(mediaID, personID, dueDate, borrowedAt)
	loan, _ := args.Get(0).(*models.Loan)
	return loan, args.Error(1)
}

func (m *mockAPIClient) ReturnLoan(_ context.Context, loanID int64, returnedAt models.DateTime) (*models.Loan, error) {
	args := m.Called(loanID, returnedAt)
	loan, _ := args.Get(0).(*models.Loan)
	return loan, args.Error(1)
}

func (m *mockAPIClient) ActiveLoans(_ context.Context) ([]models.Loan, error) {
	args := m.Called()
	loans, _ := args.Get(0).([]models.Loan)
	return loans, args.Error(1)
}

func (m *mockAPIClient) RecentUsers(_ context.Context) ([]models.User, error) {
	args := m.Called()
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

// newTestModel создает модель с моком API и временным хранилищем токенов.
func newTestModel(t *testing.T) (*model, *mockAPIClient) {
	t.Helper()
	client := &mockAPIClient{}
	storage := auth.NewStorageAt(t.TempDir(), t.TempDir())
	session := auth.NewManager(client, storage)
	books := isbn.NewClientAt("http://127.0.0.1:0", "")
	m := initModel(client, books, session, storage, cache.NewSet(), "http://localhost:8080", false)
	return &m, client
}

// makeTestToken создает подписанный HS256 токен со сроком действия час.
// Клиент подпись не проверяет, поэтому ключ значения не имеет.
func makeTestToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func testDate(y int, mo time.Month, d int) models.Date {
	return models.NewDate(time.Date(y, mo, d, 0, 0, 0, 0, time.UTC))
}

func testDateTime(y int, mo time.Month, d, hh int) models.DateTime {
	return models.NewDateTime(time.Date(y, mo, d, hh, 0, 0, 0, time.UTC))
}

func returnedAt(dt models.DateTime) *models.DateTime {
	return &dt
}
