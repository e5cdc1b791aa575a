package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/mediakeeper/internal/api"
	"github.com/maynagashev/mediakeeper/models"
)

func TestHTTPClient_Login(t *testing.T) {
	tests := []struct {
		name           string
		serverHandler  http.HandlerFunc
		expectedToken  string
		expectedErr    bool
		expectedErrMsg string
	}{
		{
			name: "Успех",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/auth/login", r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization")) // Вход без токена

				var req models.LoginRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "alice", req.Username)
				assert.Equal(t, "secret", req.Password)

				_ = json.NewEncoder(w).Encode(models.LoginResponse{AccessToken: "jwt-token"})
			},
			expectedToken: "jwt-token",
		},
		{
			name: "Неверные учетные данные (401)",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			expectedErr: true,
		},
		{
			name: "Пустой токен в ответе",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(models.LoginResponse{})
			},
			expectedErr:    true,
			expectedErrMsg: "пустой токен",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.serverHandler)
			defer server.Close()

			client := api.NewHTTPClient(server.URL)
			token, err := client.Login(context.Background(), "alice", "secret")

			if tt.expectedErr {
				require.Error(t, err)
				if tt.expectedErrMsg != "" {
					assert.Contains(t, err.Error(), tt.expectedErrMsg)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}

func TestHTTPClient_Register(t *testing.T) {
	t.Run("Сообщение сервера о занятом имени", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Username is already taken"})
		}))
		defer server.Close()

		client := api.NewHTTPClient(server.URL)
		err := client.Register(context.Background(), "a@b.de", "alice", "secret")

		require.Error(t, err)
		var apiErr *api.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Username is already taken", apiErr.Message)
	})

	t.Run("Успех", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req models.RegisterRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "a@b.de", req.Email)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := api.NewHTTPClient(server.URL)
		require.NoError(t, client.Register(context.Background(), "a@b.de", "alice", "secret"))
	})
}

func TestHTTPClient_AuthHeader(t *testing.T) {
	t.Run("Токен добавляется к запросам", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode([]models.Person{})
		}))
		defer server.Close()

		client := api.NewHTTPClient(server.URL)
		client.SetAuthToken("test-token")

		_, err := client.Persons(context.Background())
		require.NoError(t, err)
	})

	t.Run("Без токена запрос не уходит", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			assert.Fail(t, "сервер не должен был получить запрос без токена")
		}))
		defer server.Close()

		client := api.NewHTTPClient(server.URL)
		_, err := client.Persons(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "токен аутентификации отсутствует")
	})

	t.Run("401 превращается в ErrAuthorization", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := api.NewHTTPClient(server.URL)
		client.SetAuthToken("expired")

		_, err := client.MediaByUsername(context.Background())
		require.ErrorIs(t, err, api.ErrAuthorization)
	})
}

func TestHTTPClient_CreatePerson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/persons", r.URL.Path)

		var p models.Person
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		p.PersonID = 42 // Сервер назначает идентификатор
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	}))
	defer server.Close()

	client := api.NewHTTPClient(server.URL)
	client.SetAuthToken("token")

	created, err := client.CreatePerson(context.Background(), models.Person{
		FirstName: "Max", LastName: "Mustermann",
		Address: "Musterweg 1", Email: "max@example.com", Phone: "+4915112345678",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.PersonID)
	assert.Equal(t, "Max", created.FirstName)
}

func TestHTTPClient_CreateLoan(t *testing.T) {
	borrowedAt := models.NewDateTime(time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC))
	dueDate := models.NewDate(time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/loans/3/7", r.URL.Path)
		// Даты уходят параметрами запроса, тело пустое
		assert.Equal(t, "2024-01-24", r.URL.Query().Get("dueDate"))
		assert.Equal(t, "2024-01-10T12:30:00", r.URL.Query().Get("borrowedAt"))

		_ = json.NewEncoder(w).Encode(models.Loan{
			LoanID:     100,
			BorrowedAt: borrowedAt,
			DueDate:    dueDate,
		})
	}))
	defer server.Close()

	client := api.NewHTTPClient(server.URL)
	client.SetAuthToken("token")

	loan, err := client.CreateLoan(context.Background(), 3, 7, dueDate, borrowedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(100), loan.LoanID)
	assert.True(t, loan.BorrowedAt.Equal(borrowedAt.Time))
	assert.Nil(t, loan.ReturnedAt)
}

func TestHTTPClient_AssignCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/media/3/assign-category/7", r.URL.Path)

		_ = json.NewEncoder(w).Encode(models.Media{
			MediaID: 3,
			Title:   "Dune",
			Categories: []models.Category{
				{CategoryID: 7, CategoryName: "Sci-Fi"},
			},
		})
	}))
	defer server.Close()

	client := api.NewHTTPClient(server.URL)
	client.SetAuthToken("token")

	updated, err := client.AssignCategory(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.True(t, updated.HasCategory(7))
}

func TestHTTPClient_OverdueLoans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loans/overdue", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("currentDate"))
		_ = json.NewEncoder(w).Encode([]models.Loan{{LoanID: 1}})
	}))
	defer server.Close()

	client := api.NewHTTPClient(server.URL)
	client.SetAuthToken("token")

	loans, err := client.OverdueLoans(context.Background(),
		models.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, int64(1), loans[0].LoanID)
}

func TestHTTPClient_DeleteMedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/media/11", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := api.NewHTTPClient(server.URL)
	client.SetAuthToken("token")

	require.NoError(t, client.DeleteMedia(context.Background(), 11))
}
