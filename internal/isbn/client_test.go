package isbn_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/mediakeeper/internal/isbn"
)

func TestLookup(t *testing.T) {
	t.Run("Успешный поиск предзаполняет все поля", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/volumes", r.URL.Path)
			assert.Equal(t, "isbn:9785389049949", r.URL.Query().Get("q"))
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"items": [{
					"volumeInfo": {
						"title": "Солярис",
						"authors": ["Станислав Лем", "Дмитрий Брускин"],
						"printType": "BOOK",
						"publishedDate": "1961-06-17"
					}
				}]
			}`))
		}))
		defer server.Close()

		client := isbn.NewClientAt(server.URL, "test-key")
		book, err := client.Lookup(context.Background(), "9785389049949")
		require.NoError(t, err)
		assert.Equal(t, "Солярис", book.Title)
		assert.Equal(t, "Станислав Лем, Дмитрий Брускин", book.Producer)
		assert.Equal(t, "BOOK", book.Type)
		assert.Equal(t, 1961, book.ReleaseYear)
	})

	t.Run("Год без месяца и дня", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"items":[{"volumeInfo":{"title":"Солярис","publishedDate":"1961"}}]}`))
		}))
		defer server.Close()

		book, err := isbn.NewClientAt(server.URL, "").Lookup(context.Background(), "9785389049949")
		require.NoError(t, err)
		assert.Equal(t, 1961, book.ReleaseYear)
		assert.Empty(t, book.Producer)
	})

	t.Run("Пустой результат - ErrNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"totalItems":0}`))
		}))
		defer server.Close()

		_, err := isbn.NewClientAt(server.URL, "").Lookup(context.Background(), "0000000000")
		assert.ErrorIs(t, err, isbn.ErrNotFound)
	})

	t.Run("Без ключа параметр key не отправляется", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("key"))
			_, _ = w.Write([]byte(`{"items":[{"volumeInfo":{"title":"X"}}]}`))
		}))
		defer server.Close()

		_, err := isbn.NewClientAt(server.URL, "").Lookup(context.Background(), "9785389049949")
		require.NoError(t, err)
	})

	t.Run("Ошибка сервера", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := isbn.NewClientAt(server.URL, "bad-key").Lookup(context.Background(), "9785389049949")
		assert.Error(t, err)
	})
}
