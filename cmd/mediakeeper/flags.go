package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	// Адрес сервера по умолчанию (локальная разработка).
	// Все эндпоинты бэкенда живут под базовым путем /api.
	defaultServerURL = "http://localhost:8080/api"

	// Переменные окружения.
	envServerURL      = "MEDIAKEEPER_SERVER_URL"
	envGoogleBooksKey = "GOOGLE_BOOKS_API_KEY"
	envDebug          = "MEDIAKEEPER_DEBUG"
)

// config хранит конфигурацию клиента.
type config struct {
	ServerURL      string
	GoogleBooksKey string
	Debug          bool
	ShowVersion    bool
}

// parseFlags разбирает флаги и переменные окружения.
// Флаги имеют приоритет над окружением, окружение над значениями по умолчанию.
func parseFlags() *config {
	// .env необязателен, его отсутствие не ошибка
	_ = godotenv.Load()

	cfg := &config{}

	flag.StringVar(&cfg.ServerURL, "server-url", "",
		fmt.Sprintf("Адрес REST API сервера, включая базовый путь /api (env: %s, default: %s)",
			envServerURL, defaultServerURL))
	flag.BoolVar(&cfg.Debug, "debug", false,
		fmt.Sprintf("Показывать отладочную панель в интерфейсе (env: %s)", envDebug))
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Показать версию и выйти")

	flag.Parse()

	if cfg.ServerURL == "" {
		if value, ok := os.LookupEnv(envServerURL); ok {
			cfg.ServerURL = value
		} else {
			cfg.ServerURL = defaultServerURL
		}
	}
	if !cfg.Debug {
		if value, ok := os.LookupEnv(envDebug); ok && value != "" && value != "0" && value != "false" {
			cfg.Debug = true
		}
	}
	// Ключ Google Books задается только окружением, без него поиск по ISBN
	// работает с ограничениями квоты
	cfg.GoogleBooksKey = os.Getenv(envGoogleBooksKey)

	return cfg
}
