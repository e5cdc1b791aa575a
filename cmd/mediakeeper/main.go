package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/maynagashev/mediakeeper/internal/api"
	"github.com/maynagashev/mediakeeper/internal/auth"
	"github.com/maynagashev/mediakeeper/internal/isbn"
	"github.com/maynagashev/mediakeeper/internal/tui"
)

// Версия подставляется при сборке через -ldflags.
var buildVersion = "dev"

func main() {
	cfg := parseFlags()
	if cfg.ShowVersion {
		fmt.Println("mediakeeper", buildVersion)
		return
	}

	// Настройка логирования в файл: stdout занят интерфейсом
	if err := os.MkdirAll("logs", 0o755); err != nil {
		panic("Не удалось создать каталог логов: " + err.Error())
	}
	logFile, err := os.OpenFile("logs/mediakeeper.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		panic("Не удалось открыть лог-файл: " + err.Error())
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)
	slog.Info("Клиент запускается", "version", buildVersion, "server_url", cfg.ServerURL)

	storage, err := auth.NewStorage("mediakeeper")
	if err != nil {
		panic("Не удалось создать хранилище настроек: " + err.Error())
	}

	apiClient := api.NewHTTPClient(cfg.ServerURL)
	books := isbn.NewClient(cfg.GoogleBooksKey)
	session := auth.NewManager(apiClient, storage)

	tui.Start(apiClient, books, session, storage, cfg.ServerURL, cfg.Debug)
}
