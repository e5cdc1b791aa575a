package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Имена файлов в каталогах хранения.
const (
	tokenFileName = "token"
	themeFileName = "theme"
	lockFileName  = ".lock"

	filePerm = 0600
	dirPerm  = 0700
)

// Storage хранит токен в одной из двух областей: постоянной (каталог
// конфигурации пользователя, аналог localStorage) и сессионной (временный
// каталог, очищается системой, аналог sessionStorage). Пользователь
// выбирает область флагом "оставаться в системе".
type Storage struct {
	persistentDir string
	sessionDir    string
	fileLock      *flock.Flock // Защита от параллельно запущенных экземпляров
}

// NewStorage создает хранилище в стандартных каталогах.
func NewStorage(appName string) (*Storage, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("не удалось определить каталог конфигурации: %w", err)
	}
	persistentDir := filepath.Join(configDir, appName)
	sessionDir := filepath.Join(os.TempDir(), appName+"-session")
	return NewStorageAt(persistentDir, sessionDir), nil
}

// NewStorageAt создает хранилище в указанных каталогах (используется в тестах).
func NewStorageAt(persistentDir, sessionDir string) *Storage {
	return &Storage{
		persistentDir: persistentDir,
		sessionDir:    sessionDir,
		fileLock:      flock.New(filepath.Join(persistentDir, lockFileName)),
	}
}

// withLock выполняет fn под эксклюзивной файловой блокировкой.
func (s *Storage) withLock(fn func() error) error {
	if err := os.MkdirAll(s.persistentDir, dirPerm); err != nil {
		return fmt.Errorf("не удалось создать каталог хранилища: %w", err)
	}
	locked, err := s.fileLock.TryLock()
	if err != nil {
		return fmt.Errorf("ошибка блокировки хранилища: %w", err)
	}
	if !locked {
		return errors.New("хранилище занято другим экземпляром приложения")
	}
	defer func() {
		if unlockErr := s.fileLock.Unlock(); unlockErr != nil {
			slog.Warn("Не удалось снять блокировку хранилища", "error", unlockErr)
		}
	}()
	return fn()
}

// SaveToken записывает токен в выбранную область и удаляет его из другой:
// токен никогда не лежит в обеих областях одновременно.
func (s *Storage) SaveToken(token string, persistent bool) error {
	targetDir, otherDir := s.sessionDir, s.persistentDir
	if persistent {
		targetDir, otherDir = s.persistentDir, s.sessionDir
	}
	return s.withLock(func() error {
		if err := os.MkdirAll(targetDir, dirPerm); err != nil {
			return fmt.Errorf("не удалось создать каталог токена: %w", err)
		}
		if err := os.WriteFile(filepath.Join(targetDir, tokenFileName), []byte(token), filePerm); err != nil {
			return fmt.Errorf("не удалось записать токен: %w", err)
		}
		removeIfExists(filepath.Join(otherDir, tokenFileName))
		return nil
	})
}

// LoadToken читает токен: сначала из постоянной области, затем из сессионной.
// Отсутствие токена ошибкой не считается, возвращается пустая строка.
func (s *Storage) LoadToken() (token string, persistent bool) {
	if data, err := os.ReadFile(filepath.Join(s.persistentDir, tokenFileName)); err == nil {
		return string(data), true
	}
	if data, err := os.ReadFile(filepath.Join(s.sessionDir, tokenFileName)); err == nil {
		return string(data), false
	}
	return "", false
}

// ClearTokens удаляет токен из обеих областей независимо от того, где он был.
func (s *Storage) ClearTokens() error {
	return s.withLock(func() error {
		removeIfExists(filepath.Join(s.persistentDir, tokenFileName))
		removeIfExists(filepath.Join(s.sessionDir, tokenFileName))
		return nil
	})
}

// TogglePersistence переносит текущий токен в указанную область,
// не инвалидируя его. Если токена нет, ничего не делает.
func (s *Storage) TogglePersistence(persistent bool) error {
	token, _ := s.LoadToken()
	if token == "" {
		return nil
	}
	return s.SaveToken(token, persistent)
}

// SaveTheme сохраняет предпочтение темы ("light" или "dark").
func (s *Storage) SaveTheme(theme string) error {
	return s.withLock(func() error {
		return os.WriteFile(filepath.Join(s.persistentDir, themeFileName), []byte(theme), filePerm)
	})
}

// LoadTheme возвращает сохраненную тему или пустую строку.
func (s *Storage) LoadTheme() string {
	data, err := os.ReadFile(filepath.Join(s.persistentDir, themeFileName))
	if err != nil {
		return ""
	}
	return string(data)
}

func removeIfExists(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Не удалось удалить файл", "path", path, "error", err)
	}
}
