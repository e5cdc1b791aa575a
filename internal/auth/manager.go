// Package auth реализует сессию пользователя: вход, регистрацию,
// восстановление сессии при запуске и выход. Токен хранится локально
// (пакетный Storage), claims извлекаются без проверки подписи,
// авторитетная проверка выполняется сервером на каждом запросе.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/maynagashev/mediakeeper/internal/api"
)

// Session - состояние аутентификации клиента.
type Session struct {
	Username      string // Значение subject из токена, отображаемое имя
	Token         string
	Authenticated bool
}

// Manager управляет жизненным циклом сессии поверх API клиента и Storage.
type Manager struct {
	api     api.Client
	storage *Storage
	session Session
}

// NewManager создает менеджер сессии.
func NewManager(client api.Client, storage *Storage) *Manager {
	return &Manager{api: client, storage: storage}
}

// Session возвращает текущее состояние сессии.
func (m *Manager) Session() Session {
	return m.session
}

// Login выполняет вход и сохраняет токен в выбранной области хранения.
func (m *Manager) Login(ctx context.Context, username, password string, stayLoggedIn bool) (Session, error) {
	token, err := m.api.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	claims, err := DecodeToken(token)
	if err != nil {
		return Session{}, err
	}
	if saveErr := m.storage.SaveToken(token, stayLoggedIn); saveErr != nil {
		// Вход состоялся, сессия живет в памяти, просто не переживет рестарт.
		slog.Warn("Не удалось сохранить токен", "error", saveErr)
	}
	m.api.SetAuthToken(token)
	m.session = Session{Username: claims.Subject, Token: token, Authenticated: true}
	return m.session, nil
}

// Register регистрирует пользователя. Сессию не открывает,
// после регистрации пользователь входит обычным путем.
func (m *Manager) Register(ctx context.Context, email, username, password string) error {
	return m.api.Register(ctx, email, username, password)
}

// Restore восстанавливает сессию из сохраненного токена при запуске.
// Просроченный или битый токен равнозначен отсутствующему: токен
// удаляется, сессия остается неаутентифицированной, ошибок наружу нет.
func (m *Manager) Restore(now time.Time) Session {
	token, _ := m.storage.LoadToken()
	if token == "" {
		return m.session
	}
	claims, err := ValidateToken(token, now)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			slog.Info("Сохраненный токен просрочен, сессия не восстановлена")
		} else {
			slog.Warn("Не удалось декодировать сохраненный токен", "error", err)
		}
		if clearErr := m.storage.ClearTokens(); clearErr != nil {
			slog.Warn("Не удалось удалить недействительный токен", "error", clearErr)
		}
		return m.session
	}
	m.api.SetAuthToken(token)
	m.session = Session{Username: claims.Subject, Token: token, Authenticated: true}
	slog.Info("Сессия восстановлена", "username", claims.Subject)
	return m.session
}

// Logout удаляет токен из обеих областей и сбрасывает сессию.
// Очистку кэшей сущностей выполняет вызывающая сторона.
func (m *Manager) Logout() error {
	m.session = Session{}
	m.api.SetAuthToken("")
	return m.storage.ClearTokens()
}

// TogglePersistence переносит токен между областями хранения.
func (m *Manager) TogglePersistence(persistent bool) error {
	return m.storage.TogglePersistence(persistent)
}
