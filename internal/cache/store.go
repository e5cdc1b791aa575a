// Package cache реализует клиентские кэши серверных коллекций.
// Каждая коллекция принадлежит серверу, кэш хранит ее одноразовую копию:
// fetch полностью заменяет содержимое, мутации вносят в кэш только
// сущность из ответа сервера. Оптимистичных обновлений, повторов
// и устаревания по времени нет, актуальность обеспечивается явными
// повторными fetch после мутаций.
package cache

// Store - типизированный кэш одной серверной коллекции с ключом-ID.
// Не потокобезопасен: все записи выполняются из цикла событий TUI,
// команды получают снимки через Items.
type Store[T any] struct {
	items   []T
	keyOf   func(T) int64
	loading bool
	lastErr string
}

// NewStore создает кэш с функцией извлечения идентификатора.
func NewStore[T any](keyOf func(T) int64) *Store[T] {
	return &Store[T]{keyOf: keyOf}
}

// ReplaceAll полностью заменяет коллекцию ответом fetch и сбрасывает ошибку.
func (s *Store[T]) ReplaceAll(items []T) {
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.loading = false
	s.lastErr = ""
}

// Append добавляет созданную сервером сущность в конец коллекции.
func (s *Store[T]) Append(item T) {
	s.items = append(s.items, item)
	s.loading = false
	s.lastErr = ""
}

// Upsert заменяет сущность с тем же ID; если такой нет, добавляет в конец.
func (s *Store[T]) Upsert(item T) {
	id := s.keyOf(item)
	for i := range s.items {
		if s.keyOf(s.items[i]) == id {
			s.items[i] = item
			s.loading = false
			s.lastErr = ""
			return
		}
	}
	s.Append(item)
}

// Remove удаляет сущность по ID. Отсутствующий ID - no-op.
func (s *Store[T]) Remove(id int64) {
	for i := range s.items {
		if s.keyOf(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.loading = false
	s.lastErr = ""
}

// Get возвращает сущность по ID.
func (s *Store[T]) Get(id int64) (T, bool) {
	for i := range s.items {
		if s.keyOf(s.items[i]) == id {
			return s.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Items возвращает копию коллекции: команды bubbletea выполняются
// в горутинах и не должны видеть последующие правки кэша.
func (s *Store[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len возвращает размер коллекции.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// SetLoading выставляет флаг выполняющегося запроса.
func (s *Store[T]) SetLoading(loading bool) {
	s.loading = loading
}

// Loading сообщает, выполняется ли запрос.
func (s *Store[T]) Loading() bool {
	return s.loading
}

// Fail записывает ошибку запроса. Предыдущее содержимое коллекции
// сохраняется: неудачный fetch не стирает последние удачные данные.
func (s *Store[T]) Fail(message string) {
	s.lastErr = message
	s.loading = false
}

// Err возвращает сообщение последней ошибки или пустую строку.
func (s *Store[T]) Err() string {
	return s.lastErr
}

// Reset очищает коллекцию, флаги и ошибку.
func (s *Store[T]) Reset() {
	s.items = nil
	s.loading = false
	s.lastErr = ""
}
