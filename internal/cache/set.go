package cache

import "github.com/maynagashev/mediakeeper/models"

// Set объединяет кэши всех серверных коллекций приложения.
// Выдачи кэшируются тремя независимыми срезами (все, активные,
// просроченные), потому что каждый фильтр запрашивается
// у сервера отдельным эндпоинтом.
type Set struct {
	Media        *Store[models.Media]
	Persons      *Store[models.Person]
	Categories   *Store[models.Category]
	Loans        *Store[models.Loan]
	ActiveLoans  *Store[models.Loan]
	OverdueLoans *Store[models.Loan]
	RecentUsers  *Store[models.User]
}

// NewSet создает пустые кэши для всех сущностей.
func NewSet() *Set {
	loanKey := func(l models.Loan) int64 { return l.LoanID }
	return &Set{
		Media:        NewStore(func(m models.Media) int64 { return m.MediaID }),
		Persons:      NewStore(func(p models.Person) int64 { return p.PersonID }),
		Categories:   NewStore(func(c models.Category) int64 { return c.CategoryID }),
		Loans:        NewStore(loanKey),
		ActiveLoans:  NewStore(loanKey),
		OverdueLoans: NewStore(loanKey),
		RecentUsers:  NewStore(func(u models.User) int64 { return u.UserID }),
	}
}

// Reset безусловно очищает все кэши. Вызывается при выходе из системы.
func (s *Set) Reset() {
	s.Media.Reset()
	s.Persons.Reset()
	s.Categories.Reset()
	s.Loans.Reset()
	s.ActiveLoans.Reset()
	s.OverdueLoans.Reset()
	s.RecentUsers.Reset()
}
