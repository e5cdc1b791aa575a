// Package loans вычисляет производные состояния выдач и агрегированную
// статистику. Все функции чистые: текущий момент передается явным
// параметром asOf, а не читается из часов, чтобы классификация была
// воспроизводимой и тестируемой.
package loans

import (
	"time"

	"github.com/maynagashev/mediakeeper/models"
)

// Status - производный статус выдачи. В данных он не хранится,
// вычисляется из borrowedAt/dueDate/returnedAt.
type Status int

const (
	// StatusActive - выдача не возвращена и срок не истек.
	StatusActive Status = iota
	// StatusOverdue - срок истек, возврата не было.
	StatusOverdue
	// StatusReturned - медиа возвращено.
	StatusReturned
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "активна"
	case StatusOverdue:
		return "просрочена"
	case StatusReturned:
		return "возвращена"
	default:
		return "неизвестно"
	}
}

// StatusOf классифицирует выдачу на момент asOf.
// Возвращена тогда и только тогда, когда есть returnedAt;
// просрочена тогда и только тогда, когда dueDate строго раньше asOf
// и возврата не было.
func StatusOf(loan models.Loan, asOf time.Time) Status {
	if loan.ReturnedAt != nil {
		return StatusReturned
	}
	if loan.DueDate.Before(asOf) {
		return StatusOverdue
	}
	return StatusActive
}

// IsLate сообщает, был ли (или будет ли) возврат с опозданием:
// возвращенная выдача поздняя, если возврат позже срока;
// невозвращенная - если срок уже истек на момент asOf.
func IsLate(loan models.Loan, asOf time.Time) bool {
	if loan.ReturnedAt != nil {
		return loan.ReturnedAt.After(loan.DueDate.Time)
	}
	return asOf.After(loan.DueDate.Time)
}

// Filter возвращает выдачи с указанным статусом на момент asOf.
func Filter(all []models.Loan, status Status, asOf time.Time) []models.Loan {
	var out []models.Loan
	for _, loan := range all {
		if StatusOf(loan, asOf) == status {
			out = append(out, loan)
		}
	}
	return out
}
