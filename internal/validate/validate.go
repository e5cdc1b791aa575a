// Package validate проверяет формы перед отправкой на сервер.
// Ошибки привязаны к полям, чтобы экраны могли подсветить конкретное поле.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/maynagashev/mediakeeper/models"
)

// ErrCategoryAssigned возвращается при попытке назначить медиа уже
// назначенную категорию. Сервер такую операцию тоже отклонит, но
// проверка на клиенте избавляет от лишнего запроса.
var ErrCategoryAssigned = errors.New("категория уже назначена")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Телефон: цифры, пробелы, скобки, дефисы, необязательный "+" в начале
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return isPhone(fl.Field().String())
	})
	return v
}

func isPhone(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 5
}

// FieldErrors - сообщения об ошибках по именам полей формы.
type FieldErrors map[string]string

// Error реализует error, объединяя сообщения всех полей.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// RegisterForm - данные формы регистрации.
type RegisterForm struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=8"`
}

// PersonForm - данные формы персоны. Обязательны только имя и фамилия.
type PersonForm struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Address   string `validate:"-"`
	Email     string `validate:"omitempty,email"`
	Phone     string `validate:"omitempty,phone"`
}

// MediaForm - данные формы медиа.
type MediaForm struct {
	Title       string `validate:"required"`
	Type        string `validate:"required,oneof=BOOK CD FILM GAME"`
	Producer    string `validate:"-"`
	ReleaseYear int    `validate:"omitempty,min=1000,max=2100"`
	ISBN        string `validate:"omitempty,isbn"`
}

// Register проверяет форму регистрации.
func Register(form RegisterForm) FieldErrors {
	return collect(validate.Struct(form))
}

// Person проверяет форму персоны.
func Person(form PersonForm) FieldErrors {
	return collect(validate.Struct(form))
}

// Media проверяет форму медиа.
func Media(form MediaForm) FieldErrors {
	return collect(validate.Struct(form))
}

// Loan проверяет параметры новой выдачи: срок возврата не может быть
// раньше даты выдачи.
func Loan(borrowedAt models.DateTime, dueDate models.Date) FieldErrors {
	if dueDate.Time.Before(truncateToDay(borrowedAt.Time)) {
		return FieldErrors{"dueDate": "срок возврата раньше даты выдачи"}
	}
	return nil
}

// Return проверяет дату возврата выдачи.
func Return(loan models.Loan, returnedAt models.DateTime) FieldErrors {
	if returnedAt.Time.Before(loan.BorrowedAt.Time) {
		return FieldErrors{"returnedAt": "дата возврата раньше даты выдачи"}
	}
	return nil
}

// AssignCategory проверяет, что категория еще не назначена медиа.
func AssignCategory(media models.Media, categoryID int64) error {
	if media.HasCategory(categoryID) {
		return ErrCategoryAssigned
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// collect переводит ошибки валидатора в сообщения по полям.
func collect(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "email":
		return "некорректный email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("минимум %s символов", fe.Param())
		}
		return fmt.Sprintf("не меньше %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("максимум %s символов", fe.Param())
		}
		return fmt.Sprintf("не больше %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("допустимые значения: %s", fe.Param())
	case "isbn":
		return "некорректный ISBN"
	case "phone":
		return "некорректный номер телефона"
	default:
		return "некорректное значение"
	}
}
