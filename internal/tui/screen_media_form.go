package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/internal/isbn"
	"github.com/maynagashev/mediakeeper/internal/validate"
	"github.com/maynagashev/mediakeeper/models"
)

// prepareMediaForm заполняет форму: пустую для нового медиа,
// значениями существующего при редактировании.
func (m *model) prepareMediaForm(media *models.Media) {
	for i := range m.mediaInputs {
		m.mediaInputs[i].SetValue("")
	}
	m.editingMediaID = 0
	if media != nil {
		m.editingMediaID = media.MediaID
		m.mediaInputs[mediaFieldTitle].SetValue(media.Title)
		m.mediaInputs[mediaFieldType].SetValue(media.Type)
		m.mediaInputs[mediaFieldProducer].SetValue(media.Producer)
		if media.ReleaseYear != 0 {
			m.mediaInputs[mediaFieldReleaseYear].SetValue(strconv.Itoa(media.ReleaseYear))
		}
		m.mediaInputs[mediaFieldISBN].SetValue(media.ISBN)
		m.mediaInputs[mediaFieldNotes].SetValue(media.Notes)
	}
	m.mediaFocusedField = 0
	m.fieldErrors = nil
	focusField(m.mediaInputs, 0)
}

// updateMediaFormScreen обрабатывает ввод в форме медиа.
// Ctrl+B запускает поиск по ISBN в Google Books.
func (m *model) updateMediaFormScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+b" {
		isbnValue := strings.TrimSpace(m.mediaInputs[mediaFieldISBN].Value())
		if isbnValue == "" {
			return m.setStatusMessage("Введите ISBN для поиска")
		}
		lookupCmd := m.lookupISBNCmd(isbnValue)
		statusModel, statusCmd := m.setStatusMessage("Поиск в Google Books...")
		return statusModel, tea.Batch(lookupCmd, statusCmd)
	}

	return m.handleFormInput(
		msg,
		m.mediaInputs,
		&m.mediaFocusedField,
		m.submitMediaForm,
		mediaListScreen,
	)
}

// applyBookInfo подставляет найденные данные книги в форму.
// Поля, которых нет в ответе, остаются как были.
func (m *model) applyBookInfo(book isbn.BookInfo) {
	if book.Title != "" {
		m.mediaInputs[mediaFieldTitle].SetValue(book.Title)
	}
	if book.Producer != "" {
		m.mediaInputs[mediaFieldProducer].SetValue(book.Producer)
	}
	if book.Type != "" {
		m.mediaInputs[mediaFieldType].SetValue(book.Type)
	}
	if book.ReleaseYear != 0 {
		m.mediaInputs[mediaFieldReleaseYear].SetValue(strconv.Itoa(book.ReleaseYear))
	}
}

// submitMediaForm проверяет форму и отправляет медиа на сервер.
func (m *model) submitMediaForm() (tea.Model, tea.Cmd) {
	yearValue := strings.TrimSpace(m.mediaInputs[mediaFieldReleaseYear].Value())
	year := 0
	if yearValue != "" {
		parsed, err := strconv.Atoi(yearValue)
		if err != nil {
			m.fieldErrors = validate.FieldErrors{"ReleaseYear": "год должен быть числом"}
			return m, nil
		}
		year = parsed
	}

	form := validate.MediaForm{
		Title:       strings.TrimSpace(m.mediaInputs[mediaFieldTitle].Value()),
		Type:        strings.ToUpper(strings.TrimSpace(m.mediaInputs[mediaFieldType].Value())),
		Producer:    strings.TrimSpace(m.mediaInputs[mediaFieldProducer].Value()),
		ReleaseYear: year,
		ISBN:        strings.TrimSpace(m.mediaInputs[mediaFieldISBN].Value()),
	}
	if errs := validate.Media(form); errs != nil {
		m.fieldErrors = errs
		return m, nil
	}
	m.fieldErrors = nil

	req := models.MediaRequest{
		Title:       form.Title,
		Type:        form.Type,
		Producer:    form.Producer,
		ReleaseYear: form.ReleaseYear,
		ISBN:        form.ISBN,
		Notes:       strings.TrimSpace(m.mediaInputs[mediaFieldNotes].Value()),
		MediaState:  models.MediaStateAvailable,
		Categories:  []int64{},
	}
	// При редактировании сохраняем состояние, избранное и категории
	if m.editingMediaID != 0 {
		if existing, found := m.caches.Media.Get(m.editingMediaID); found {
			req.MediaState = existing.MediaState
			req.IsFavorite = existing.IsFavorite
			for _, c := range existing.Categories {
				req.Categories = append(req.Categories, c.CategoryID)
			}
		}
	}

	saveCmd := m.saveMediaCmd(m.editingMediaID, req)
	statusModel, statusCmd := m.setStatusMessage("Сохранение...")
	return statusModel, tea.Batch(saveCmd, statusCmd)
}

// viewMediaFormScreen отображает форму медиа.
func (m *model) viewMediaFormScreen() string {
	var b strings.Builder
	header := "Новое медиа"
	if m.editingMediaID != 0 {
		header = "Редактирование медиа"
	}
	b.WriteString(m.theme.title.Render(header) + "\n\n")

	fieldNames := [numMediaFields]string{"Title", "Type", "Producer", "ReleaseYear", "ISBN", "Notes"}
	for i, input := range m.mediaInputs {
		b.WriteString(input.View() + "\n")
		if msg, ok := m.fieldErrors[fieldNames[i]]; ok {
			b.WriteString(m.theme.errText.Render("  "+msg) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.theme.subtle.Render("Ctrl+B: заполнить по ISBN из Google Books") + "\n")

	if m.err != nil {
		b.WriteString(m.theme.errText.Render("Ошибка: "+m.err.Error()) + "\n")
	}
	return b.String()
}
