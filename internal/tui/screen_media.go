package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/internal/loans"
	"github.com/maynagashev/mediakeeper/internal/validate"
	"github.com/maynagashev/mediakeeper/models"
)

// updateMediaListScreen обрабатывает сообщения для экрана списка медиа.
//
//nolint:gocognit,gocyclo // Горячие клавиши списка
func (m *model) updateMediaListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.mediaList, cmd = m.mediaList.Update(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.mediaList.FilterState() != list.Unfiltered {
		return m, cmd
	}

	switch keyMsg.String() {
	case keyEsc:
		m.state = menuScreen
		return m, tea.ClearScreen
	case keyQuit:
		return m, tea.Quit
	case keyEnter:
		if media, found := m.selectedMedia(); found {
			m.selectedMediaID = media.MediaID
			m.state = mediaDetailScreen
			slog.Info("Переход к деталям медиа", "title", media.Title)
			return m, tea.ClearScreen
		}
	case keyAdd:
		m.prepareMediaForm(nil)
		m.state = mediaFormScreen
		return m, textinput.Blink
	case keyEdit:
		if media, found := m.selectedMedia(); found {
			m.prepareMediaForm(&media)
			m.state = mediaFormScreen
			return m, textinput.Blink
		}
	case keyDelete:
		if media, found := m.selectedMedia(); found {
			return m, tea.Batch(cmd, m.deleteMediaCmd(media.MediaID))
		}
	case "f":
		if media, found := m.selectedMedia(); found {
			return m, tea.Batch(cmd, m.setFavoriteCmd(media.MediaID, !media.IsFavorite))
		}
	case "c":
		if media, found := m.selectedMedia(); found {
			m.selectedMediaID = media.MediaID
			m.refreshCategoryPickList()
			m.previousState = mediaListScreen
			m.state = categoryPickScreen
			return m, tea.ClearScreen
		}
	case "v":
		return m.startLoanFlow(cmd)
	case "r":
		return m, tea.Batch(cmd, m.fetchMediaCmd())
	}
	return m, cmd
}

// startLoanFlow начинает оформление выдачи для выбранного медиа.
// Выдать можно только доступное медиа.
func (m *model) startLoanFlow(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	media, found := m.selectedMedia()
	if !found {
		return m, cmd
	}
	if media.MediaState != models.MediaStateAvailable {
		return m.setStatusMessage("Медиа сейчас нельзя выдать: " + mediaStateLabel(media.MediaState))
	}
	m.loanMediaID = media.MediaID
	m.refreshLoanPersonList()
	if m.caches.Persons.Len() == 0 {
		return m.setStatusMessage("Сначала добавьте хотя бы одну персону")
	}
	m.state = loanPersonScreen
	return m, tea.ClearScreen
}

// updateMediaDetailScreen обрабатывает клавиши экрана деталей медиа.
func (m *model) updateMediaDetailScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyEsc, keyQuit:
		m.state = mediaListScreen
		return m, tea.ClearScreen
	case "f":
		if media, found := m.caches.Media.Get(m.selectedMediaID); found {
			return m, m.setFavoriteCmd(media.MediaID, !media.IsFavorite)
		}
	case "c":
		m.refreshCategoryPickList()
		m.previousState = mediaDetailScreen
		m.state = categoryPickScreen
		return m, tea.ClearScreen
	}
	return m, nil
}

// viewMediaDetailScreen отображает детали выбранного медиа.
func (m *model) viewMediaDetailScreen() string {
	media, found := m.caches.Media.Get(m.selectedMediaID)
	if !found {
		return "Медиа не найдено в кеше."
	}

	var b strings.Builder
	title := media.Title
	if media.IsFavorite {
		title = m.theme.favorite.Render("★ ") + title
	}
	b.WriteString(m.theme.title.Render(title) + "\n\n")
	b.WriteString(fmt.Sprintf("Тип:        %s\n", media.Type))
	if media.Producer != "" {
		b.WriteString(fmt.Sprintf("Автор:      %s\n", media.Producer))
	}
	if media.ReleaseYear != 0 {
		b.WriteString(fmt.Sprintf("Год:        %d\n", media.ReleaseYear))
	}
	if media.ISBN != "" {
		b.WriteString(fmt.Sprintf("ISBN:       %s\n", media.ISBN))
	}
	b.WriteString(fmt.Sprintf("Состояние:  %s\n", mediaStateLabel(media.MediaState)))
	if len(media.Categories) > 0 {
		names := make([]string, 0, len(media.Categories))
		for _, c := range media.Categories {
			names = append(names, c.CategoryName)
		}
		b.WriteString(fmt.Sprintf("Категории:  %s\n", strings.Join(names, ", ")))
	}
	if media.Notes != "" {
		b.WriteString("\n" + media.Notes + "\n")
	}

	// История выдач этого медиа из кеша
	asOf := time.Now()
	history := make([]models.Loan, 0)
	for _, loan := range m.caches.Loans.Items() {
		if loan.Media.MediaID == media.MediaID {
			history = append(history, loan)
		}
	}
	if len(history) > 0 {
		b.WriteString("\n" + m.theme.title.Render("Выдачи") + "\n")
		for _, loan := range history {
			line := fmt.Sprintf("  %s с %s, %s",
				loan.Person.FullName(),
				loan.BorrowedAt.Time.Format("02.01.2006"),
				loans.StatusOf(loan, asOf).String(),
			)
			if loans.StatusOf(loan, asOf) == loans.StatusOverdue {
				line = m.theme.overdue.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// updateCategoryPickScreen обрабатывает выбор категории для медиа.
// Enter назначает категорию либо снимает уже назначенную.
func (m *model) updateCategoryPickScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.categoryPickList, cmd = m.categoryPickList.Update(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, cmd
	}

	switch keyMsg.String() {
	case keyEsc, keyQuit:
		m.state = m.previousState
		return m, tea.ClearScreen
	case keyEnter:
		item, isCategoryItem := m.categoryPickList.SelectedItem().(categoryItem)
		if !isCategoryItem {
			return m, cmd
		}
		if item.assigned {
			return m, tea.Batch(cmd, m.removeCategoryCmd(m.selectedMediaID, item.category.CategoryID))
		}
		// Проверка по кешу: повторное назначение отклоняется без запроса
		if media, found := m.caches.Media.Get(m.selectedMediaID); found {
			if err := validate.AssignCategory(media, item.category.CategoryID); err != nil {
				return m.setStatusMessage(err.Error())
			}
		}
		return m, tea.Batch(cmd, m.assignCategoryCmd(m.selectedMediaID, item.category.CategoryID))
	}
	return m, cmd
}
