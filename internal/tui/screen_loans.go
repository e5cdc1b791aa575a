package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/internal/loans"
	"github.com/maynagashev/mediakeeper/internal/validate"
	"github.com/maynagashev/mediakeeper/models"
)

// updateLoanListScreen обрабатывает сообщения для экрана списка выдач.
func (m *model) updateLoanListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.loanList, cmd = m.loanList.Update(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.loanList.FilterState() != list.Unfiltered {
		return m, cmd
	}

	switch keyMsg.String() {
	case keyEsc:
		m.state = menuScreen
		return m, tea.ClearScreen
	case keyQuit:
		return m, tea.Quit
	case "f":
		// Переключение фильтра: все -> активные -> просроченные
		m.loanScope = (m.loanScope + 1) % 3
		m.refreshLoanList()
		return m, tea.Batch(cmd, m.refreshLoanListAt(time.Now()))
	case "v":
		return m.submitReturn(cmd)
	case "r":
		return m, tea.Batch(cmd, m.refreshLoanListAt(time.Now()))
	}
	return m, cmd
}

// submitReturn оформляет возврат выбранной выдачи текущим моментом.
func (m *model) submitReturn(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	loan, found := m.selectedLoan()
	if !found {
		return m, cmd
	}
	if loan.ReturnedAt != nil {
		return m.setStatusMessage("Выдача уже возвращена")
	}
	returnedAt := models.NewDateTime(time.Now())
	if errs := validate.Return(loan, returnedAt); errs != nil {
		return m.setStatusMessage(errs.Error())
	}
	return m, tea.Batch(cmd, m.returnLoanCmd(loan.LoanID, returnedAt))
}

// viewLoanListScreen отображает список выдач с ошибкой кеша, если есть.
func (m *model) viewLoanListScreen() string {
	view := m.loanList.View()
	if cacheErr := m.caches.Loans.Err(); cacheErr != "" {
		view += "\n" + m.theme.errText.Render("Ошибка загрузки: "+cacheErr)
	}
	return view
}

// updateLoanPersonScreen обрабатывает выбор персоны для новой выдачи.
func (m *model) updateLoanPersonScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.loanPersonList, cmd = m.loanPersonList.Update(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, cmd
	}

	switch keyMsg.String() {
	case keyEsc, keyQuit:
		m.state = mediaListScreen
		return m, tea.ClearScreen
	case keyEnter:
		item, isPersonItem := m.loanPersonList.SelectedItem().(personItem)
		if !isPersonItem {
			return m, cmd
		}
		m.loanPersonID = item.person.PersonID
		m.loanDueDateInput.SetValue("")
		m.loanDueDateInput.Focus()
		m.state = loanFormScreen
		return m, textinput.Blink
	}
	return m, cmd
}

// updateLoanFormScreen обрабатывает ввод срока возврата новой выдачи.
func (m *model) updateLoanFormScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEsc:
			m.state = loanPersonScreen
			m.loanDueDateInput.Blur()
			return m, tea.ClearScreen
		case keyEnter:
			return m.submitLoanForm()
		}
	}
	var cmd tea.Cmd
	m.loanDueDateInput, cmd = m.loanDueDateInput.Update(msg)
	return m, cmd
}

// submitLoanForm проверяет срок возврата и оформляет выдачу.
func (m *model) submitLoanForm() (tea.Model, tea.Cmd) {
	dueValue := strings.TrimSpace(m.loanDueDateInput.Value())
	parsed, err := time.Parse(models.DateLayout, dueValue)
	if err != nil {
		return m.setStatusMessage("Срок возврата в формате ГГГГ-ММ-ДД")
	}

	borrowedAt := models.NewDateTime(time.Now())
	dueDate := models.NewDate(parsed)
	if errs := validate.Loan(borrowedAt, dueDate); errs != nil {
		// Срок раньше даты выдачи отклоняется без запроса к серверу
		return m.setStatusMessage(errs.Error())
	}

	createCmd := m.createLoanCmd(m.loanMediaID, m.loanPersonID, dueDate, borrowedAt)
	statusModel, statusCmd := m.setStatusMessage("Оформление выдачи...")
	return statusModel, tea.Batch(createCmd, statusCmd)
}

// viewLoanFormScreen отображает форму срока возврата.
func (m *model) viewLoanFormScreen() string {
	var b strings.Builder
	b.WriteString(m.theme.title.Render("Срок возврата") + "\n\n")

	if media, found := m.caches.Media.Get(m.loanMediaID); found {
		b.WriteString("Медиа: " + media.Title + "\n")
	}
	if person, found := m.caches.Persons.Get(m.loanPersonID); found {
		b.WriteString("Кому:  " + person.FullName() + "\n")
	}
	b.WriteString("\n" + m.loanDueDateInput.View() + "\n\n")

	if m.err != nil {
		b.WriteString(m.theme.errText.Render("Ошибка: "+m.err.Error()) + "\n")
	}
	return b.String()
}

// overdueCount возвращает количество просроченных выдач на текущий момент.
func (m *model) overdueCount() int {
	return len(loans.Filter(m.caches.Loans.Items(), loans.StatusOverdue, time.Now()))
}
