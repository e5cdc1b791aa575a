package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/internal/validate"
	"github.com/maynagashev/mediakeeper/models"
)

// updatePersonListScreen обрабатывает сообщения для экрана списка персон.
func (m *model) updatePersonListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.personList, cmd = m.personList.Update(msg)

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.personList.FilterState() != list.Unfiltered {
		return m, cmd
	}

	switch keyMsg.String() {
	case keyEsc:
		m.state = menuScreen
		return m, tea.ClearScreen
	case keyQuit:
		return m, tea.Quit
	case keyAdd:
		m.preparePersonForm(nil)
		m.state = personFormScreen
		return m, textinput.Blink
	case keyEdit:
		if person, found := m.selectedPerson(); found {
			m.preparePersonForm(&person)
			m.state = personFormScreen
			return m, textinput.Blink
		}
	case keyDelete:
		if person, found := m.selectedPerson(); found {
			return m, tea.Batch(cmd, m.deletePersonCmd(person.PersonID))
		}
	case "r":
		return m, tea.Batch(cmd, m.fetchPersonsCmd())
	}
	return m, cmd
}

// preparePersonForm заполняет форму персоны.
func (m *model) preparePersonForm(person *models.Person) {
	for i := range m.personInputs {
		m.personInputs[i].SetValue("")
	}
	m.editingPersonID = 0
	if person != nil {
		m.editingPersonID = person.PersonID
		m.personInputs[personFieldFirstName].SetValue(person.FirstName)
		m.personInputs[personFieldLastName].SetValue(person.LastName)
		m.personInputs[personFieldAddress].SetValue(person.Address)
		m.personInputs[personFieldEmail].SetValue(person.Email)
		m.personInputs[personFieldPhone].SetValue(person.Phone)
	}
	m.personFocusedField = 0
	m.fieldErrors = nil
	focusField(m.personInputs, 0)
}

// updatePersonFormScreen обрабатывает ввод в форме персоны.
func (m *model) updatePersonFormScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleFormInput(
		msg,
		m.personInputs,
		&m.personFocusedField,
		m.submitPersonForm,
		personListScreen,
	)
}

// submitPersonForm проверяет форму и отправляет персону на сервер.
func (m *model) submitPersonForm() (tea.Model, tea.Cmd) {
	form := validate.PersonForm{
		FirstName: strings.TrimSpace(m.personInputs[personFieldFirstName].Value()),
		LastName:  strings.TrimSpace(m.personInputs[personFieldLastName].Value()),
		Address:   strings.TrimSpace(m.personInputs[personFieldAddress].Value()),
		Email:     strings.TrimSpace(m.personInputs[personFieldEmail].Value()),
		Phone:     strings.TrimSpace(m.personInputs[personFieldPhone].Value()),
	}
	if errs := validate.Person(form); errs != nil {
		m.fieldErrors = errs
		return m, nil
	}
	m.fieldErrors = nil

	person := models.Person{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Address:   form.Address,
		Email:     form.Email,
		Phone:     form.Phone,
	}
	saveCmd := m.savePersonCmd(m.editingPersonID, person)
	statusModel, statusCmd := m.setStatusMessage("Сохранение...")
	return statusModel, tea.Batch(saveCmd, statusCmd)
}

// viewPersonFormScreen отображает форму персоны.
func (m *model) viewPersonFormScreen() string {
	var b strings.Builder
	header := "Новая персона"
	if m.editingPersonID != 0 {
		header = "Редактирование персоны"
	}
	b.WriteString(m.theme.title.Render(header) + "\n\n")

	fieldNames := [numPersonFields]string{"FirstName", "LastName", "Address", "Email", "Phone"}
	for i, input := range m.personInputs {
		b.WriteString(input.View() + "\n")
		if msg, ok := m.fieldErrors[fieldNames[i]]; ok {
			b.WriteString(m.theme.errText.Render("  "+msg) + "\n")
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.theme.errText.Render("Ошибка: "+m.err.Error()) + "\n")
	}
	return b.String()
}
