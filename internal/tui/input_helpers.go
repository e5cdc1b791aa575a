package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// focusField переводит фокус на поле с индексом idx, снимая его с остальных.
func focusField(inputs []textinput.Model, idx int) {
	for i := range inputs {
		if i == idx {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

// blurFields снимает фокус со всех полей.
func blurFields(inputs []textinput.Model) {
	for i := range inputs {
		inputs[i].Blur()
	}
}

// handleFormKeys обрабатывает Tab, Shift+Tab, стрелки и Enter в наборе полей.
// Возвращает модель, команду и флаг, указывающий, была ли клавиша обработана.
func (m *model) handleFormKeys(
	keyMsg tea.KeyMsg,
	inputs []textinput.Model,
	focusedFieldIdx *int,
	onSubmit func() (tea.Model, tea.Cmd),
) (tea.Model, tea.Cmd, bool) {
	total := len(inputs)
	switch keyMsg.String() {
	case keyTab, keyDown:
		*focusedFieldIdx = (*focusedFieldIdx + 1) % total
		focusField(inputs, *focusedFieldIdx)
		return m, textinput.Blink, true
	case keyShiftTab, keyUp:
		*focusedFieldIdx = (*focusedFieldIdx + total - 1) % total
		focusField(inputs, *focusedFieldIdx)
		return m, textinput.Blink, true
	case keyEnter:
		if *focusedFieldIdx < total-1 {
			// Enter в промежуточном поле переводит фокус дальше
			*focusedFieldIdx++
			focusField(inputs, *focusedFieldIdx)
			return m, textinput.Blink, true
		}
		// Enter в последнем поле отправляет форму
		newModel, cmd := onSubmit()
		return newModel, cmd, true
	default:
		return m, nil, false
	}
}

// handleFormInput обрабатывает ввод в наборе полей формы: переключение
// фокуса, отправку по Enter и возврат по Esc.
func (m *model) handleFormInput(
	msg tea.Msg,
	inputs []textinput.Model,
	focusedFieldIdx *int,
	onSubmit func() (tea.Model, tea.Cmd),
	previousState screenState,
) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Сначала обрабатываем Esc
		if keyMsg.String() == keyEsc {
			m.state = previousState
			blurFields(inputs)
			m.fieldErrors = nil
			m.err = nil
			return m, tea.ClearScreen
		}

		newModel, keyCmd, handled := m.handleFormKeys(keyMsg, inputs, focusedFieldIdx, onSubmit)
		if handled {
			return newModel, keyCmd
		}
	}

	// Остальные сообщения передаем активному полю
	var cmd tea.Cmd
	idx := *focusedFieldIdx
	inputs[idx], cmd = inputs[idx].Update(msg)
	return m, cmd
}
