package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/maynagashev/mediakeeper/models"
)

// refreshMediaList перестраивает список медиа из кеша.
func (m *model) refreshMediaList() {
	items := m.caches.Media.Items()
	listItems := make([]list.Item, len(items))
	for i, media := range items {
		listItems[i] = mediaItem{media: media}
	}
	_ = m.mediaList.SetItems(listItems)
	m.mediaList.Title = fmt.Sprintf("Медиа (%d)", len(listItems))
}

// refreshPersonList перестраивает список персон из кеша.
func (m *model) refreshPersonList() {
	items := m.caches.Persons.Items()
	listItems := make([]list.Item, len(items))
	for i, person := range items {
		listItems[i] = personItem{person: person}
	}
	_ = m.personList.SetItems(listItems)
	m.personList.Title = fmt.Sprintf("Персоны (%d)", len(listItems))
}

// loansForScope возвращает кешированные выдачи текущего фильтра.
func (m *model) loansForScope() []models.Loan {
	switch m.loanScope {
	case loanScopeActive:
		return m.caches.ActiveLoans.Items()
	case loanScopeOverdue:
		return m.caches.OverdueLoans.Items()
	default:
		return m.caches.Loans.Items()
	}
}

// refreshLoanList перестраивает список выдач текущего фильтра.
// Статус каждой выдачи вычисляется на момент перестроения.
func (m *model) refreshLoanList() {
	asOf := time.Now()
	items := m.loansForScope()
	listItems := make([]list.Item, len(items))
	for i, loan := range items {
		listItems[i] = loanItem{loan: loan, asOf: asOf}
	}
	_ = m.loanList.SetItems(listItems)
	m.loanList.Title = fmt.Sprintf("Выдачи: %s (%d)", m.loanScope.String(), len(listItems))
}

// refreshCategoryList перестраивает список категорий из кеша.
func (m *model) refreshCategoryList() {
	items := m.caches.Categories.Items()
	listItems := make([]list.Item, len(items))
	for i, category := range items {
		listItems[i] = categoryItem{category: category}
	}
	_ = m.categoryList.SetItems(listItems)
	m.categoryList.Title = fmt.Sprintf("Категории (%d)", len(listItems))
}

// refreshCategoryPickList перестраивает экран выбора категории для
// выбранного медиа, помечая уже назначенные.
func (m *model) refreshCategoryPickList() {
	media, ok := m.caches.Media.Get(m.selectedMediaID)
	if !ok {
		_ = m.categoryPickList.SetItems(nil)
		return
	}
	items := m.caches.Categories.Items()
	listItems := make([]list.Item, len(items))
	for i, category := range items {
		listItems[i] = categoryItem{
			category: category,
			assigned: media.HasCategory(category.CategoryID),
		}
	}
	_ = m.categoryPickList.SetItems(listItems)
	m.categoryPickList.Title = "Категории для: " + media.Title
}

// refreshLoanPersonList перестраивает экран выбора персоны для выдачи.
func (m *model) refreshLoanPersonList() {
	items := m.caches.Persons.Items()
	listItems := make([]list.Item, len(items))
	for i, person := range items {
		listItems[i] = personItem{person: person}
	}
	_ = m.loanPersonList.SetItems(listItems)
}

// selectedMedia возвращает медиа, выбранное в списке.
func (m *model) selectedMedia() (models.Media, bool) {
	item, ok := m.mediaList.SelectedItem().(mediaItem)
	if !ok {
		return models.Media{}, false
	}
	return item.media, true
}

// selectedPerson возвращает персону, выбранную в списке.
func (m *model) selectedPerson() (models.Person, bool) {
	item, ok := m.personList.SelectedItem().(personItem)
	if !ok {
		return models.Person{}, false
	}
	return item.person, true
}

// selectedLoan возвращает выдачу, выбранную в списке.
func (m *model) selectedLoan() (models.Loan, bool) {
	item, ok := m.loanList.SelectedItem().(loanItem)
	if !ok {
		return models.Loan{}, false
	}
	return item.loan, true
}

// selectedCategory возвращает категорию, выбранную в списке категорий.
func (m *model) selectedCategory() (models.Category, bool) {
	item, ok := m.categoryList.SelectedItem().(categoryItem)
	if !ok {
		return models.Category{}, false
	}
	return item.category, true
}
