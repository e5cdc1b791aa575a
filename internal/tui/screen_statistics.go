package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maynagashev/mediakeeper/internal/loans"
)

const statsBarWidth = 30

// updateStatisticsScreen обрабатывает клавиши экрана статистики.
func (m *model) updateStatisticsScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyEsc, keyQuit:
		m.state = menuScreen
		return m, tea.ClearScreen
	case "p":
		// День -> неделя -> месяц -> год
		m.statsPeriod = (m.statsPeriod + 1) % 4
		return m, nil
	case "r":
		return m, tea.Batch(m.fetchLoansCmd(loanScopeAll, time.Now()), m.fetchMediaCmd())
	}
	return m, nil
}

func periodLabel(p loans.Period) string {
	switch p {
	case loans.PeriodDay:
		return "по дням"
	case loans.PeriodWeek:
		return "по неделям"
	case loans.PeriodMonth:
		return "по месяцам"
	default:
		return "по годам"
	}
}

// renderBar рисует текстовую полосу пропорционально count/max.
func renderBar(count, maxCount int) string {
	if maxCount == 0 {
		return ""
	}
	width := count * statsBarWidth / maxCount
	if width == 0 && count > 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}

// viewStatisticsScreen отображает статистику выдач.
// Все производные значения считаются из кеша на момент отрисовки.
//
//nolint:funlen // Последовательная отрисовка секций
func (m *model) viewStatisticsScreen() string {
	asOf := time.Now()
	allLoans := m.caches.Loans.Items()
	allMedia := m.caches.Media.Items()

	var b strings.Builder
	b.WriteString(m.theme.title.Render("Статистика") + "\n\n")

	active := len(loans.Filter(allLoans, loans.StatusActive, asOf))
	overdue := m.overdueCount()
	returned := len(loans.Filter(allLoans, loans.StatusReturned, asOf))
	b.WriteString(fmt.Sprintf("Всего выдач: %d (активных %d, просроченных %d, возвращенных %d)\n",
		len(allLoans), active, overdue, returned))
	if len(allLoans) > 0 {
		avg := loans.AverageDuration(allLoans, asOf)
		b.WriteString("Средняя длительность выдачи: " + loans.FormatDuration(avg) + "\n")
	}
	b.WriteString("\n")

	// Распределение выдач по типу медиа
	typeDist := loans.TypeDistribution(allLoans)
	if len(typeDist) > 0 {
		b.WriteString(m.theme.title.Render("Выдачи по типам") + "\n")
		maxCount := typeDist[0].Count
		for _, entry := range typeDist {
			b.WriteString(fmt.Sprintf("  %-12s %3d %s\n", entry.Name, entry.Count, renderBar(entry.Count, maxCount)))
		}
		b.WriteString("\n")
	}

	// Распределение медиа по категориям
	categoryDist := loans.CategoryDistribution(allMedia)
	if len(categoryDist) > 0 {
		b.WriteString(m.theme.title.Render("Медиа по категориям") + "\n")
		maxCount := categoryDist[0].Count
		for _, entry := range categoryDist {
			b.WriteString(fmt.Sprintf("  %-12s %3d %s\n", entry.Name, entry.Count, renderBar(entry.Count, maxCount)))
		}
		b.WriteString("\n")
	}

	// Пунктуальность заемщиков
	ranking := loans.PunctualityRanking(allLoans, asOf)
	if len(ranking) > 0 {
		b.WriteString(m.theme.title.Render("Пунктуальность") + "\n")
		for _, entry := range ranking {
			line := fmt.Sprintf("  %-24s вовремя %d, с опозданием %d", entry.Name, entry.OnTime, entry.Late)
			if entry.Late > 0 {
				line = m.theme.overdue.Render(line)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	// Таймлайн новых выдач
	timeline := loans.Timeline(allLoans, m.statsPeriod)
	if len(timeline) > 0 {
		b.WriteString(m.theme.title.Render("Новые выдачи "+periodLabel(m.statsPeriod)) + "\n")
		maxCount := 0
		for _, bucket := range timeline {
			if bucket.Count > maxCount {
				maxCount = bucket.Count
			}
		}
		for _, bucket := range timeline {
			b.WriteString(fmt.Sprintf("  %-10s %3d %s\n", bucket.Key, bucket.Count, renderBar(bucket.Count, maxCount)))
		}
	}

	if len(allLoans) == 0 {
		b.WriteString(m.theme.subtle.Render("Пока нет ни одной выдачи.") + "\n")
	}
	return b.String()
}
