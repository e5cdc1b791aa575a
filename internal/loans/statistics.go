package loans

import (
	"fmt"
	"sort"
	"time"

	"github.com/maynagashev/mediakeeper/models"
)

// Count - пара "имя + количество" для распределений.
type Count struct {
	Name  string
	Count int
}

// CategoryDistribution считает количество медиа в каждой категории.
// Медиа без категорий в распределение не попадают.
// Результат отсортирован по убыванию, при равенстве по имени.
func CategoryDistribution(media []models.Media) []Count {
	counts := make(map[string]int)
	for _, m := range media {
		for _, c := range m.Categories {
			counts[c.CategoryName]++
		}
	}
	return sortedCounts(counts)
}

// TypeDistribution считает выдачи по типу медиа.
func TypeDistribution(all []models.Loan) []Count {
	counts := make(map[string]int)
	for _, loan := range all {
		counts[loan.Media.Type]++
	}
	return sortedCounts(counts)
}

func sortedCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for name, count := range counts {
		out = append(out, Count{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// PunctualityEntry - пунктуальность одной персоны.
type PunctualityEntry struct {
	Name   string
	OnTime int
	Late   int
}

// PunctualityRanking группирует выдачи по персоне и считает возвраты
// вовремя и с опозданием. Самые непунктуальные - первыми, при равенстве
// сортировка по имени.
func PunctualityRanking(all []models.Loan, asOf time.Time) []PunctualityEntry {
	byName := make(map[string]*PunctualityEntry)
	order := make([]string, 0)
	for _, loan := range all {
		name := loan.Person.FullName()
		entry, ok := byName[name]
		if !ok {
			entry = &PunctualityEntry{Name: name}
			byName[name] = entry
			order = append(order, name)
		}
		if IsLate(loan, asOf) {
			entry.Late++
		} else {
			entry.OnTime++
		}
	}

	out := make([]PunctualityEntry, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Late != out[j].Late {
			return out[i].Late > out[j].Late
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AverageDuration возвращает среднюю длительность выдачи: от borrowedAt
// до returnedAt, для невозвращенных - до asOf.
func AverageDuration(all []models.Loan, asOf time.Time) time.Duration {
	if len(all) == 0 {
		return 0
	}
	var total time.Duration
	for _, loan := range all {
		end := asOf
		if loan.ReturnedAt != nil {
			end = loan.ReturnedAt.Time
		}
		total += end.Sub(loan.BorrowedAt.Time)
	}
	return total / time.Duration(len(all))
}

// FormatDuration форматирует длительность как "N дн. M ч.".
func FormatDuration(d time.Duration) string {
	totalHours := int(d.Round(time.Hour).Hours())
	return fmt.Sprintf("%d дн. %d ч.", totalHours/24, totalHours%24)
}

// Period - шаг группировки таймлайна выдач.
type Period int

const (
	PeriodDay Period = iota
	PeriodWeek
	PeriodMonth
	PeriodYear
)

// TimelineBucket - количество выдач, начатых в одном интервале.
type TimelineBucket struct {
	Key   string // Метка интервала, например "2024-03" или "2024-W12"
	Count int
}

// Timeline группирует выдачи по дате borrowedAt с шагом period.
// Интервалы идут в хронологическом порядке, пустые не добавляются.
func Timeline(all []models.Loan, period Period) []TimelineBucket {
	counts := make(map[string]int)
	for _, loan := range all {
		counts[bucketKey(loan.BorrowedAt.Time, period)]++
	}
	out := make([]TimelineBucket, 0, len(counts))
	for key, count := range counts {
		out = append(out, TimelineBucket{Key: key, Count: count})
	}
	// Ключи построены так, что лексикографический порядок хронологичен
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func bucketKey(t time.Time, period Period) string {
	switch period {
	case PeriodDay:
		return t.Format("2006-01-02")
	case PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonth:
		return t.Format("2006-01")
	case PeriodYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}
