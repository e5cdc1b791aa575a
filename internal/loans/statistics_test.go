package loans_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/mediakeeper/internal/loans"
	"github.com/maynagashev/mediakeeper/models"
)

func TestCategoryDistribution(t *testing.T) {
	media := []models.Media{
		{MediaID: 1, Categories: []models.Category{
			{CategoryID: 1, CategoryName: "Sci-Fi"},
			{CategoryID: 2, CategoryName: "Klassiker"},
		}},
		{MediaID: 2, Categories: []models.Category{
			{CategoryID: 1, CategoryName: "Sci-Fi"},
		}},
		{MediaID: 3}, // Без категорий - не учитывается
	}

	dist := loans.CategoryDistribution(media)

	require.Len(t, dist, 2)
	assert.Equal(t, loans.Count{Name: "Sci-Fi", Count: 2}, dist[0])
	assert.Equal(t, loans.Count{Name: "Klassiker", Count: 1}, dist[1])
}

func TestTypeDistribution(t *testing.T) {
	all := []models.Loan{
		{Media: models.Media{Type: models.MediaTypeBook}},
		{Media: models.Media{Type: models.MediaTypeBook}},
		{Media: models.Media{Type: models.MediaTypeGame}},
	}

	dist := loans.TypeDistribution(all)

	require.Len(t, dist, 2)
	assert.Equal(t, loans.Count{Name: "BOOK", Count: 2}, dist[0])
	assert.Equal(t, loans.Count{Name: "GAME", Count: 1}, dist[1])
}

func TestPunctualityRanking(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	anna := models.Person{PersonID: 1, FirstName: "Anna", LastName: "Schmidt"}
	bernd := models.Person{PersonID: 2, FirstName: "Bernd", LastName: "Meier"}

	all := []models.Loan{
		// Anna: один возврат вовремя, один с опозданием
		{Person: anna, DueDate: date(2024, 2, 10), ReturnedAt: returned(dateTime(2024, 2, 9, 0))},
		{Person: anna, DueDate: date(2024, 2, 20), ReturnedAt: returned(dateTime(2024, 2, 25, 0))},
		// Bernd: незакрытая просроченная и незакрытая в срок
		{Person: bernd, DueDate: date(2024, 3, 1)},
		{Person: bernd, DueDate: date(2024, 4, 1)},
	}

	ranking := loans.PunctualityRanking(all, asOf)

	require.Len(t, ranking, 2)
	// Оба по одному опозданию, порядок по имени
	assert.Equal(t, loans.PunctualityEntry{Name: "Anna Schmidt", OnTime: 1, Late: 1}, ranking[0])
	assert.Equal(t, loans.PunctualityEntry{Name: "Bernd Meier", OnTime: 1, Late: 1}, ranking[1])
}

func TestAverageDuration(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Пустой список", func(t *testing.T) {
		assert.Zero(t, loans.AverageDuration(nil, asOf))
	})

	t.Run("Возвращенные считаются до returnedAt, открытые до asOf", func(t *testing.T) {
		all := []models.Loan{
			// 4 дня
			{BorrowedAt: dateTime(2024, 3, 1, 0), ReturnedAt: returned(dateTime(2024, 3, 5, 0))},
			// Открыта 14 дней на момент asOf
			{BorrowedAt: dateTime(2024, 3, 1, 0)},
		}

		avg := loans.AverageDuration(all, asOf)
		assert.Equal(t, 9*24*time.Hour, avg)
	})
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "9 дн. 0 ч.", loans.FormatDuration(9*24*time.Hour))
	assert.Equal(t, "1 дн. 23 ч.", loans.FormatDuration(47*time.Hour+20*time.Minute))
	assert.Equal(t, "0 дн. 0 ч.", loans.FormatDuration(0))
}

func TestTimeline(t *testing.T) {
	all := []models.Loan{
		{BorrowedAt: dateTime(2024, 1, 10, 12)},
		{BorrowedAt: dateTime(2024, 1, 25, 9)},
		{BorrowedAt: dateTime(2024, 3, 2, 18)},
		{BorrowedAt: dateTime(2023, 12, 31, 23)},
	}

	t.Run("По месяцам", func(t *testing.T) {
		buckets := loans.Timeline(all, loans.PeriodMonth)
		require.Len(t, buckets, 3)
		assert.Equal(t, loans.TimelineBucket{Key: "2023-12", Count: 1}, buckets[0])
		assert.Equal(t, loans.TimelineBucket{Key: "2024-01", Count: 2}, buckets[1])
		assert.Equal(t, loans.TimelineBucket{Key: "2024-03", Count: 1}, buckets[2])
	})

	t.Run("По годам", func(t *testing.T) {
		buckets := loans.Timeline(all, loans.PeriodYear)
		require.Len(t, buckets, 2)
		assert.Equal(t, loans.TimelineBucket{Key: "2023", Count: 1}, buckets[0])
		assert.Equal(t, loans.TimelineBucket{Key: "2024", Count: 3}, buckets[1])
	})

	t.Run("По ISO-неделям", func(t *testing.T) {
		// 31.12.2023 относится к 52-й неделе 2023 (ISO)
		buckets := loans.Timeline(all, loans.PeriodWeek)
		assert.Equal(t, "2023-W52", buckets[0].Key)
	})

	t.Run("По дням", func(t *testing.T) {
		buckets := loans.Timeline(all, loans.PeriodDay)
		require.Len(t, buckets, 4)
		assert.Equal(t, "2023-12-31", buckets[0].Key)
	})
}
