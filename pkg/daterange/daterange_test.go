package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d := mustParse(t, "2024-07-15")
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, time.UTC, d.Location())

	_, err := ParseDate("15.07.2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	in := time.Date(2024, 7, 15, 23, 45, 1, 0, loc)

	got := Normalize(in)
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestWeekdayIndex(t *testing.T) {
	// 2024-07-15 - понедельник
	assert.Equal(t, 0, WeekdayIndex(mustParse(t, "2024-07-15")))
	assert.Equal(t, 4, WeekdayIndex(mustParse(t, "2024-07-19")))
	assert.Equal(t, 5, WeekdayIndex(mustParse(t, "2024-07-20")))
	assert.Equal(t, 6, WeekdayIndex(mustParse(t, "2024-07-21")))
}

func TestValidWeekdays(t *testing.T) {
	assert.True(t, ValidWeekdays(nil))
	assert.True(t, ValidWeekdays([]int{0, 6}))
	assert.False(t, ValidWeekdays([]int{7}))
	assert.False(t, ValidWeekdays([]int{-1}))
}

func TestEnumerateInclusive(t *testing.T) {
	dates := Enumerate(mustParse(t, "2024-07-15"), mustParse(t, "2024-07-17"), nil)
	require.Len(t, dates, 3)
	assert.Equal(t, mustParse(t, "2024-07-15"), dates[0])
	assert.Equal(t, mustParse(t, "2024-07-17"), dates[2])
}

func TestEnumerateSingleDay(t *testing.T) {
	day := mustParse(t, "2024-07-15")
	dates := Enumerate(day, day, nil)
	require.Len(t, dates, 1)
	assert.Equal(t, day, dates[0])
}

func TestEnumerateWeekdayFilter(t *testing.T) {
	// Неделя пн-вс, оставляем только пн-пт
	dates := Enumerate(mustParse(t, "2024-07-15"), mustParse(t, "2024-07-21"), []int{0, 1, 2, 3, 4})
	require.Len(t, dates, 5)
	assert.Equal(t, mustParse(t, "2024-07-15"), dates[0])
	assert.Equal(t, mustParse(t, "2024-07-19"), dates[4])

	// Только выходные
	weekend := Enumerate(mustParse(t, "2024-07-15"), mustParse(t, "2024-07-21"), []int{5, 6})
	require.Len(t, weekend, 2)
	assert.Equal(t, mustParse(t, "2024-07-20"), weekend[0])
	assert.Equal(t, mustParse(t, "2024-07-21"), weekend[1])
}

func TestEnumerateFilterCanBeEmpty(t *testing.T) {
	// В будних днях этого диапазона нет воскресений
	dates := Enumerate(mustParse(t, "2024-07-15"), mustParse(t, "2024-07-19"), []int{6})
	assert.Empty(t, dates)
}

func TestEnumerateReversedRange(t *testing.T) {
	dates := Enumerate(mustParse(t, "2024-07-17"), mustParse(t, "2024-07-15"), nil)
	assert.Empty(t, dates)
}

func TestMonthBounds(t *testing.T) {
	first, next, err := MonthBounds("2024-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), next)

	// Декабрь переходит через границу года
	first, next, err = MonthBounds("2024-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), next)

	_, _, err = MonthBounds("2024-7")
	assert.Error(t, err)
}
