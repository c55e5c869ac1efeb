// Package daterange содержит календарную арифметику для графиков:
// нормализацию дат, перечисление диапазонов и фильтр по дням недели.
// Индексы дней недели: 0 - понедельник ... 6 - воскресенье.
package daterange

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Normalize обрезает дату до полуночи UTC, чтобы сравнения
// в хранилище работали побайтово
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Normalize(t), nil
}

// WeekdayIndex возвращает индекс дня недели с понедельником в нуле
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ValidWeekdays проверяет, что все индексы лежат в диапазоне 0-6
func ValidWeekdays(weekdays []int) bool {
	for _, w := range weekdays {
		if w < 0 || w > 6 {
			return false
		}
	}
	return true
}

// Enumerate перечисляет все даты [start, end] включительно.
// Если weekdays не пуст, остаются только даты с подходящим днем недели;
// отфильтрованные даты в результат не попадают вовсе.
func Enumerate(start, end time.Time, weekdays []int) []time.Time {
	start = Normalize(start)
	end = Normalize(end)

	var filter map[int]bool
	if len(weekdays) > 0 {
		filter = make(map[int]bool, len(weekdays))
		for _, w := range weekdays {
			filter[w] = true
		}
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if filter != nil && !filter[WeekdayIndex(d)] {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// MonthBounds возвращает границы месяца [первое число, первое число следующего)
func MonthBounds(month string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0), nil
}
