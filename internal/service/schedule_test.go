package service

import (
	"testing"

	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertDayCreatesEntry(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	entry, action, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date:      date(t, "2024-06-03"),
		Type:      models.EntryTypeShift,
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("17:00"),
		Overwrite: true,
	}, "req-1")
	require.NoError(t, err)

	assert.Equal(t, ActionCreated, action)
	assert.Equal(t, models.EntryTypeShift, entry.Type)
	assert.Equal(t, "09:00", *entry.StartTime)
	// Заголовок не передан - подставляется подпись по типу
	assert.Equal(t, "Смена", entry.Title)
}

func TestUpsertDayIdempotent(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	in := DayUpsert{
		Date:      date(t, "2024-06-03"),
		Type:      models.EntryTypeShift,
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("17:00"),
		Overwrite: true,
	}

	first, action, err := env.schedule.UpsertDay(manager, employee.ID, in, "req-1")
	require.NoError(t, err)
	require.Equal(t, ActionCreated, action)

	second, action, err := env.schedule.UpsertDay(manager, employee.ID, in, "req-2")
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, action)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, *first.StartTime, *second.StartTime)

	// Вторая запись на ту же дату не появилась
	entries, err := env.entryRepo.GetByUserBetween(employee.ID, date(t, "2024-06-01"), date(t, "2024-07-01"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUpsertDayNoOverwriteSkips(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, _, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date: date(t, "2024-06-03"), Type: models.EntryTypeOff, Overwrite: true,
	}, "req-1")
	require.NoError(t, err)

	entry, action, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date: date(t, "2024-06-03"), Type: models.EntryTypeVacation, Overwrite: false,
	}, "req-2")
	require.NoError(t, err)

	assert.Equal(t, ActionSkipped, action)
	assert.Equal(t, models.EntryTypeOff, entry.Type)
}

func TestUpsertDayShiftRequiresTimes(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, _, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date: date(t, "2024-06-03"), Type: models.EntryTypeShift, Overwrite: true,
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// Никакой записи не создано
	entries, err := env.entryRepo.GetByUserBetween(employee.ID, date(t, "2024-06-01"), date(t, "2024-07-01"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpsertDayTimeOrdering(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, _, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date:      date(t, "2024-06-03"),
		Type:      models.EntryTypeTrip,
		StartTime: strPtr("18:00"),
		EndTime:   strPtr("09:00"),
		Overwrite: true,
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpsertDayUnpaddedTimes(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	// Час без ведущего нуля - то же время; сохраняется в каноничном виде
	entry, _, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date:      date(t, "2024-06-03"),
		Type:      models.EntryTypeShift,
		StartTime: strPtr("9:00"),
		EndTime:   strPtr("17:00"),
		Overwrite: true,
	}, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", *entry.StartTime)
	assert.Equal(t, "17:00", *entry.EndTime)

	// Порядок проверяется по значению, а не по строке
	_, _, err = env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date:      date(t, "2024-06-04"),
		Type:      models.EntryTypeShift,
		StartTime: strPtr("21:00"),
		EndTime:   strPtr("9:00"),
		Overwrite: true,
	}, "req-2")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	entry, err = env.entryRepo.GetByUserAndDate(employee.ID, date(t, "2024-06-04"))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestUpsertDayEqualTimesRejected(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, _, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date:      date(t, "2024-06-03"),
		Type:      models.EntryTypeShift,
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("9:00"),
		Overwrite: true,
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpsertDayUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	manager, _ := env.createTeam(t, "sales")

	_, _, err := env.schedule.UpsertDay(manager, 9999, DayUpsert{
		Date: date(t, "2024-06-03"), Type: models.EntryTypeOff, Overwrite: true,
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpsertRangeWeekdayFilter(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	// 2024-06-03 понедельник, 2024-06-09 воскресенье
	result, err := env.schedule.UpsertRange(manager, employee.ID, RangeUpsert{
		StartDate: date(t, "2024-06-03"),
		EndDate:   date(t, "2024-06-09"),
		Type:      models.EntryTypeShift,
		Weekdays:  []int{0, 1, 2, 3, 4},
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("17:00"),
		Overwrite: true,
	}, "req-1")
	require.NoError(t, err)

	assert.Equal(t, RangeResult{Created: 5, Updated: 0, Skipped: 0}, result)

	entries, err := env.entryRepo.GetByUserBetween(employee.ID, date(t, "2024-06-03"), date(t, "2024-06-10"))
	require.NoError(t, err)
	require.Len(t, entries, 5)
	// Выходные не тронуты
	for _, e := range entries {
		wd := e.Date.Weekday()
		assert.NotEqual(t, "Saturday", wd.String())
		assert.NotEqual(t, "Sunday", wd.String())
	}
}

func TestUpsertRangeCountsSumToFilteredDates(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	// Заранее занимаем среду
	_, _, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date: date(t, "2024-06-05"), Type: models.EntryTypeVacation, Overwrite: true,
	}, "req-1")
	require.NoError(t, err)

	result, err := env.schedule.UpsertRange(manager, employee.ID, RangeUpsert{
		StartDate: date(t, "2024-06-03"),
		EndDate:   date(t, "2024-06-09"),
		Type:      models.EntryTypeShift,
		Weekdays:  []int{0, 1, 2, 3, 4},
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("17:00"),
		Overwrite: false,
	}, "req-2")
	require.NoError(t, err)

	assert.Equal(t, RangeResult{Created: 4, Updated: 0, Skipped: 1}, result)
	assert.Equal(t, 5, result.Created+result.Updated+result.Skipped)

	// Занятая среда не перезаписана
	entry, err := env.entryRepo.GetByUserAndDate(employee.ID, date(t, "2024-06-05"))
	require.NoError(t, err)
	assert.Equal(t, models.EntryTypeVacation, entry.Type)
}

func TestUpsertRangeOverwrite(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, err := env.schedule.UpsertRange(manager, employee.ID, RangeUpsert{
		StartDate: date(t, "2024-06-03"),
		EndDate:   date(t, "2024-06-05"),
		Type:      models.EntryTypeOff,
		Overwrite: true,
	}, "req-1")
	require.NoError(t, err)

	result, err := env.schedule.UpsertRange(manager, employee.ID, RangeUpsert{
		StartDate: date(t, "2024-06-03"),
		EndDate:   date(t, "2024-06-07"),
		Type:      models.EntryTypeShift,
		StartTime: strPtr("10:00"),
		EndTime:   strPtr("18:00"),
		Overwrite: true,
	}, "req-2")
	require.NoError(t, err)

	assert.Equal(t, RangeResult{Created: 2, Updated: 3, Skipped: 0}, result)
}

func TestUpsertRangeEmptyFilterResult(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	// 2024-06-03..04 - понедельник и вторник, фильтр только по воскресеньям
	result, err := env.schedule.UpsertRange(manager, employee.ID, RangeUpsert{
		StartDate: date(t, "2024-06-03"),
		EndDate:   date(t, "2024-06-04"),
		Type:      models.EntryTypeOff,
		Weekdays:  []int{6},
		Overwrite: true,
	}, "req-1")
	require.NoError(t, err)

	assert.Equal(t, RangeResult{}, result)

	entries, err := env.entryRepo.GetByUserBetween(employee.ID, date(t, "2024-06-01"), date(t, "2024-07-01"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpsertRangeInvalidWeekday(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, err := env.schedule.UpsertRange(manager, employee.ID, RangeUpsert{
		StartDate: date(t, "2024-06-03"),
		EndDate:   date(t, "2024-06-09"),
		Type:      models.EntryTypeOff,
		Weekdays:  []int{7},
		Overwrite: true,
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpsertRangeBadDateOrder(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, err := env.schedule.UpsertRange(manager, employee.ID, RangeUpsert{
		StartDate: date(t, "2024-06-09"),
		EndDate:   date(t, "2024-06-03"),
		Type:      models.EntryTypeOff,
		Overwrite: true,
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteDayIdempotent(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, _, err := env.schedule.UpsertDay(manager, employee.ID, DayUpsert{
		Date: date(t, "2024-06-03"), Type: models.EntryTypeOff, Overwrite: true,
	}, "req-1")
	require.NoError(t, err)

	require.NoError(t, env.schedule.DeleteDay(manager, employee.ID, date(t, "2024-06-03"), "req-2"))

	entry, err := env.entryRepo.GetByUserAndDate(employee.ID, date(t, "2024-06-03"))
	require.NoError(t, err)
	assert.Nil(t, entry)

	// Повторное удаление - успех без ошибки
	require.NoError(t, env.schedule.DeleteDay(manager, employee.ID, date(t, "2024-06-03"), "req-3"))
}

func TestMonthSchedule(t *testing.T) {
	env := newTestEnv(t)
	manager, employee := env.createTeam(t, "sales")

	_, err := env.schedule.UpsertRange(manager, employee.ID, RangeUpsert{
		StartDate: date(t, "2024-05-30"),
		EndDate:   date(t, "2024-06-02"),
		Type:      models.EntryTypeOff,
		Overwrite: true,
	}, "req-1")
	require.NoError(t, err)

	entries, err := env.schedule.MonthSchedule(employee.ID, "2024-06")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-06-01", entries[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-06-02", entries[1].Date.Format("2006-01-02"))

	_, err = env.schedule.MonthSchedule(employee.ID, "junk")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpsertForbiddenForOtherManager(t *testing.T) {
	env := newTestEnv(t)
	manager, _ := env.createTeam(t, "sales")
	otherManager := env.createUser(t, "other.manager@example.com", models.RoleManager)

	_, _, err := env.schedule.UpsertDay(manager, otherManager.ID, DayUpsert{
		Date: date(t, "2024-06-03"), Type: models.EntryTypeOff, Overwrite: true,
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))

	// Себя менеджер редактировать может
	_, action, err := env.schedule.UpsertDay(manager, manager.ID, DayUpsert{
		Date: date(t, "2024-06-03"), Type: models.EntryTypeOff, Overwrite: true,
	}, "req-2")
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, action)
}
