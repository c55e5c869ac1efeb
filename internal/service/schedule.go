package service

import (
	"fmt"
	"time"

	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/audit"
	"hr-schedule-api/internal/models"
	"hr-schedule-api/internal/repository"
	"hr-schedule-api/pkg/daterange"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Результат применения upsert к одному дню
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionSkipped = "skipped"
)

// DayUpsert - параметры записи на один день
type DayUpsert struct {
	Date      time.Time
	Type      string
	StartTime *string
	EndTime   *string
	Title     string
	Overwrite bool
}

// RangeUpsert - параметры массовой записи на диапазон дат.
// Weekdays фильтрует даты по дню недели (0 - понедельник ... 6 - воскресенье);
// отфильтрованные даты не учитываются в счетчиках вовсе.
type RangeUpsert struct {
	StartDate time.Time
	EndDate   time.Time
	Type      string
	Weekdays  []int
	StartTime *string
	EndTime   *string
	Title     string
	Overwrite bool
}

// RangeResult - счетчики по диапазону; created+updated+skipped равно
// числу дат, прошедших фильтр по дням недели
type RangeResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ScheduleService реализует календарь рабочих графиков: точечные
// и диапазонные upsert, удаление дня и месячную выборку
type ScheduleService struct {
	db        *gorm.DB
	entryRepo repository.WorkEntryRepository
	policy    *PolicyService
	changeLog *audit.ChangeLog
	logger    *logrus.Logger
}

func NewScheduleService(
	db *gorm.DB,
	entryRepo repository.WorkEntryRepository,
	policy *PolicyService,
	changeLog *audit.ChangeLog,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		db:        db,
		entryRepo: entryRepo,
		policy:    policy,
		changeLog: changeLog,
		logger:    logger,
	}
}

// validateEntry проверяет тип записи и времена до любого обращения к базе.
// Порядок времен сравнивается по разобранным значениям: "9:00" и "09:00" -
// одно и то же время.
func validateEntry(entryType string, startTime, endTime *string) error {
	if !models.IsValidEntryType(entryType) {
		return apperr.Validation("unknown entry type %q", entryType)
	}

	var start, end time.Time
	if startTime != nil {
		t, err := time.Parse("15:04", *startTime)
		if err != nil {
			return apperr.Validation("invalid time %q: expected HH:MM", *startTime)
		}
		start = t
	}
	if endTime != nil {
		t, err := time.Parse("15:04", *endTime)
		if err != nil {
			return apperr.Validation("invalid time %q: expected HH:MM", *endTime)
		}
		end = t
	}

	if entryType == models.EntryTypeShift {
		if startTime == nil || endTime == nil {
			return apperr.Validation("shift requires both start_time and end_time")
		}
	}

	if startTime != nil && endTime != nil && !start.Before(end) {
		return apperr.Validation("start_time must be before end_time")
	}

	return nil
}

// normalizeClock приводит время к каноничному виду ЧЧ:ММ с ведущим нулем.
// Формат уже проверен в validateEntry.
func normalizeClock(s *string) *string {
	if s == nil {
		return nil
	}
	t, err := time.Parse("15:04", *s)
	if err != nil {
		return s
	}
	canonical := t.Format("15:04")
	return &canonical
}

// applyFields переносит поля upsert в запись; пустой заголовок
// заменяется подписью по типу
func applyFields(entry *models.WorkEntry, entryType string, startTime, endTime *string, title string) {
	entry.Type = entryType
	entry.StartTime = normalizeClock(startTime)
	entry.EndTime = normalizeClock(endTime)
	if title == "" {
		title = DefaultTitle(entryType)
	}
	entry.Title = title
}

// UpsertDay создает или обновляет запись на один день.
// Возвращает итоговую запись и что с ней произошло: created, updated или skipped.
func (s *ScheduleService) UpsertDay(actor *models.User, targetID uint, in DayUpsert, requestID string) (*models.WorkEntry, string, error) {
	if err := validateEntry(in.Type, in.StartTime, in.EndTime); err != nil {
		return nil, "", err
	}

	target, err := s.policy.TargetUser(targetID)
	if err != nil {
		return nil, "", err
	}
	if err := s.policy.CanEdit(actor, target); err != nil {
		return nil, "", err
	}

	date := daterange.Normalize(in.Date)

	var entry *models.WorkEntry
	action := ActionSkipped

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.entryRepo.WithTx(tx)

		existing, err := repo.GetByUserAndDate(target.ID, date)
		if err != nil {
			return err
		}

		if existing != nil && !in.Overwrite {
			entry = existing
			action = ActionSkipped
			return nil
		}

		if existing == nil {
			entry = &models.WorkEntry{UserID: target.ID, Date: date}
			action = ActionCreated
		} else {
			entry = existing
			action = ActionUpdated
		}

		applyFields(entry, in.Type, in.StartTime, in.EndTime, in.Title)
		return repo.Save(entry)
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to upsert schedule day")
		return nil, "", apperr.Storage(err)
	}

	s.logger.WithFields(logrus.Fields{
		"actor_id":  actor.ID,
		"target_id": target.ID,
		"date":      date.Format(daterange.DateLayout),
		"action":    action,
	}).Info("Schedule day upserted")

	if action != ActionSkipped {
		s.changeLog.ScheduleChange(
			requestID, actor, target,
			date.Format(daterange.DateLayout),
			action,
			fmt.Sprintf("type=%s title=%q", entry.Type, entry.Title),
		)
	}

	return entry, action, nil
}

// UpsertRange применяет одну и ту же запись ко всем датам диапазона.
// Вся работа с базой - одна выборка, один пакетный insert и точечные
// обновления - идет в одной транзакции: либо весь диапазон, либо ничего.
func (s *ScheduleService) UpsertRange(actor *models.User, targetID uint, in RangeUpsert, requestID string) (RangeResult, error) {
	var result RangeResult

	if err := validateEntry(in.Type, in.StartTime, in.EndTime); err != nil {
		return result, err
	}
	if in.EndDate.Before(in.StartDate) {
		return result, apperr.Validation("end_date must not be before start_date")
	}
	if !daterange.ValidWeekdays(in.Weekdays) {
		return result, apperr.Validation("weekday index must be between 0 and 6")
	}

	target, err := s.policy.TargetUser(targetID)
	if err != nil {
		return result, err
	}
	if err := s.policy.CanEdit(actor, target); err != nil {
		return result, err
	}

	dates := daterange.Enumerate(in.StartDate, in.EndDate, in.Weekdays)
	if len(dates) == 0 {
		return result, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.entryRepo.WithTx(tx)

		existing, err := repo.GetByUserAndDates(target.ID, dates)
		if err != nil {
			return err
		}

		byDate := make(map[string]*models.WorkEntry, len(existing))
		for _, e := range existing {
			byDate[e.Date.Format(daterange.DateLayout)] = e
		}

		var toCreate []*models.WorkEntry

		for _, d := range dates {
			entry := byDate[d.Format(daterange.DateLayout)]

			if entry != nil && !in.Overwrite {
				result.Skipped++
				continue
			}

			if entry == nil {
				entry = &models.WorkEntry{UserID: target.ID, Date: d}
				applyFields(entry, in.Type, in.StartTime, in.EndTime, in.Title)
				toCreate = append(toCreate, entry)
				result.Created++
				continue
			}

			applyFields(entry, in.Type, in.StartTime, in.EndTime, in.Title)
			if err := repo.Save(entry); err != nil {
				return err
			}
			result.Updated++
		}

		return repo.BulkCreate(toCreate)
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to upsert schedule range")
		return RangeResult{}, apperr.Storage(err)
	}

	s.logger.WithFields(logrus.Fields{
		"actor_id":  actor.ID,
		"target_id": target.ID,
		"from":      in.StartDate.Format(daterange.DateLayout),
		"to":        in.EndDate.Format(daterange.DateLayout),
		"created":   result.Created,
		"updated":   result.Updated,
		"skipped":   result.Skipped,
	}).Info("Schedule range upserted")

	s.changeLog.ScheduleChange(
		requestID, actor, target,
		fmt.Sprintf("%s - %s", in.StartDate.Format(daterange.DateLayout), in.EndDate.Format(daterange.DateLayout)),
		"range upsert",
		fmt.Sprintf("type=%s created=%d updated=%d skipped=%d", in.Type, result.Created, result.Updated, result.Skipped),
	)

	return result, nil
}

// DeleteDay удаляет запись дня; удаление несуществующей записи - успех
func (s *ScheduleService) DeleteDay(actor *models.User, targetID uint, date time.Time, requestID string) error {
	target, err := s.policy.TargetUser(targetID)
	if err != nil {
		return err
	}
	if err := s.policy.CanEdit(actor, target); err != nil {
		return err
	}

	date = daterange.Normalize(date)

	deleted, err := s.entryRepo.DeleteByUserAndDate(target.ID, date)
	if err != nil {
		return apperr.Storage(err)
	}

	if deleted > 0 {
		s.changeLog.ScheduleChange(
			requestID, actor, target,
			date.Format(daterange.DateLayout),
			"deleted", "",
		)
	}

	return nil
}

// MonthSchedule возвращает записи пользователя за месяц YYYY-MM по порядку дат
func (s *ScheduleService) MonthSchedule(userID uint, month string) ([]*models.WorkEntry, error) {
	first, next, err := daterange.MonthBounds(month)
	if err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}

	entries, err := s.entryRepo.GetByUserBetween(userID, first, next)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return entries, nil
}

// UserMonthSchedule - месячная выборка чужого графика, доступна менеджеру
func (s *ScheduleService) UserMonthSchedule(actor *models.User, targetID uint, month string) ([]*models.WorkEntry, error) {
	target, err := s.policy.TargetUser(targetID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() && actor.ID != target.ID {
		return nil, apperr.Forbidden("manager role required")
	}
	return s.MonthSchedule(target.ID, month)
}
