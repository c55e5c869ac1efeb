package repository

import (
	"errors"
	"time"

	"hr-schedule-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WorkEntryRepository interface {
	GetByUserAndDate(userID uint, date time.Time) (*models.WorkEntry, error)
	GetByUserAndDates(userID uint, dates []time.Time) ([]*models.WorkEntry, error)
	GetByUserBetween(userID uint, from, to time.Time) ([]*models.WorkEntry, error)
	BulkCreate(entries []*models.WorkEntry) error
	Save(entry *models.WorkEntry) error
	DeleteByUserAndDate(userID uint, date time.Time) (int64, error)
	DeleteByUserID(userID uint) error
	WithTx(tx *gorm.DB) WorkEntryRepository
}

type GormWorkEntryRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormWorkEntryRepository(db *gorm.DB, logger *logrus.Logger) (WorkEntryRepository, error) {
	if err := db.AutoMigrate(&models.WorkEntry{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate work_entries table")
		return nil, err
	}

	return &GormWorkEntryRepository{db: db, logger: logger}, nil
}

func (r *GormWorkEntryRepository) WithTx(tx *gorm.DB) WorkEntryRepository {
	return &GormWorkEntryRepository{db: tx, logger: r.logger}
}

func (r *GormWorkEntryRepository) GetByUserAndDate(userID uint, date time.Time) (*models.WorkEntry, error) {
	var entry models.WorkEntry
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"date":    date.Format("2006-01-02"),
		}).Debug("Work entry not found for user/date")
		return nil, nil
	}

	if err != nil {
		r.logger.WithError(err).Error("Failed to get work entry by user and date")
		return nil, err
	}

	return &entry, nil
}

// GetByUserAndDates загружает записи на весь набор дат одним запросом,
// чтобы не ходить в базу по каждому дню диапазона
func (r *GormWorkEntryRepository) GetByUserAndDates(userID uint, dates []time.Time) ([]*models.WorkEntry, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	var entries []*models.WorkEntry
	err := r.db.Where("user_id = ? AND date IN ?", userID, dates).Find(&entries).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to batch-get work entries")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"dates":   len(dates),
		"found":   len(entries),
	}).Debug("Batch-loaded work entries")

	return entries, nil
}

func (r *GormWorkEntryRepository) GetByUserBetween(userID uint, from, to time.Time) ([]*models.WorkEntry, error) {
	var entries []*models.WorkEntry
	err := r.db.Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to get work entries for period")
		return nil, err
	}
	return entries, nil
}

func (r *GormWorkEntryRepository) BulkCreate(entries []*models.WorkEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *GormWorkEntryRepository) Save(entry *models.WorkEntry) error {
	return r.db.Save(entry).Error
}

// DeleteByUserAndDate удаляет запись дня; отсутствие записи не ошибка
func (r *GormWorkEntryRepository) DeleteByUserAndDate(userID uint, date time.Time) (int64, error) {
	result := r.db.Where("user_id = ? AND date = ?", userID, date).Delete(&models.WorkEntry{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete work entry")
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormWorkEntryRepository) DeleteByUserID(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.WorkEntry{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete user work entries")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"rows_affected": result.RowsAffected,
	}).Info("User work entries deleted")

	return nil
}
