package repository

import (
	"errors"

	"hr-schedule-api/internal/models"

	"gorm.io/gorm"
)

type EmployeeProfileRepository interface {
	Save(profile *models.EmployeeProfile) error
	GetByUserID(userID uint) (*models.EmployeeProfile, error)
	GetByDepartmentID(departmentID uint) ([]models.EmployeeProfile, error)
	DeleteByUserID(userID uint) error
	WithTx(tx *gorm.DB) EmployeeProfileRepository
}

type GormEmployeeProfileRepository struct {
	db *gorm.DB
}

func NewGormEmployeeProfileRepository(db *gorm.DB) (EmployeeProfileRepository, error) {
	if err := db.AutoMigrate(&models.EmployeeProfile{}); err != nil {
		return nil, err
	}
	return &GormEmployeeProfileRepository{db: db}, nil
}

func (r *GormEmployeeProfileRepository) WithTx(tx *gorm.DB) EmployeeProfileRepository {
	return &GormEmployeeProfileRepository{db: tx}
}

func (r *GormEmployeeProfileRepository) Save(profile *models.EmployeeProfile) error {
	return r.db.Save(profile).Error
}

func (r *GormEmployeeProfileRepository) GetByUserID(userID uint) (*models.EmployeeProfile, error) {
	var profile models.EmployeeProfile
	err := r.db.Preload("Department").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormEmployeeProfileRepository) GetByDepartmentID(departmentID uint) ([]models.EmployeeProfile, error) {
	var profiles []models.EmployeeProfile
	err := r.db.Preload("User").
		Where("department_id = ?", departmentID).
		Order("lower(coalesce(full_name, '')) ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *GormEmployeeProfileRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.EmployeeProfile{}).Error
}
