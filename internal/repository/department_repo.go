package repository

import (
	"errors"

	"hr-schedule-api/internal/models"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(dep *models.Department) error
	Update(dep *models.Department) error
	GetByID(id uint) (*models.Department, error)
	GetByName(name string) (*models.Department, error)
	GetByManagerID(managerID uint) (*models.Department, error)
	GetAll() ([]models.Department, error)
	WithTx(tx *gorm.DB) DepartmentRepository
}

type GormDepartmentRepository struct {
	db *gorm.DB
}

func NewGormDepartmentRepository(db *gorm.DB) (DepartmentRepository, error) {
	if err := db.AutoMigrate(&models.Department{}); err != nil {
		return nil, err
	}
	return &GormDepartmentRepository{db: db}, nil
}

func (r *GormDepartmentRepository) WithTx(tx *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: tx}
}

func (r *GormDepartmentRepository) Create(dep *models.Department) error {
	return r.db.Create(dep).Error
}

func (r *GormDepartmentRepository) Update(dep *models.Department) error {
	return r.db.Save(dep).Error
}

func (r *GormDepartmentRepository) GetByID(id uint) (*models.Department, error) {
	var dep models.Department
	err := r.db.First(&dep, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

func (r *GormDepartmentRepository) GetByName(name string) (*models.Department, error) {
	var dep models.Department
	err := r.db.Where("name = ?", name).First(&dep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

// GetByManagerID возвращает подразделение, которым управляет менеджер.
// У менеджера либо одно подразделение, либо ни одного.
func (r *GormDepartmentRepository) GetByManagerID(managerID uint) (*models.Department, error) {
	var dep models.Department
	err := r.db.Where("manager_user_id = ?", managerID).First(&dep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

func (r *GormDepartmentRepository) GetAll() ([]models.Department, error) {
	var deps []models.Department
	err := r.db.Order("name ASC").Find(&deps).Error
	return deps, err
}
