package repository

import (
	"errors"

	"hr-schedule-api/internal/models"

	"gorm.io/gorm"
)

type LeaveRequestRepository interface {
	Create(req *models.LeaveRequest) error
	Update(req *models.LeaveRequest) error
	GetByID(id uint) (*models.LeaveRequest, error)
	GetByUserID(userID uint) ([]models.LeaveRequest, error)
	GetByDepartmentID(departmentID uint) ([]models.LeaveRequest, error)
	DeleteByUserID(userID uint) error
	WithTx(tx *gorm.DB) LeaveRequestRepository
}

type GormLeaveRequestRepository struct {
	db *gorm.DB
}

func NewGormLeaveRequestRepository(db *gorm.DB) (LeaveRequestRepository, error) {
	if err := db.AutoMigrate(&models.LeaveRequest{}); err != nil {
		return nil, err
	}
	return &GormLeaveRequestRepository{db: db}, nil
}

func (r *GormLeaveRequestRepository) WithTx(tx *gorm.DB) LeaveRequestRepository {
	return &GormLeaveRequestRepository{db: tx}
}

func (r *GormLeaveRequestRepository) Create(req *models.LeaveRequest) error {
	return r.db.Create(req).Error
}

func (r *GormLeaveRequestRepository) Update(req *models.LeaveRequest) error {
	return r.db.Save(req).Error
}

func (r *GormLeaveRequestRepository) GetByID(id uint) (*models.LeaveRequest, error) {
	var req models.LeaveRequest
	err := r.db.Preload("User").First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormLeaveRequestRepository) GetByUserID(userID uint) ([]models.LeaveRequest, error) {
	var reqs []models.LeaveRequest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// GetByDepartmentID возвращает заявки сотрудников подразделения.
// Принадлежность определяется явным join через профили, а не обходом
// связей объектов - так проверку доступа видно в одном месте.
func (r *GormLeaveRequestRepository) GetByDepartmentID(departmentID uint) ([]models.LeaveRequest, error) {
	var reqs []models.LeaveRequest
	err := r.db.Preload("User").
		Joins("JOIN employee_profiles ON employee_profiles.user_id = leave_requests.user_id").
		Where("employee_profiles.department_id = ?", departmentID).
		Order("leave_requests.created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *GormLeaveRequestRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.LeaveRequest{}).Error
}
