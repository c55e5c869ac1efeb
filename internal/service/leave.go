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

// LeaveService ведет заявки на отсутствие: подача, списки и решение
// менеджера. Одобренная заявка материализуется в календаре в той же
// транзакции, что и смена статуса.
type LeaveService struct {
	db        *gorm.DB
	leaveRepo repository.LeaveRequestRepository
	entryRepo repository.WorkEntryRepository
	policy    *PolicyService
	changeLog *audit.ChangeLog
	logger    *logrus.Logger
}

func NewLeaveService(
	db *gorm.DB,
	leaveRepo repository.LeaveRequestRepository,
	entryRepo repository.WorkEntryRepository,
	policy *PolicyService,
	changeLog *audit.ChangeLog,
	logger *logrus.Logger,
) *LeaveService {
	return &LeaveService{
		db:        db,
		leaveRepo: leaveRepo,
		entryRepo: entryRepo,
		policy:    policy,
		changeLog: changeLog,
		logger:    logger,
	}
}

// Submit создает заявку в статусе pending; календарь не трогается
func (s *LeaveService) Submit(user *models.User, leaveType string, startDate, endDate time.Time) (*models.LeaveRequest, error) {
	if !models.IsValidLeaveType(leaveType) {
		return nil, apperr.Validation("unknown leave type %q", leaveType)
	}
	if endDate.Before(startDate) {
		return nil, apperr.Validation("end_date must not be before start_date")
	}

	req := &models.LeaveRequest{
		UserID:    user.ID,
		Type:      leaveType,
		StartDate: daterange.Normalize(startDate),
		EndDate:   daterange.Normalize(endDate),
		Status:    models.LeaveStatusPending,
	}

	if err := s.leaveRepo.Create(req); err != nil {
		s.logger.WithError(err).Error("Failed to create leave request")
		return nil, apperr.Storage(err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":      req.ID,
		"user_id": user.ID,
		"type":    leaveType,
	}).Info("Leave request submitted")

	return req, nil
}

// Mine возвращает заявки пользователя, новые первыми
func (s *LeaveService) Mine(user *models.User) ([]models.LeaveRequest, error) {
	reqs, err := s.leaveRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return reqs, nil
}

// ForManager возвращает заявки сотрудников подразделения менеджера.
// Менеджер без подразделения получает пустой список.
func (s *LeaveService) ForManager(manager *models.User) ([]models.LeaveRequest, error) {
	dep, err := s.policy.ManagedDepartment(manager)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return []models.LeaveRequest{}, nil
	}

	reqs, err := s.leaveRepo.GetByDepartmentID(dep.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return reqs, nil
}

// Decide переводит заявку из pending в approved или rejected.
// Повторное решение по обработанной заявке - конфликт. При одобрении
// смена статуса и записи календаря пишутся одной транзакцией.
func (s *LeaveService) Decide(manager *models.User, requestID uint, decision string, auditID string) (*models.LeaveRequest, error) {
	if !models.IsValidLeaveStatus(decision) {
		return nil, apperr.Validation("decision must be %q or %q", models.LeaveStatusApproved, models.LeaveStatusRejected)
	}

	req, err := s.leaveRepo.GetByID(requestID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if req == nil {
		return nil, apperr.NotFound("leave request not found")
	}

	if err := s.policy.CanDecideFor(manager, &req.User); err != nil {
		return nil, err
	}

	if !req.IsPending() {
		return nil, apperr.Conflict("leave request is already processed")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		req.Status = decision
		if err := s.leaveRepo.WithTx(tx).Update(req); err != nil {
			return err
		}

		if decision == models.LeaveStatusApproved {
			return s.materialize(tx, req)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to decide leave request")
		return nil, apperr.Storage(err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":         req.ID,
		"user_id":    req.UserID,
		"decision":   decision,
		"manager_id": manager.ID,
	}).Info("Leave request decided")

	if decision == models.LeaveStatusApproved {
		s.changeLog.ScheduleChange(
			auditID, manager, &req.User,
			fmt.Sprintf("%s - %s", req.StartDate.Format(daterange.DateLayout), req.EndDate.Format(daterange.DateLayout)),
			"leave request approved",
			fmt.Sprintf("type=%s", req.Type),
		)
	}

	return req, nil
}

// materialize записывает одобренное отсутствие в календарь: по записи
// на каждую дату диапазона, без времени, поверх любых прежних записей
func (s *LeaveService) materialize(tx *gorm.DB, req *models.LeaveRequest) error {
	repo := s.entryRepo.WithTx(tx)

	dates := daterange.Enumerate(req.StartDate, req.EndDate, nil)

	existing, err := repo.GetByUserAndDates(req.UserID, dates)
	if err != nil {
		return err
	}
	byDate := make(map[string]*models.WorkEntry, len(existing))
	for _, e := range existing {
		byDate[e.Date.Format(daterange.DateLayout)] = e
	}

	title := fmt.Sprintf("Approved %s", req.Type)

	var toCreate []*models.WorkEntry
	for _, d := range dates {
		entry := byDate[d.Format(daterange.DateLayout)]
		if entry == nil {
			entry = &models.WorkEntry{UserID: req.UserID, Date: d}
			applyFields(entry, req.Type, nil, nil, title)
			toCreate = append(toCreate, entry)
			continue
		}

		applyFields(entry, req.Type, nil, nil, title)
		if err := repo.Save(entry); err != nil {
			return err
		}
	}

	return repo.BulkCreate(toCreate)
}
