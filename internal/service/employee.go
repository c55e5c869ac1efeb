package service

import (
	"fmt"
	"time"

	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/audit"
	"hr-schedule-api/internal/models"
	"hr-schedule-api/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProfilePatch - явный список необязательных полей профиля.
// nil означает "поле не передано, не трогать".
type ProfilePatch struct {
	FullName       *string
	BirthDate      *time.Time
	EmployeeNumber *string
	Position       *string
	WorkStartDate  *time.Time
	DepartmentID   *uint
}

type EmployeeService struct {
	db             *gorm.DB
	profileRepo    repository.EmployeeProfileRepository
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
	entryRepo      repository.WorkEntryRepository
	leaveRepo      repository.LeaveRequestRepository
	policy         *PolicyService
	changeLog      *audit.ChangeLog
	logger         *logrus.Logger
}

func NewEmployeeService(
	db *gorm.DB,
	profileRepo repository.EmployeeProfileRepository,
	departmentRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	entryRepo repository.WorkEntryRepository,
	leaveRepo repository.LeaveRequestRepository,
	policy *PolicyService,
	changeLog *audit.ChangeLog,
	logger *logrus.Logger,
) *EmployeeService {
	return &EmployeeService{
		db:             db,
		profileRepo:    profileRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		entryRepo:      entryRepo,
		leaveRepo:      leaveRepo,
		policy:         policy,
		changeLog:      changeLog,
		logger:         logger,
	}
}

// MyProfile возвращает профиль текущего пользователя
func (s *EmployeeService) MyProfile(user *models.User) (*models.EmployeeProfile, error) {
	profile, err := s.profileRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if profile == nil {
		return nil, apperr.NotFound("profile not found")
	}
	return profile, nil
}

// UpsertProfile создает или обновляет профиль сотрудника по явному патчу
func (s *EmployeeService) UpsertProfile(actor *models.User, targetID uint, patch ProfilePatch, auditID string) (*models.EmployeeProfile, error) {
	target, err := s.policy.TargetUser(targetID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanEdit(actor, target); err != nil {
		return nil, err
	}

	if patch.DepartmentID != nil {
		dep, err := s.departmentRepo.GetByID(*patch.DepartmentID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if dep == nil {
			return nil, apperr.NotFound("department not found")
		}
	}

	profile, err := s.profileRepo.GetByUserID(target.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	action := "profile updated"
	if profile == nil {
		profile = &models.EmployeeProfile{UserID: target.ID}
		action = "profile created"
	}

	if patch.FullName != nil {
		profile.FullName = *patch.FullName
	}
	if patch.BirthDate != nil {
		profile.BirthDate = patch.BirthDate
	}
	if patch.EmployeeNumber != nil {
		profile.EmployeeNumber = *patch.EmployeeNumber
	}
	if patch.Position != nil {
		profile.Position = *patch.Position
	}
	if patch.WorkStartDate != nil {
		profile.WorkStartDate = patch.WorkStartDate
	}
	if patch.DepartmentID != nil {
		profile.DepartmentID = patch.DepartmentID
	}

	if err := s.profileRepo.Save(profile); err != nil {
		s.logger.WithError(err).Error("Failed to save employee profile")
		return nil, apperr.Storage(err)
	}

	s.changeLog.ProfileChange(auditID, actor, target, action, fmt.Sprintf("user_id=%d", target.ID))

	return profile, nil
}

// AssignDepartment привязывает сотрудника к подразделению (nil - отвязывает).
// Профиль создается при первой привязке.
func (s *EmployeeService) AssignDepartment(actor *models.User, targetID uint, departmentID *uint, auditID string) (*models.EmployeeProfile, error) {
	target, err := s.policy.TargetUser(targetID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanEdit(actor, target); err != nil {
		return nil, err
	}

	if departmentID != nil {
		dep, err := s.departmentRepo.GetByID(*departmentID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if dep == nil {
			return nil, apperr.NotFound("department not found")
		}
	}

	profile, err := s.profileRepo.GetByUserID(target.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	action := "profile updated"
	if profile == nil {
		profile = &models.EmployeeProfile{UserID: target.ID}
		action = "profile created"
	}

	oldDept := profile.DepartmentID
	profile.DepartmentID = departmentID

	if err := s.profileRepo.Save(profile); err != nil {
		s.logger.WithError(err).Error("Failed to assign department")
		return nil, apperr.Storage(err)
	}

	if !equalUintPtr(oldDept, departmentID) {
		s.changeLog.ProfileChange(
			auditID, actor, target, action,
			fmt.Sprintf("department_id: %s -> %s", formatUintPtr(oldDept), formatUintPtr(departmentID)),
		)
	}

	return profile, nil
}

// DeleteUser удаляет пользователя вместе с календарем, заявками и профилем
// одной транзакцией
func (s *EmployeeService) DeleteUser(actor *models.User, targetID uint, auditID string) error {
	target, err := s.policy.TargetUser(targetID)
	if err != nil {
		return err
	}
	if err := s.policy.CanEdit(actor, target); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.WithTx(tx).DeleteByUserID(target.ID); err != nil {
			return err
		}
		if err := s.leaveRepo.WithTx(tx).DeleteByUserID(target.ID); err != nil {
			return err
		}
		if err := s.profileRepo.WithTx(tx).DeleteByUserID(target.ID); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).Delete(target.ID)
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to delete user")
		return apperr.Storage(err)
	}

	s.logger.WithFields(logrus.Fields{
		"actor_id":  actor.ID,
		"target_id": target.ID,
	}).Info("User deleted")

	s.changeLog.ProfileChange(auditID, actor, target, "user deleted", "")

	return nil
}

func equalUintPtr(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func formatUintPtr(v *uint) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *v)
}
