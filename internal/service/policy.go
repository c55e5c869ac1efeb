package service

import (
	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/models"
	"hr-schedule-api/internal/repository"

	"github.com/sirupsen/logrus"
)

// PolicyService - единая точка проверки, может ли действующий пользователь
// менять данные другого. Все мутации чужих календарей, профилей и заявок
// проходят через нее.
type PolicyService struct {
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
	profileRepo    repository.EmployeeProfileRepository
	logger         *logrus.Logger
}

func NewPolicyService(
	userRepo repository.UserRepository,
	departmentRepo repository.DepartmentRepository,
	profileRepo repository.EmployeeProfileRepository,
	logger *logrus.Logger,
) *PolicyService {
	return &PolicyService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		profileRepo:    profileRepo,
		logger:         logger,
	}
}

// TargetUser загружает целевого пользователя. Отсутствие пользователя
// проверяется до авторизации, чтобы not-found и forbidden различались.
func (s *PolicyService) TargetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// CanEdit проверяет право менять данные цели: себя можно всегда,
// менеджер не может менять данные другого менеджера.
func (s *PolicyService) CanEdit(actor, target *models.User) error {
	if actor.ID == target.ID {
		return nil
	}
	if !actor.IsManager() {
		return apperr.Forbidden("manager role required")
	}
	if target.IsManager() {
		s.logger.WithFields(logrus.Fields{
			"actor_id":  actor.ID,
			"target_id": target.ID,
		}).Warn("Manager attempted to edit another manager")
		return apperr.Forbidden("you cannot edit another manager")
	}
	return nil
}

// ManagedDepartment возвращает подразделение менеджера, nil если его нет
func (s *PolicyService) ManagedDepartment(manager *models.User) (*models.Department, error) {
	dep, err := s.departmentRepo.GetByManagerID(manager.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return dep, nil
}

// CanDecideFor проверяет право менеджера решать судьбу заявки сотрудника:
// сотрудник должен числиться в подразделении, которым управляет менеджер.
// Менеджер без подразделения заявки не решает.
func (s *PolicyService) CanDecideFor(manager, target *models.User) error {
	if err := s.CanEdit(manager, target); err != nil {
		return err
	}

	dep, err := s.ManagedDepartment(manager)
	if err != nil {
		return err
	}
	if dep == nil {
		return apperr.Forbidden("you do not manage a department")
	}

	profile, err := s.profileRepo.GetByUserID(target.ID)
	if err != nil {
		return apperr.Storage(err)
	}
	if profile == nil || profile.DepartmentID == nil || *profile.DepartmentID != dep.ID {
		return apperr.Forbidden("employee is not in your department")
	}
	return nil
}
