package service

import (
	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/models"
	"hr-schedule-api/internal/repository"

	"github.com/sirupsen/logrus"
)

// DepartmentPatch - явный список полей, которые можно менять у подразделения.
// nil означает "не трогать".
type DepartmentPatch struct {
	Name          *string
	ManagerUserID *uint
}

type DepartmentService struct {
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
	profileRepo    repository.EmployeeProfileRepository
	logger         *logrus.Logger
}

func NewDepartmentService(
	departmentRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	profileRepo repository.EmployeeProfileRepository,
	logger *logrus.Logger,
) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		logger:         logger,
	}
}

// checkManagerRef проверяет, что назначаемый руководитель существует
// и имеет роль менеджера
func (s *DepartmentService) checkManagerRef(managerUserID uint) error {
	user, err := s.userRepo.GetByID(managerUserID)
	if err != nil {
		return apperr.Storage(err)
	}
	if user == nil {
		return apperr.NotFound("manager user not found")
	}
	if !user.IsManager() {
		return apperr.Validation("manager_user_id must reference a user with role=manager")
	}
	return nil
}

func (s *DepartmentService) Create(name string, managerUserID *uint) (*models.Department, error) {
	if name == "" {
		return nil, apperr.Validation("department name must not be empty")
	}

	if managerUserID != nil {
		if err := s.checkManagerRef(*managerUserID); err != nil {
			return nil, err
		}
	}

	existing, err := s.departmentRepo.GetByName(name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("department %q already exists", name)
	}

	dep := &models.Department{Name: name, ManagerUserID: managerUserID}
	if err := s.departmentRepo.Create(dep); err != nil {
		s.logger.WithError(err).Error("Failed to create department")
		// Уникальный индекс по имени - последний рубеж при гонке
		return nil, apperr.Conflict("department %q already exists", name)
	}

	s.logger.WithFields(logrus.Fields{
		"id":   dep.ID,
		"name": dep.Name,
	}).Info("Department created")

	return dep, nil
}

func (s *DepartmentService) Update(id uint, patch DepartmentPatch) (*models.Department, error) {
	dep, err := s.departmentRepo.GetByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if dep == nil {
		return nil, apperr.NotFound("department not found")
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperr.Validation("department name must not be empty")
		}
		other, err := s.departmentRepo.GetByName(*patch.Name)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if other != nil && other.ID != dep.ID {
			return nil, apperr.Conflict("department %q already exists", *patch.Name)
		}
		dep.Name = *patch.Name
	}

	if patch.ManagerUserID != nil {
		if err := s.checkManagerRef(*patch.ManagerUserID); err != nil {
			return nil, err
		}
		dep.ManagerUserID = patch.ManagerUserID
	}

	if err := s.departmentRepo.Update(dep); err != nil {
		s.logger.WithError(err).Error("Failed to update department")
		return nil, apperr.Storage(err)
	}

	return dep, nil
}

func (s *DepartmentService) All() ([]models.Department, error) {
	deps, err := s.departmentRepo.GetAll()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return deps, nil
}

// MyEmployees возвращает профили сотрудников подразделения менеджера.
// Менеджер без подразделения получает пустой список.
func (s *DepartmentService) MyEmployees(manager *models.User) ([]models.EmployeeProfile, error) {
	dep, err := s.departmentRepo.GetByManagerID(manager.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if dep == nil {
		return []models.EmployeeProfile{}, nil
	}

	profiles, err := s.profileRepo.GetByDepartmentID(dep.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return profiles, nil
}
