package service

import (
	"path/filepath"
	"testing"
	"time"

	"hr-schedule-api/internal/audit"
	"hr-schedule-api/internal/config"
	"hr-schedule-api/internal/models"
	"hr-schedule-api/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv поднимает сервисы поверх sqlite в памяти
type testEnv struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
	profileRepo    repository.EmployeeProfileRepository
	entryRepo      repository.WorkEntryRepository
	leaveRepo      repository.LeaveRequestRepository

	policy     *PolicyService
	auth       *AuthService
	schedule   *ScheduleService
	leave      *LeaveService
	department *DepartmentService
	employee   *EmployeeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Одна in-memory база на все соединения пула
	sqlDB.SetMaxOpenConns(1)

	userRepo, err := repository.NewGormUserRepository(db)
	require.NoError(t, err)
	departmentRepo, err := repository.NewGormDepartmentRepository(db)
	require.NoError(t, err)
	profileRepo, err := repository.NewGormEmployeeProfileRepository(db)
	require.NoError(t, err)
	entryRepo, err := repository.NewGormWorkEntryRepository(db, logger)
	require.NoError(t, err)
	leaveRepo, err := repository.NewGormLeaveRequestRepository(db)
	require.NoError(t, err)

	dir := t.TempDir()
	changeLog := audit.NewChangeLog(
		filepath.Join(dir, "schedule_changes.log"),
		filepath.Join(dir, "profile_changes.log"),
		logger,
	)

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Hour,
	}

	policy := NewPolicyService(userRepo, departmentRepo, profileRepo, logger)

	return &testEnv{
		db:             db,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		profileRepo:    profileRepo,
		entryRepo:      entryRepo,
		leaveRepo:      leaveRepo,
		policy:         policy,
		auth:           NewAuthService(userRepo, cfg, logger),
		schedule:       NewScheduleService(db, entryRepo, policy, changeLog, logger),
		leave:          NewLeaveService(db, leaveRepo, entryRepo, policy, changeLog, logger),
		department:     NewDepartmentService(departmentRepo, userRepo, profileRepo, logger),
		employee: NewEmployeeService(
			db, profileRepo, departmentRepo, userRepo, entryRepo, leaveRepo,
			policy, changeLog, logger,
		),
	}
}

func (e *testEnv) createUser(t *testing.T, email, role string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

// createTeam создает менеджера с подразделением и сотрудника в нем
func (e *testEnv) createTeam(t *testing.T, name string) (manager, employee *models.User) {
	t.Helper()

	manager = e.createUser(t, name+".manager@example.com", models.RoleManager)
	employee = e.createUser(t, name+".employee@example.com", models.RoleEmployee)

	dep := &models.Department{Name: name, ManagerUserID: &manager.ID}
	require.NoError(t, e.departmentRepo.Create(dep))

	profile := &models.EmployeeProfile{UserID: employee.ID, DepartmentID: &dep.ID}
	require.NoError(t, e.profileRepo.Save(profile))

	return manager, employee
}

func strPtr(s string) *string { return &s }

func date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d.UTC()
}
