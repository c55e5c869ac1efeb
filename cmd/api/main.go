package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hr-schedule-api/internal/audit"
	"hr-schedule-api/internal/config"
	"hr-schedule-api/internal/handler"
	"hr-schedule-api/internal/repository"
	"hr-schedule-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logger.Info("Initializing config...")
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
	})
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database instance:", err)
	}

	// Внешние ключи в SQLite надо включать явно
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create user repository")
	}

	departmentRepo, err := repository.NewGormDepartmentRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create department repository")
	}

	profileRepo, err := repository.NewGormEmployeeProfileRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create employee profile repository")
	}

	entryRepo, err := repository.NewGormWorkEntryRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create work entry repository")
	}

	leaveRepo, err := repository.NewGormLeaveRequestRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create leave request repository")
	}

	changeLog := audit.NewChangeLog(cfg.ScheduleLogFile, cfg.ProfileLogFile, logger)

	policyService := service.NewPolicyService(userRepo, departmentRepo, profileRepo, logger)
	authService := service.NewAuthService(userRepo, cfg, logger)
	scheduleService := service.NewScheduleService(db, entryRepo, policyService, changeLog, logger)
	leaveService := service.NewLeaveService(db, leaveRepo, entryRepo, policyService, changeLog, logger)
	departmentService := service.NewDepartmentService(departmentRepo, userRepo, profileRepo, logger)
	employeeService := service.NewEmployeeService(
		db, profileRepo, departmentRepo, userRepo, entryRepo, leaveRepo,
		policyService, changeLog, logger,
	)

	apiHandler := handler.NewHandler(
		authService,
		scheduleService,
		leaveService,
		departmentService,
		employeeService,
		logger,
	)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: apiHandler.Router(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed:", err)
		}
	}()

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Infof("Error shutting down server: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logger.Infof("Error closing database: %v", err)
	}

	logger.Info("Server stopped gracefully")
}
