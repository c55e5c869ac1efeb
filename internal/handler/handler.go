package handler

import (
	"errors"
	"net/http"

	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/middleware"
	"hr-schedule-api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler объединяет обработчики HTTP API
type Handler struct {
	authService       *service.AuthService
	scheduleService   *service.ScheduleService
	leaveService      *service.LeaveService
	departmentService *service.DepartmentService
	employeeService   *service.EmployeeService
	logger            *logrus.Logger
}

func NewHandler(
	authService *service.AuthService,
	scheduleService *service.ScheduleService,
	leaveService *service.LeaveService,
	departmentService *service.DepartmentService,
	employeeService *service.EmployeeService,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		scheduleService:   scheduleService,
		leaveService:      leaveService,
		departmentService: departmentService,
		employeeService:   employeeService,
		logger:            logger,
	}
}

// Router собирает маршруты и промежуточные обработчики
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	authed := r.Group("/", middleware.Auth(h.authService))
	{
		authed.GET("/profile/me", h.MyProfile)

		authed.GET("/schedule/me", h.MySchedule)
		authed.POST("/leave-requests", h.SubmitLeaveRequest)
		authed.GET("/leave-requests/me", h.MyLeaveRequests)

		managers := authed.Group("/", middleware.RequireManager())
		{
			managers.GET("/departments", h.ListDepartments)
			managers.POST("/departments", h.CreateDepartment)
			managers.PATCH("/departments/:id", h.UpdateDepartment)
			managers.GET("/departments/me/employees", h.MyEmployees)

			managers.PUT("/employees/:id/department", h.AssignDepartment)
			managers.PUT("/employees/:id/profile", h.UpsertProfile)
			managers.DELETE("/employees/:id", h.DeleteEmployee)

			managers.GET("/schedule/:id", h.UserSchedule)
			managers.PUT("/schedule/:id/day", h.UpsertDay)
			managers.PUT("/schedule/:id/range", h.UpsertRange)
			managers.DELETE("/schedule/:id/day", h.DeleteDay)

			managers.GET("/leave-requests", h.TeamLeaveRequests)
			managers.PATCH("/leave-requests/:id", h.DecideLeaveRequest)
		}
	}

	return r
}

// respondError переводит вид ошибки в статус ответа. Ошибки хранилища
// наружу не раскрываются.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
