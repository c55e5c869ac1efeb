package handler

import (
	"net/http"
	"time"

	"hr-schedule-api/internal/middleware"
	"hr-schedule-api/internal/service"
	"hr-schedule-api/pkg/daterange"

	"github.com/gin-gonic/gin"
)

type profileUpsertInput struct {
	FullName       *string `json:"full_name"`
	BirthDate      *string `json:"birth_date"`
	EmployeeNumber *string `json:"employee_number"`
	Position       *string `json:"position"`
	WorkStartDate  *string `json:"work_start_date"`
	DepartmentID   *uint   `json:"department_id"`
}

type assignDepartmentInput struct {
	DepartmentID *uint `json:"department_id"`
}

func parseOptionalDate(c *gin.Context, s *string) (*time.Time, bool) {
	if s == nil {
		return nil, true
	}
	d, err := daterange.ParseDate(*s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &d, true
}

func (h *Handler) MyProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	profile, err := h.employeeService.MyProfile(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpsertProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	targetID, ok := paramUserID(c)
	if !ok {
		return
	}

	var input profileUpsertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	birthDate, ok := parseOptionalDate(c, input.BirthDate)
	if !ok {
		return
	}
	workStartDate, ok := parseOptionalDate(c, input.WorkStartDate)
	if !ok {
		return
	}

	profile, err := h.employeeService.UpsertProfile(user, targetID, service.ProfilePatch{
		FullName:       input.FullName,
		BirthDate:      birthDate,
		EmployeeNumber: input.EmployeeNumber,
		Position:       input.Position,
		WorkStartDate:  workStartDate,
		DepartmentID:   input.DepartmentID,
	}, middleware.GetRequestID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) AssignDepartment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	targetID, ok := paramUserID(c)
	if !ok {
		return
	}

	var input assignDepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	profile, err := h.employeeService.AssignDepartment(user, targetID, input.DepartmentID, middleware.GetRequestID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "department_id": profile.DepartmentID})
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	user := middleware.CurrentUser(c)
	targetID, ok := paramUserID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteUser(user, targetID, middleware.GetRequestID(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
