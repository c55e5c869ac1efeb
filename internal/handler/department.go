package handler

import (
	"net/http"
	"strconv"

	"hr-schedule-api/internal/middleware"
	"hr-schedule-api/internal/service"

	"github.com/gin-gonic/gin"
)

type departmentCreateInput struct {
	Name          string `json:"name" binding:"required"`
	ManagerUserID *uint  `json:"manager_user_id"`
}

type departmentUpdateInput struct {
	Name          *string `json:"name"`
	ManagerUserID *uint   `json:"manager_user_id"`
}

func (h *Handler) ListDepartments(c *gin.Context) {
	deps, err := h.departmentService.All()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, deps)
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var input departmentCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	dep, err := h.departmentService.Create(input.Name, input.ManagerUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dep)
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department id"})
		return
	}

	var input departmentUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	dep, err := h.departmentService.Update(uint(id), service.DepartmentPatch{
		Name:          input.Name,
		ManagerUserID: input.ManagerUserID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dep)
}

func (h *Handler) MyEmployees(c *gin.Context) {
	user := middleware.CurrentUser(c)

	profiles, err := h.departmentService.MyEmployees(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}
