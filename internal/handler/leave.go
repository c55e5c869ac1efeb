package handler

import (
	"net/http"
	"strconv"

	"hr-schedule-api/internal/middleware"
	"hr-schedule-api/pkg/daterange"

	"github.com/gin-gonic/gin"
)

type leaveRequestInput struct {
	Type      string `json:"type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type leaveDecisionInput struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) SubmitLeaveRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input leaveRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	startDate, err := daterange.ParseDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	endDate, err := daterange.ParseDate(input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.leaveService.Submit(user, input.Type, startDate, endDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, req)
}

func (h *Handler) MyLeaveRequests(c *gin.Context) {
	user := middleware.CurrentUser(c)

	reqs, err := h.leaveService.Mine(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) TeamLeaveRequests(c *gin.Context) {
	user := middleware.CurrentUser(c)

	reqs, err := h.leaveService.ForManager(user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) DecideLeaveRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var input leaveDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	req, err := h.leaveService.Decide(user, uint(id), input.Status, middleware.GetRequestID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}
