package handler

import (
	"net/http"
	"strconv"

	"hr-schedule-api/internal/middleware"
	"hr-schedule-api/internal/service"
	"hr-schedule-api/pkg/daterange"

	"github.com/gin-gonic/gin"
)

type dayUpsertInput struct {
	Date      string  `json:"date" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Title     string  `json:"title"`
	Overwrite *bool   `json:"overwrite"`
}

type rangeUpsertInput struct {
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Weekdays  []int   `json:"weekdays"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Title     string  `json:"title"`
	Overwrite *bool   `json:"overwrite"`
}

func paramUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// overwrite по умолчанию true: ручная правка календаря перекрывает
// существующую запись, если явно не попросили иначе
func overwriteOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func (h *Handler) MySchedule(c *gin.Context) {
	user := middleware.CurrentUser(c)

	entries, err := h.scheduleService.MonthSchedule(user.ID, c.Query("month"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": c.Query("month"), "entries": entries})
}

func (h *Handler) UserSchedule(c *gin.Context) {
	user := middleware.CurrentUser(c)
	targetID, ok := paramUserID(c)
	if !ok {
		return
	}

	entries, err := h.scheduleService.UserMonthSchedule(user, targetID, c.Query("month"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": c.Query("month"), "entries": entries})
}

func (h *Handler) UpsertDay(c *gin.Context) {
	user := middleware.CurrentUser(c)
	targetID, ok := paramUserID(c)
	if !ok {
		return
	}

	var input dayUpsertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	date, err := daterange.ParseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, action, err := h.scheduleService.UpsertDay(user, targetID, service.DayUpsert{
		Date:      date,
		Type:      input.Type,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Title:     input.Title,
		Overwrite: overwriteOrDefault(input.Overwrite),
	}, middleware.GetRequestID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry, "action": action})
}

func (h *Handler) UpsertRange(c *gin.Context) {
	user := middleware.CurrentUser(c)
	targetID, ok := paramUserID(c)
	if !ok {
		return
	}

	var input rangeUpsertInput
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

	result, err := h.scheduleService.UpsertRange(user, targetID, service.RangeUpsert{
		StartDate: startDate,
		EndDate:   endDate,
		Type:      input.Type,
		Weekdays:  input.Weekdays,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Title:     input.Title,
		Overwrite: overwriteOrDefault(input.Overwrite),
	}, middleware.GetRequestID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteDay(c *gin.Context) {
	user := middleware.CurrentUser(c)
	targetID, ok := paramUserID(c)
	if !ok {
		return
	}

	date, err := daterange.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.scheduleService.DeleteDay(user, targetID, date, middleware.GetRequestID(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
