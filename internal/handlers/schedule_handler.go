package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflow/booking-api/internal/domain/availability"
	"github.com/salonflow/booking-api/internal/middleware"
	"github.com/salonflow/booking-api/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleDayConfig struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

// employeeScope reads the optional ?employee_id query parameter. Without it
// the handler works on the business-wide default rows.
func employeeScope(c *gin.Context) (*uint, bool) {
	raw := c.Query("employee_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	businessIDVal, _ := c.Get(middleware.ContextBusinessID)
	businessID := businessIDVal.(uint)

	employeeID, ok := employeeScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_employee_id"})
		return
	}

	q := h.db.Where("business_id = ?", businessID)
	if employeeID == nil {
		q = q.Where("employee_id IS NULL")
	} else {
		q = q.Where("employee_id = ?", *employeeID)
	}

	var schedules []models.Schedule
	if err := q.Order("day_of_week ASC").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	businessIDVal, _ := c.Get(middleware.ContextBusinessID)
	businessID := businessIDVal.(uint)

	employeeID, ok := employeeScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_employee_id"})
		return
	}

	if employeeID != nil {
		var count int64
		h.db.Model(&models.Employee{}).
			Where("id = ? AND business_id = ?", *employeeID, businessID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
			return
		}
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if !d.IsAvailable {
			continue
		}
		start, okS := availability.ParseClock(d.StartTime)
		end, okE := availability.ParseClock(d.EndTime)
		if !okS || !okE || start >= end {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_range"})
			return
		}
	}

	q := h.db.Where("business_id = ?", businessID)
	if employeeID == nil {
		q = q.Where("employee_id IS NULL")
	} else {
		q = q.Where("employee_id = ?", *employeeID)
	}
	if err := q.Delete(&models.Schedule{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_schedules"})
		return
	}

	var toCreate []models.Schedule
	for _, d := range req.Days {
		toCreate = append(toCreate, models.Schedule{
			BusinessID:  businessID,
			EmployeeID:  employeeID,
			DayOfWeek:   d.DayOfWeek,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			IsAvailable: d.IsAvailable,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedules"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
