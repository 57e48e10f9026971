package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/timezone"
	"github.com/salonflow/booking-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the client-facing booking surface. It only needs the
// repository and use cases, so it works against both the live database and
// the in-memory fixture provider.
type PublicHandler struct {
	repo         domain.Repository
	availability *booking.GetAvailability
	create       *booking.CreateBooking
}

func NewPublicHandler(
	repo domain.Repository,
	availability *booking.GetAvailability,
	create *booking.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		repo:         repo,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Prepaid     bool   `json:"prepaid"`
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	biz, err := h.repo.GetBusinessBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	filter := domain.ServiceFilter{
		Category: strings.TrimSpace(strings.ToLower(c.Query("category"))),
		Query:    strings.TrimSpace(strings.ToLower(c.Query("query"))),
		Sort:     strings.TrimSpace(c.Query("sort")),
	}

	services, err := h.repo.ListActiveServices(c.Request.Context(), biz.ID, filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": biz,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	biz, err := h.repo.GetBusinessBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(biz.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	result, err := h.availability.Execute(
		c.Request.Context(),
		booking.AvailabilityInput{
			BusinessID: biz.ID,
			ServiceID:  uint(serviceID),
			Date:       date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Service not found or inactive.")
			return
		}
		httperr.Internal(c, "availability_failed", "Could not compute available times.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": result.Slots,
		"staff": result.Staff,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	biz, err := h.repo.GetBusinessBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	out, err := h.create.Execute(
		c.Request.Context(),
		booking.CreateBookingInput{
			BusinessID:  biz.ID,
			ServiceID:   req.ServiceID,
			EmployeeID:  req.EmployeeID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			Date:        req.Date,
			Time:        req.Time,
			Prepaid:     req.Prepaid,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}
