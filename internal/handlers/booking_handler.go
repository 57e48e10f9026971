package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/httpresp"
	"github.com/salonflow/booking-api/internal/middleware"
	"github.com/salonflow/booking-api/internal/timezone"
	"github.com/salonflow/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo     domain.Repository
	create   *booking.CreateBooking
	list     *booking.ListBookings
	status   *booking.UpdateStatus
}

func NewBookingHandler(
	repo domain.Repository,
	create *booking.CreateBooking,
	list *booking.ListBookings,
	status *booking.UpdateStatus,
) *BookingHandler {
	return &BookingHandler{
		repo:   repo,
		create: create,
		list:   list,
		status: status,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
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

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

// mapBookingError turns business-rule failures from the booking use cases
// into HTTP responses; anything unrecognized becomes a 500.
func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "The requested time is in the past or too close to now.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Service not found or inactive.")
	case httperr.IsBusiness(err, "employee_not_available"):
		httperr.BadRequest(c, "employee_not_available", "This employee does not perform the selected service.")
	case httperr.IsBusiness(err, "outside_business_hours"):
		httperr.BadRequest(c, "outside_business_hours", "The requested time is outside business hours.")
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Conflict(c, "slot_taken", "This time slot has just been taken.")
	case httperr.IsBusiness(err, "payment_failed"):
		httperr.Write(c, http.StatusBadGateway, "payment_failed", "Could not open the payment checkout.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "The booking cannot change to that status.")
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	default:
		httperr.Internal(c, "booking_failed", "Could not process the booking.")
	}
}

func parseRangeFilter(c *gin.Context) domain.RangeFilter {
	var filter domain.RangeFilter
	if raw := c.Query("employee_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			filter.EmployeeID = &v
		}
	}
	if raw := c.Query("service_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			v := uint(id)
			filter.ServiceID = &v
		}
	}
	return filter
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		BusinessID:  businessID,
		ServiceID:   req.ServiceID,
		EmployeeID:  req.EmployeeID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Time:        req.Time,
		Prepaid:     req.Prepaid,
		Notes:       req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "business_not_found", "Business not found.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(biz.Timezone))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	bookings, err := h.list.ByDate(c.Request.Context(), businessID, date, parseRangeFilter(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListByRange(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_range", "Both from and to dates are required.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "business_not_found", "Business not found.")
		return
	}

	loc := timezone.Location(biz.Timezone)
	from, errF := time.ParseInLocation("2006-01-02", fromStr, loc)
	to, errT := time.ParseInLocation("2006-01-02", toStr, loc)
	if errF != nil || errT != nil || to.Before(from) {
		httperr.BadRequest(c, "invalid_range", "Invalid date range.")
		return
	}

	bookings, err := h.list.ByRange(c.Request.Context(), businessID, from, to, parseRangeFilter(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	b, err := h.status.Execute(
		c.Request.Context(),
		businessID,
		userID,
		uint(id),
		domain.Status(req.Status),
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
