package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflow/booking-api/internal/httpresp"
	"github.com/salonflow/booking-api/internal/middleware"
	"github.com/salonflow/booking-api/internal/models"
)

// ClientsHandler reports on the clients a business has served. Client
// identity lives inline on bookings, keyed by phone number, so the listing
// is an aggregation over the bookings table.
type ClientsHandler struct {
	db *gorm.DB
}

func NewClientsHandler(db *gorm.DB) *ClientsHandler {
	return &ClientsHandler{db: db}
}

type ClientSummary struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Bookings    int64  `json:"bookings"`
	LastVisit   string `json:"last_visit"`
}

// ======================================================
// LIST CLIENTS
// ======================================================

func (h *ClientsHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Model(&models.Booking{}).
		Select(
			"client_name, client_phone, MAX(client_email) AS client_email, " +
				"COUNT(*) AS bookings, " +
				"TO_CHAR(MAX(booking_date), 'YYYY-MM-DD') AS last_visit",
		).
		Where("business_id = ? AND status <> ?", businessID, "cancelled").
		Group("client_name, client_phone")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(client_name) LIKE ? OR client_phone LIKE ? OR LOWER(client_email) LIKE ?",
			like, like, like,
		)
	}

	var clients []ClientSummary
	if err := q.
		Order("last_visit DESC").
		Scan(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CLIENT HISTORY
// ======================================================

func (h *ClientsHandler) History(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_phone"})
		return
	}

	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Preload("Employee").
		Where("business_id = ? AND client_phone = ?", businessID, phone).
		Order("booking_date DESC, booking_time DESC").
		Find(&bookings).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_history"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
