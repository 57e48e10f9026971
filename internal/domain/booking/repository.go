package booking

import (
	"context"
	"time"

	"github.com/salonflow/booking-api/internal/models"
)

// ServiceFilter narrows the public service catalogue.
type ServiceFilter struct {
	Category string
	Query    string
	Sort     string // price_asc, price_desc, duration_asc, duration_desc
}

// RangeFilter narrows booking listings for calendars and statistics.
type RangeFilter struct {
	EmployeeID *uint
	ServiceID  *uint
}

// Repository is the single data-provider contract for the booking core.
// Two implementations exist: the GORM/Postgres one (live) and the in-memory
// fixture one (demo mode); use cases never know which they got.
type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Catalogue --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	ListActiveServices(
		ctx context.Context,
		businessID uint,
		filter ServiceFilter,
	) ([]models.Service, error)

	ListEmployeesForService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) ([]models.Employee, error)

	// -------- Availability --------
	ListSchedules(
		ctx context.Context,
		businessID uint,
	) ([]models.Schedule, error)

	ListBookingsForDate(
		ctx context.Context,
		businessID uint,
		date time.Time,
	) ([]models.Booking, error)

	// -------- Booking (create / state change) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForBusiness(
		ctx context.Context,
		bookingID uint,
		businessID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listings --------
	ListBookingsForRange(
		ctx context.Context,
		businessID uint,
		from time.Time,
		to time.Time,
		filter RangeFilter,
	) ([]models.Booking, error)
}
