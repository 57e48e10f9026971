package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *BookingGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *BookingGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&biz).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

// --------------------------------------------------
// Catalogue
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) ListActiveServices(
	ctx context.Context,
	businessID uint,
	filter domain.ServiceFilter,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).
		Where("business_id = ? AND active = true", businessID)

	if filter.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}

	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	orderClause := "id ASC"
	switch filter.Sort {
	case "price_asc":
		orderClause = "price ASC"
	case "price_desc":
		orderClause = "price DESC"
	case "duration_asc":
		orderClause = "duration_minutes ASC"
	case "duration_desc":
		orderClause = "duration_minutes DESC"
	}

	var services []models.Service
	if err := q.Order(orderClause).Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

func (r *BookingGormRepository) ListEmployeesForService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) ([]models.Employee, error) {

	var employees []models.Employee
	if err := r.db.WithContext(ctx).
		Joins("JOIN service_employees se ON se.employee_id = employees.id").
		Where("se.service_id = ? AND employees.business_id = ? AND employees.active = true", serviceID, businessID).
		Order("employees.id ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}

	return employees, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListSchedules(
	ctx context.Context,
	businessID uint,
) ([]models.Schedule, error) {

	var schedules []models.Schedule
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("day_of_week ASC, employee_id ASC NULLS FIRST").
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	businessID uint,
	date time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"business_id = ? AND booking_date = ? AND status <> ?",
			businessID, date.Format("2006-01-02"), string(domain.StatusCancelled),
		).
		Order("booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (create / state change)
// --------------------------------------------------

// CreateBooking inserts one row. The partial unique index over non-cancelled
// (business, employee, date, time) tuples turns a lost race into slot_taken
// instead of a silent double-booking.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) GetBookingForBusiness(
	ctx context.Context,
	bookingID uint,
	businessID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Employee").
		Where("id = ? AND business_id = ?", bookingID, businessID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForRange(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
	filter domain.RangeFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Employee").
		Where(
			"business_id = ? AND booking_date >= ? AND booking_date <= ?",
			businessID, from.Format("2006-01-02"), to.Format("2006-01-02"),
		)

	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}

	if filter.ServiceID != nil {
		q = q.Where("service_id = ?", *filter.ServiceID)
	}

	var bookings []models.Booking
	if err := q.
		Order("booking_date ASC, booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
