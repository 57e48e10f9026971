package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/models"
)

func TestSeeded_DemoBusiness(t *testing.T) {
	repo := Seeded()
	ctx := context.Background()

	biz, err := repo.GetBusinessBySlug(ctx, DemoSlug)
	require.NoError(t, err)
	assert.Equal(t, "Velvet & Shears", biz.Name)
	assert.Equal(t, "UTC", biz.Timezone)

	services, err := repo.ListActiveServices(ctx, biz.ID, domain.ServiceFilter{})
	require.NoError(t, err)
	assert.Len(t, services, 4)

	employees, err := repo.ListEmployeesForService(ctx, biz.ID, services[0].ID)
	require.NoError(t, err)
	assert.Len(t, employees, 3, "every stylist performs the haircut")

	schedules, err := repo.ListSchedules(ctx, biz.ID)
	require.NoError(t, err)

	businessDays := 0
	overrides := 0
	for _, s := range schedules {
		if s.EmployeeID == nil {
			businessDays++
		} else {
			overrides++
		}
	}
	assert.Equal(t, 6, businessDays, "open Monday through Saturday")
	assert.Equal(t, 1, overrides)
}

func TestSeeded_BookingsStayInsideOpeningHours(t *testing.T) {
	repo := Seeded()
	ctx := context.Background()

	biz, err := repo.GetBusinessBySlug(ctx, DemoSlug)
	require.NoError(t, err)

	from := time.Now().AddDate(0, 0, -7)
	to := time.Now().AddDate(0, 0, 8)
	bookings, err := repo.ListBookingsForRange(ctx, biz.ID, from, to, domain.RangeFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, bookings)

	for _, b := range bookings {
		assert.NotEqual(t, time.Sunday, b.BookingDate.Weekday(), "closed on Sundays")
		if b.BookingDate.Weekday() == time.Saturday {
			assert.GreaterOrEqual(t, b.BookingTime, "10:00")
		}
		assert.NotEmpty(t, b.Reference)
		assert.NotZero(t, b.Service.ID, "relations are filled like preloads")
		assert.NotZero(t, b.Employee.ID)
	}
}

func TestSeeded_IsDeterministic(t *testing.T) {
	ctx := context.Background()

	a, b := Seeded(), Seeded()

	from := time.Now().AddDate(0, 0, -7)
	to := time.Now().AddDate(0, 0, 8)

	bizA, _ := a.GetBusinessBySlug(ctx, DemoSlug)
	bizB, _ := b.GetBusinessBySlug(ctx, DemoSlug)

	bookingsA, err := a.ListBookingsForRange(ctx, bizA.ID, from, to, domain.RangeFilter{})
	require.NoError(t, err)
	bookingsB, err := b.ListBookingsForRange(ctx, bizB.ID, from, to, domain.RangeFilter{})
	require.NoError(t, err)

	require.Equal(t, len(bookingsA), len(bookingsB))
	for i := range bookingsA {
		assert.Equal(t, bookingsA[i].BookingDate, bookingsB[i].BookingDate)
		assert.Equal(t, bookingsA[i].BookingTime, bookingsB[i].BookingTime)
		assert.Equal(t, bookingsA[i].Status, bookingsB[i].Status)
		assert.Equal(t, bookingsA[i].EmployeeID, bookingsB[i].EmployeeID)
	}
}

func TestCreateBooking_RejectsActiveDuplicate(t *testing.T) {
	repo := New()
	ctx := context.Background()

	biz := repo.SeedBusiness(models.Business{Name: "Solo", Slug: "solo"})
	emp := repo.SeedEmployee(models.Employee{BusinessID: biz.ID, Name: "Kim", Active: true})
	svc := repo.SeedService(models.Service{BusinessID: biz.ID, Name: "Cut", DurationMinutes: 30, Active: true}, emp.ID)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := models.Booking{
		BusinessID: biz.ID, ServiceID: svc.ID, EmployeeID: emp.ID,
		BookingDate: date, BookingTime: "09:00", Status: "pending",
	}
	require.NoError(t, repo.CreateBooking(ctx, &first))

	dup := models.Booking{
		BusinessID: biz.ID, ServiceID: svc.ID, EmployeeID: emp.ID,
		BookingDate: date, BookingTime: "09:00", Status: "pending",
	}
	err := repo.CreateBooking(ctx, &dup)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	// cancelling the first frees the slot
	first.Status = "cancelled"
	require.NoError(t, repo.UpdateBooking(ctx, &first))
	assert.NoError(t, repo.CreateBooking(ctx, &dup))
}
