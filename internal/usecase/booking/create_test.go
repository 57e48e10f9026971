package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonflow/booking-api/internal/audit"
	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/fixture"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/models"
)

type salonFixture struct {
	repo     *fixture.Repo
	business models.Business
	service  models.Service
	staff    models.Employee
	other    models.Employee
}

// a small salon open Monday 09:00-17:00, one 30-minute service, two
// employees of which only one performs it
func newSalonFixture() salonFixture {
	repo := fixture.New()

	biz := repo.SeedBusiness(models.Business{
		Name: "Test Salon", Slug: "test", Timezone: "UTC",
	})

	staff := repo.SeedEmployee(models.Employee{BusinessID: biz.ID, Name: "Dana", Active: true})
	other := repo.SeedEmployee(models.Employee{BusinessID: biz.ID, Name: "Remy", Active: true})

	svc := repo.SeedService(models.Service{
		BusinessID: biz.ID, Name: "Trim", DurationMinutes: 30, Price: 25, Active: true,
	}, staff.ID)

	repo.SeedSchedule(models.Schedule{
		BusinessID: biz.ID, DayOfWeek: 1,
		StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
	})

	return salonFixture{repo: repo, business: biz, service: svc, staff: staff, other: other}
}

func newCreateUC(repo domain.Repository) *CreateBooking {
	return NewCreateBooking(repo, audit.NewDispatcher(audit.LogSink{}), nil, nil)
}

// nextMonday returns a Monday at least a week out, so min-advance rules
// never interfere with the scenario under test.
func nextMonday() string {
	d := time.Now().UTC().AddDate(0, 0, 7)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func validInput(f salonFixture) CreateBookingInput {
	return CreateBookingInput{
		BusinessID:  f.business.ID,
		ServiceID:   f.service.ID,
		EmployeeID:  f.staff.ID,
		ClientName:  "Ava Mendel",
		ClientPhone: "+1 555 000 1111",
		Date:        nextMonday(),
		Time:        "10:00",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)

	out, err := uc.Execute(context.Background(), validInput(f))
	require.NoError(t, err)

	b := out.Booking
	assert.NotZero(t, b.ID)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, "10:00", b.BookingTime)
	assert.Empty(t, out.PaymentURL)
}

func TestCreateBooking_SlotTakenOnSecondAttempt(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)

	_, err := uc.Execute(context.Background(), validInput(f))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validInput(f))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestCreateBooking_CancelledBookingFreesSlot(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)
	statusUC := NewUpdateStatus(f.repo, audit.NewDispatcher(audit.LogSink{}))

	out, err := uc.Execute(context.Background(), validInput(f))
	require.NoError(t, err)

	_, err = statusUC.Execute(context.Background(), f.business.ID, 1, out.Booking.ID, domain.StatusCancelled)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validInput(f))
	assert.NoError(t, err)
}

func TestCreateBooking_OutsideBusinessHours(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)

	in := validInput(f)
	in.Time = "08:00"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))
}

func TestCreateBooking_ClosedDayHasNoSlots(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)

	in := validInput(f)
	d, _ := time.Parse("2006-01-02", in.Date)
	in.Date = d.AddDate(0, 0, 1).Format("2006-01-02") // Tuesday: no schedule row

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))
}

func TestCreateBooking_RejectsOffGridTime(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)

	in := validInput(f)
	in.Time = "10:15"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateBooking_RejectsPastDate(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)

	in := validInput(f)
	in.Date = time.Now().UTC().AddDate(0, 0, -14).Format("2006-01-02")
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateBooking_EmployeeMustPerformService(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)

	in := validInput(f)
	in.EmployeeID = f.other.ID
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "employee_not_available"))
}

func TestCreateBooking_UnknownService(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)

	in := validInput(f)
	in.ServiceID = 999
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := newSalonFixture()
	uc := newCreateUC(f.repo)
	statusUC := NewUpdateStatus(f.repo, audit.NewDispatcher(audit.LogSink{}))

	out, err := uc.Execute(context.Background(), validInput(f))
	require.NoError(t, err)

	b, err := statusUC.Execute(context.Background(), f.business.ID, 1, out.Booking.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", b.Status)

	b, err = statusUC.Execute(context.Background(), f.business.ID, 1, out.Booking.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "completed", b.Status)
	assert.NotNil(t, b.CompletedAt)

	// completed is terminal
	_, err = statusUC.Execute(context.Background(), f.business.ID, 1, out.Booking.ID, domain.StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestUpdateStatus_UnknownBooking(t *testing.T) {
	f := newSalonFixture()
	statusUC := NewUpdateStatus(f.repo, audit.NewDispatcher(audit.LogSink{}))

	_, err := statusUC.Execute(context.Background(), f.business.ID, 1, 42, domain.StatusConfirmed)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	f := newSalonFixture()
	statusUC := NewUpdateStatus(f.repo, audit.NewDispatcher(audit.LogSink{}))

	_, err := statusUC.Execute(context.Background(), f.business.ID, 1, 1, domain.Status("scheduled"))
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}
