package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonflow/booking-api/internal/audit"
	"github.com/salonflow/booking-api/internal/domain/availability"
	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/models"
	"github.com/salonflow/booking-api/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	BusinessID uint
	ServiceID  uint
	EmployeeID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date string // YYYY-MM-DD
	Time string // HH:MM

	Prepaid bool
	Notes   string
}

type CreateBookingOutput struct {
	Booking    *models.Booking `json:"booking"`
	PaymentURL string          `json:"payment_url,omitempty"`
}

// ConfirmationSender delivers the client-facing confirmation. Implementations
// must not block the request path.
type ConfirmationSender interface {
	SendBookingConfirmation(b *models.Booking, biz *models.Business)
}

// PaymentProvider opens a checkout for prepaid bookings, returning a payment
// reference and the URL the client finishes the payment at.
type PaymentProvider interface {
	CreatePreference(ctx context.Context, b *models.Booking, svc *models.Service, biz *models.Business) (ref string, initPoint string, err error)
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	mailer   ConfirmationSender
	payments PaymentProvider
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	mailer ConfirmationSender,
	payments PaymentProvider,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		mailer:   mailer,
		payments: payments,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingOutput, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	// date and slot time in the business timezone
	loc := timezone.Location(biz.Timezone)

	if !availability.OnGrid(in.Time) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	start, _ := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)

	minAdvance := biz.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := timezone.NowIn(biz.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	employees, err := uc.repo.ListEmployeesForService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	assigned := false
	for _, e := range employees {
		if e.ID == in.EmployeeID {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil, httperr.ErrBusiness("employee_not_available")
	}

	// Fresh availability snapshot. The unique index remains the backstop if
	// another session books the same slot between this check and the insert.
	schedules, err := uc.repo.ListSchedules(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.ListBookingsForDate(ctx, in.BusinessID, date)
	if err != nil {
		return nil, err
	}

	day := availability.Build(availability.Input{
		Date:                   date,
		Schedules:              schedules,
		Bookings:               existing,
		Employees:              employees,
		ServiceDurationMinutes: svc.DurationMinutes,
	})

	offered := false
	for _, s := range day.Slots {
		if s == in.Time {
			offered = true
			break
		}
	}
	if !offered {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	if !day.IsAvailable(in.EmployeeID, in.Time) {
		return nil, httperr.ErrBusiness("slot_taken")
	}

	b := &models.Booking{
		Reference:   uuid.NewString(),
		BusinessID:  in.BusinessID,
		ServiceID:   svc.ID,
		EmployeeID:  in.EmployeeID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientEmail: in.ClientEmail,
		BookingDate: date,
		BookingTime: in.Time,
		Status:      string(domain.InitialStatus()),
		IsPrepaid:   in.Prepaid,
		Notes:       in.Notes,
	}

	var paymentURL string
	if in.Prepaid && uc.payments != nil {
		ref, initPoint, err := uc.payments.CreatePreference(ctx, b, svc, biz)
		if err != nil {
			return nil, httperr.ErrBusiness("payment_failed")
		}
		b.PaymentRef = ref
		paymentURL = initPoint
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		Action:     "booking_created",
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	if uc.mailer != nil && b.ClientEmail != "" {
		b.Service = *svc
		uc.mailer.SendBookingConfirmation(b, biz)
	}

	return &CreateBookingOutput{Booking: b, PaymentURL: paymentURL}, nil
}
