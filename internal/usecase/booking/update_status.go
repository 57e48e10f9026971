package booking

import (
	"context"

	"github.com/salonflow/booking-api/internal/audit"
	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/models"
	"github.com/salonflow/booking-api/internal/timezone"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	businessID uint,
	userID uint,
	bookingID uint,
	to domain.Status,
) (*models.Booking, error) {

	if !domain.IsValid(to) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForBusiness(ctx, bookingID, businessID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(biz.Timezone)
	if err := domain.Transition(b, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "booking_" + string(to),
		Entity:     "booking",
		EntityID:   &b.ID,
	})

	return b, nil
}
