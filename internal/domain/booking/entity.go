package booking

import (
	"time"

	"github.com/salonflow/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusCancelled); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Confirm(b *models.Booking) error {
	if err := CanTransition(Status(b.Status), StatusConfirmed); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusCompleted); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func MarkNoShow(b *models.Booking) error {
	if err := CanTransition(Status(b.Status), StatusNoShow); err != nil {
		return err
	}

	b.Status = string(StatusNoShow)
	return nil
}

// Transition applies the requested status change, stamping the timestamps the
// terminal states carry.
func Transition(b *models.Booking, to Status, now time.Time) error {
	switch to {
	case StatusCancelled:
		return Cancel(b, now)
	case StatusConfirmed:
		return Confirm(b)
	case StatusCompleted:
		return Complete(b, now)
	case StatusNoShow:
		return MarkNoShow(b)
	default:
		return CanTransition(Status(b.Status), to)
	}
}
