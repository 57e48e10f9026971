package revenue

import (
	"github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/models"
)

// Summary buckets revenue over a set of bookings. Received counts completed
// work only; pending counts bookings still on the calendar; expected is the
// sum of both. Cancelled and no_show never contribute, a narrower status
// set than slot blocking, which only excludes cancelled.
type Summary struct {
	ExpectedRevenue       float64 `json:"expected_revenue"`
	ReceivedRevenue       float64 `json:"received_revenue"`
	PendingRevenue        float64 `json:"pending_revenue"`
	PrepaidPendingRevenue float64 `json:"prepaid_pending_revenue"`

	TotalBookings     int `json:"total_bookings"`
	CompletedBookings int `json:"completed_bookings"`
	PendingBookings   int `json:"pending_bookings"`
	CancelledBookings int `json:"cancelled_bookings"`
	NoShowBookings    int `json:"no_show_bookings"`
}

// Summarize aggregates the bookings it is given; filtering by date range,
// employee or service happens at the query, not here.
func Summarize(bookings []models.Booking) Summary {
	var s Summary
	s.TotalBookings = len(bookings)

	for _, b := range bookings {
		price := b.Service.Price
		status := booking.Status(b.Status)

		switch status {
		case booking.StatusCompleted:
			s.CompletedBookings++
			s.ReceivedRevenue += price
		case booking.StatusPending, booking.StatusConfirmed:
			s.PendingBookings++
			s.PendingRevenue += price
		case booking.StatusCancelled:
			s.CancelledBookings++
		case booking.StatusNoShow:
			s.NoShowBookings++
		}

		// Prepaid money is held, not earned, until the visit completes.
		if b.IsPrepaid && status != booking.StatusCompleted && status != booking.StatusCancelled {
			s.PrepaidPendingRevenue += price
		}
	}

	s.ExpectedRevenue = s.ReceivedRevenue + s.PendingRevenue
	return s
}
