package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salonflow/booking-api/internal/models"
)

func priced(status string, price float64, prepaid bool) models.Booking {
	return models.Booking{
		Status:    status,
		IsPrepaid: prepaid,
		Service:   models.Service{Price: price},
	}
}

func TestSummarize_Buckets(t *testing.T) {
	s := Summarize([]models.Booking{
		priced("completed", 100, false),
		priced("completed", 50, true), // prepaid but done: not pending anymore
		priced("pending", 80, false),
		priced("confirmed", 40, true),
		priced("cancelled", 999, true),
		priced("no_show", 70, true),
	})

	assert.Equal(t, 150.0, s.ReceivedRevenue)
	assert.Equal(t, 120.0, s.PendingRevenue)
	assert.Equal(t, 270.0, s.ExpectedRevenue)
	// confirmed prepaid (40) + no_show prepaid (70) still held
	assert.Equal(t, 110.0, s.PrepaidPendingRevenue)

	assert.Equal(t, 6, s.TotalBookings)
	assert.Equal(t, 2, s.CompletedBookings)
	assert.Equal(t, 2, s.PendingBookings)
	assert.Equal(t, 1, s.CancelledBookings)
	assert.Equal(t, 1, s.NoShowBookings)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.ExpectedRevenue)
	assert.Zero(t, s.TotalBookings)
}

func TestSummarize_CancelledNeverCounts(t *testing.T) {
	s := Summarize([]models.Booking{priced("cancelled", 500, false)})
	assert.Zero(t, s.ExpectedRevenue)
	assert.Zero(t, s.ReceivedRevenue)
	assert.Zero(t, s.PrepaidPendingRevenue)
}
