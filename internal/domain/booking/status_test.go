package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCompleted},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusNoShow},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
	}
	for _, tc := range allowed {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusConfirmed},
		{StatusNoShow, StatusCompleted},
		{StatusConfirmed, StatusPending},
	}
	for _, tc := range denied {
		err := CanTransition(tc.from, tc.to)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "%s -> %s", tc.from, tc.to)
	}
}

func TestCancelStampsTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	assert.NoError(t, Cancel(b, now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	if assert.NotNil(t, b.CancelledAt) {
		assert.Equal(t, now, *b.CancelledAt)
	}

	// terminal: a second cancel is rejected
	assert.Error(t, Cancel(b, now))
}

func TestCompleteStampsTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusPending)}

	assert.NoError(t, Complete(b, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	if assert.NotNil(t, b.CompletedAt) {
		assert.Equal(t, now, *b.CompletedAt)
	}
}

func TestTransitionDispatch(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusPending)}
	assert.NoError(t, Transition(b, StatusConfirmed, now))
	assert.NoError(t, Transition(b, StatusNoShow, now))
	assert.Error(t, Transition(b, StatusCompleted, now))
}

func TestBlocksSlot(t *testing.T) {
	assert.True(t, BlocksSlot(StatusPending))
	assert.True(t, BlocksSlot(StatusConfirmed))
	assert.True(t, BlocksSlot(StatusCompleted))
	assert.True(t, BlocksSlot(StatusNoShow))
	assert.False(t, BlocksSlot(StatusCancelled))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(StatusNoShow))
	assert.False(t, IsValid(Status("scheduled")))
}
