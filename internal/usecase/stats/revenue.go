package stats

import (
	"context"
	"time"

	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/domain/revenue"
)

type GetRevenue struct {
	repo domain.Repository
}

func NewGetRevenue(repo domain.Repository) *GetRevenue {
	return &GetRevenue{repo: repo}
}

func (uc *GetRevenue) Execute(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
	filter domain.RangeFilter,
) (revenue.Summary, error) {

	bookings, err := uc.repo.ListBookingsForRange(ctx, businessID, from, to, filter)
	if err != nil {
		return revenue.Summary{}, err
	}

	return revenue.Summarize(bookings), nil
}
