package booking

import (
	"context"
	"time"

	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/dto"
	"github.com/salonflow/booking-api/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) ByDate(
	ctx context.Context,
	businessID uint,
	date time.Time,
	filter domain.RangeFilter,
) ([]dto.BookingListDTO, error) {
	return uc.ByRange(ctx, businessID, date, date, filter)
}

func (uc *ListBookings) ByRange(
	ctx context.Context,
	businessID uint,
	from time.Time,
	to time.Time,
	filter domain.RangeFilter,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForRange(ctx, businessID, from, to, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toListDTO(b))
	}

	return out, nil
}

func toListDTO(b models.Booking) dto.BookingListDTO {
	return dto.BookingListDTO{
		ID:           b.ID,
		Reference:    b.Reference,
		BookingDate:  b.BookingDate.Format("2006-01-02"),
		BookingTime:  b.BookingTime,
		Status:       b.Status,
		ClientName:   b.ClientName,
		ClientPhone:  b.ClientPhone,
		ServiceName:  b.Service.Name,
		EmployeeName: b.Employee.Name,
		Price:        b.Service.Price,
		IsPrepaid:    b.IsPrepaid,
	}
}
