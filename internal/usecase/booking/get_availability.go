package booking

import (
	"context"
	"time"

	"github.com/salonflow/booking-api/internal/domain/availability"
	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
)

type AvailabilityInput struct {
	BusinessID uint
	ServiceID  uint
	Date       time.Time
}

type StaffAvailability struct {
	EmployeeID     uint     `json:"employee_id"`
	Name           string   `json:"name"`
	PhotoURL       string   `json:"photo_url,omitempty"`
	AvailableSlots []string `json:"available_slots"`
}

type AvailabilityResult struct {
	Slots []string            `json:"slots"`
	Staff []StaffAvailability `json:"staff"`
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	employees, err := uc.repo.ListEmployeesForService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	schedules, err := uc.repo.ListSchedules(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListBookingsForDate(ctx, in.BusinessID, in.Date)
	if err != nil {
		return nil, err
	}

	day := availability.Build(availability.Input{
		Date:                   in.Date,
		Schedules:              schedules,
		Bookings:               bookings,
		Employees:              employees,
		ServiceDurationMinutes: svc.DurationMinutes,
	})

	result := &AvailabilityResult{
		Slots: day.Slots,
		Staff: make([]StaffAvailability, 0, len(employees)),
	}

	for _, e := range employees {
		result.Staff = append(result.Staff, StaffAvailability{
			EmployeeID:     e.ID,
			Name:           e.Name,
			PhotoURL:       e.PhotoURL,
			AvailableSlots: day.AvailableSlots(e.ID),
		})
	}

	return result, nil
}
