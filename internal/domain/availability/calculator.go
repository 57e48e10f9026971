package availability

import (
	"time"

	"github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/models"
)

// SlotMinutes is the slot granularity. Fixed policy, not configurable.
const SlotMinutes = 30

// SlotSpan is the number of consecutive slots a service of the given
// duration occupies: ceil(duration/30), minimum one. A 90-minute service
// takes its start slot plus the next two.
func SlotSpan(durationMinutes int) int {
	if durationMinutes <= SlotMinutes {
		return 1
	}
	return (durationMinutes + SlotMinutes - 1) / SlotMinutes
}

// Input is a snapshot of everything the calculator needs for one date.
// Pure data in, no I/O: callers load it from whichever repository they use.
type Input struct {
	Date time.Time

	// Schedules holds every weekly row for the business, business-wide and
	// per-employee; the calculator picks the rows matching Date's weekday.
	Schedules []models.Schedule

	// Bookings are the non-cancelled bookings already placed on Date, with
	// Service populated so their duration is known.
	Bookings []models.Booking

	// Employees are the candidates able to perform the requested service.
	Employees []models.Employee

	// ServiceDurationMinutes is the duration of the service being booked.
	// Zero means a single slot.
	ServiceDurationMinutes int
}

type window struct {
	start int
	end   int
}

// Day is the computed availability for one date: the ordered generic slot
// list plus a per-employee takeable predicate.
type Day struct {
	Slots []string

	span    int
	windows map[uint]window
	busy    map[uint]map[int]bool
}

// Build derives the offerable slots for the input date. No business-wide
// schedule row, or one flagged unavailable, yields an empty slot list:
// a closed day, not an error.
func Build(in Input) Day {
	day := Day{
		Slots:   []string{},
		span:    SlotSpan(in.ServiceDurationMinutes),
		windows: make(map[uint]window),
		busy:    make(map[uint]map[int]bool),
	}

	dow := int(in.Date.Weekday())

	base, ok := baseSchedule(in.Schedules, dow)
	if !ok {
		return day
	}

	start, okS := ParseClock(base.StartTime)
	end, okE := ParseClock(base.EndTime)
	if !okS || !okE || start >= end {
		return day
	}

	for m := start; m < end; m += SlotMinutes {
		day.Slots = append(day.Slots, Clock(m))
	}

	for _, e := range in.Employees {
		if w, ok := employeeWindow(in.Schedules, dow, e.ID, window{start, end}); ok {
			day.windows[e.ID] = w
		}
	}

	for _, b := range in.Bookings {
		if !booking.BlocksSlot(booking.Status(b.Status)) {
			continue
		}
		t, ok := ParseClock(b.BookingTime)
		if !ok {
			continue
		}
		if day.busy[b.EmployeeID] == nil {
			day.busy[b.EmployeeID] = make(map[int]bool)
		}
		span := SlotSpan(b.Service.DurationMinutes)
		for i := 0; i < span; i++ {
			day.busy[b.EmployeeID][t+i*SlotMinutes] = true
		}
	}

	return day
}

// IsAvailable reports whether the employee can take a booking starting at
// slot: the whole requested span must sit inside the employee's resolved
// window and cross no occupied slot.
func (d Day) IsAvailable(employeeID uint, slot string) bool {
	t, ok := ParseClock(slot)
	if !ok {
		return false
	}

	w, ok := d.windows[employeeID]
	if !ok {
		return false
	}

	if t < w.start || t+d.span*SlotMinutes > w.end {
		return false
	}

	for i := 0; i < d.span; i++ {
		if d.busy[employeeID][t+i*SlotMinutes] {
			return false
		}
	}

	return true
}

// AvailableSlots filters the day's slot list down to the ones the employee
// can take, preserving chronological order.
func (d Day) AvailableSlots(employeeID uint) []string {
	out := make([]string, 0, len(d.Slots))
	for _, s := range d.Slots {
		if d.IsAvailable(employeeID, s) {
			out = append(out, s)
		}
	}
	return out
}

// baseSchedule finds the business-wide row for the weekday.
func baseSchedule(schedules []models.Schedule, dow int) (models.Schedule, bool) {
	for _, s := range schedules {
		if s.EmployeeID == nil && s.DayOfWeek == dow && s.IsAvailable {
			return s, true
		}
	}
	return models.Schedule{}, false
}

// employeeWindow resolves an employee's hours for the weekday: an
// employee-specific row overrides the business-wide one, including turning
// the day off; with no override the business window applies as-is.
func employeeWindow(schedules []models.Schedule, dow int, employeeID uint, base window) (window, bool) {
	for _, s := range schedules {
		if s.EmployeeID == nil || *s.EmployeeID != employeeID || s.DayOfWeek != dow {
			continue
		}
		if !s.IsAvailable {
			return window{}, false
		}
		start, okS := ParseClock(s.StartTime)
		end, okE := ParseClock(s.EndTime)
		if !okS || !okE || start >= end {
			return window{}, false
		}
		return window{start, end}, true
	}
	return base, true
}
