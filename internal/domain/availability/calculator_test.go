package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salonflow/booking-api/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func businessDay(dow int, start, end string) models.Schedule {
	return models.Schedule{BusinessID: 1, DayOfWeek: dow, StartTime: start, EndTime: end, IsAvailable: true}
}

func employeeDay(id uint, dow int, start, end string, available bool) models.Schedule {
	return models.Schedule{BusinessID: 1, EmployeeID: uintPtr(id), DayOfWeek: dow, StartTime: start, EndTime: end, IsAvailable: available}
}

func bookingAt(employeeID uint, t string, status string, durationMin int) models.Booking {
	return models.Booking{
		BusinessID: 1,
		EmployeeID: employeeID,
		BookingTime: t,
		Status:      status,
		Service:     models.Service{DurationMinutes: durationMin},
	}
}

var (
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // weekday 1
	sunday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) // weekday 0
)

func TestBuild_FullDaySlotList(t *testing.T) {
	day := Build(Input{
		Date:      monday,
		Schedules: []models.Schedule{businessDay(1, "09:00", "17:00")},
	})

	assert.Len(t, day.Slots, 16)
	assert.Equal(t, "09:00", day.Slots[0])
	assert.Equal(t, "16:30", day.Slots[15])
	for _, s := range day.Slots {
		assert.GreaterOrEqual(t, s, "09:00")
		assert.Less(t, s, "17:00")
	}
}

func TestBuild_ClosedDay(t *testing.T) {
	cases := []struct {
		name      string
		schedules []models.Schedule
	}{
		{"no schedule row", nil},
		{"row for another weekday", []models.Schedule{businessDay(3, "09:00", "17:00")}},
		{"row flagged unavailable", []models.Schedule{{BusinessID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: false}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day := Build(Input{Date: monday, Schedules: tc.schedules})
			assert.Empty(t, day.Slots)
		})
	}
}

func TestBuild_EmployeeFallsBackToBusinessHours(t *testing.T) {
	day := Build(Input{
		Date:      monday,
		Schedules: []models.Schedule{businessDay(1, "09:00", "17:00")},
		Employees: []models.Employee{{ID: 7}},
	})

	assert.Equal(t, day.Slots, day.AvailableSlots(7))
}

func TestBuild_EmployeeOverrideNarrowsWindow(t *testing.T) {
	day := Build(Input{
		Date: monday,
		Schedules: []models.Schedule{
			businessDay(1, "09:00", "17:00"),
			employeeDay(7, 1, "12:00", "15:00", true),
		},
		Employees: []models.Employee{{ID: 7}},
	})

	assert.Len(t, day.Slots, 16)
	assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30", "14:00", "14:30"}, day.AvailableSlots(7))
}

func TestBuild_EmployeeOverrideDayOff(t *testing.T) {
	day := Build(Input{
		Date: monday,
		Schedules: []models.Schedule{
			businessDay(1, "09:00", "17:00"),
			employeeDay(7, 1, "", "", false),
		},
		Employees: []models.Employee{{ID: 7}, {ID: 8}},
	})

	assert.Empty(t, day.AvailableSlots(7))
	assert.Equal(t, day.Slots, day.AvailableSlots(8))
}

func TestBuild_BookingBlocksOnlyThatEmployee(t *testing.T) {
	day := Build(Input{
		Date:      monday,
		Schedules: []models.Schedule{businessDay(1, "09:00", "17:00")},
		Employees: []models.Employee{{ID: 7}, {ID: 8}},
		Bookings:  []models.Booking{bookingAt(7, "10:00", "pending", 30)},
	})

	assert.False(t, day.IsAvailable(7, "10:00"))
	assert.True(t, day.IsAvailable(8, "10:00"))
	assert.True(t, day.IsAvailable(7, "10:30"))
}

func TestBuild_CancelledBookingFreesSlot(t *testing.T) {
	day := Build(Input{
		Date:      monday,
		Schedules: []models.Schedule{businessDay(1, "09:00", "17:00")},
		Employees: []models.Employee{{ID: 7}},
		Bookings:  []models.Booking{bookingAt(7, "10:00", "cancelled", 30)},
	})

	assert.True(t, day.IsAvailable(7, "10:00"))
}

func TestBuild_NoShowStillBlocksSlot(t *testing.T) {
	day := Build(Input{
		Date:      monday,
		Schedules: []models.Schedule{businessDay(1, "09:00", "17:00")},
		Employees: []models.Employee{{ID: 7}},
		Bookings:  []models.Booking{bookingAt(7, "10:00", "no_show", 30)},
	})

	assert.False(t, day.IsAvailable(7, "10:00"))
}

func TestBuild_Deterministic(t *testing.T) {
	in := Input{
		Date: monday,
		Schedules: []models.Schedule{
			businessDay(1, "09:00", "17:00"),
			employeeDay(7, 1, "10:00", "16:00", true),
		},
		Employees: []models.Employee{{ID: 7}},
		Bookings:  []models.Booking{bookingAt(7, "11:00", "confirmed", 60)},
	}

	first := Build(in)
	second := Build(in)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, first.AvailableSlots(7), second.AvailableSlots(7))
}

// Scenario from the booking flow: Sunday 09:00-14:00, no override for the
// employee, one active booking at 10:00.
func TestBuild_SundayScenario(t *testing.T) {
	day := Build(Input{
		Date:      sunday,
		Schedules: []models.Schedule{businessDay(0, "09:00", "14:00")},
		Employees: []models.Employee{{ID: 3}},
		Bookings:  []models.Booking{bookingAt(3, "10:00", "confirmed", 30)},
	})

	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30", "13:00", "13:30"}
	assert.Equal(t, want, day.Slots)

	for _, s := range want {
		if s == "10:00" {
			assert.False(t, day.IsAvailable(3, s))
		} else {
			assert.True(t, day.IsAvailable(3, s), "slot %s", s)
		}
	}
}

func TestSlotSpan(t *testing.T) {
	cases := map[int]int{0: 1, 15: 1, 30: 1, 45: 2, 60: 2, 90: 3, 91: 4}
	for duration, want := range cases {
		assert.Equal(t, want, SlotSpan(duration), "duration %d", duration)
	}
}

// A 90-minute request must find three consecutive free slots inside the
// window; a 60-minute existing booking occupies two.
func TestBuild_DurationBlocking(t *testing.T) {
	day := Build(Input{
		Date:                   monday,
		Schedules:              []models.Schedule{businessDay(1, "09:00", "17:00")},
		Employees:              []models.Employee{{ID: 7}},
		Bookings:               []models.Booking{bookingAt(7, "10:00", "confirmed", 60)},
		ServiceDurationMinutes: 90,
	})

	assert.False(t, day.IsAvailable(7, "09:00")) // would overlap 10:00
	assert.False(t, day.IsAvailable(7, "09:30"))
	assert.False(t, day.IsAvailable(7, "10:00"))
	assert.False(t, day.IsAvailable(7, "10:30"))
	assert.True(t, day.IsAvailable(7, "11:00"))
	assert.True(t, day.IsAvailable(7, "15:30")) // 15:30+90 = 17:00, fits exactly
	assert.False(t, day.IsAvailable(7, "16:00")) // would run past closing
}

func TestParseClock(t *testing.T) {
	m, ok := ParseClock("09:30")
	assert.True(t, ok)
	assert.Equal(t, 570, m)

	for _, bad := range []string{"9:30", "09:60", "24:00", "09-30", "", "ab:cd"} {
		_, ok := ParseClock(bad)
		assert.False(t, ok, "input %q", bad)
	}

	assert.Equal(t, "07:05", Clock(425))
	assert.True(t, OnGrid("10:30"))
	assert.False(t, OnGrid("10:15"))
}
