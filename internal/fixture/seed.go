package fixture

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonflow/booking-api/internal/models"
	"github.com/salonflow/booking-api/internal/timezone"
)

// DemoSlug is the public slug the fixture business answers to.
const DemoSlug = "demo"

// Seeded builds a repository pre-filled with a plausible demo salon: a
// catalogue, three staff members, a weekly schedule and two weeks of
// bookings spread around today. The spread is pattern-based, not random,
// so demo responses are stable across restarts.
func Seeded() *Repo {
	r := New()

	biz := r.SeedBusiness(models.Business{
		Name:     "Velvet & Shears",
		Slug:     DemoSlug,
		Phone:    "+1 555 010 2030",
		Email:    "hello@velvetshears.demo",
		Address:  "12 Rosemary Lane",
		Timezone: "UTC",
		Currency: "USD",
	})

	mia := r.SeedEmployee(models.Employee{BusinessID: biz.ID, Name: "Mia Torres", Phone: "+1 555 110 0001", Active: true})
	noa := r.SeedEmployee(models.Employee{BusinessID: biz.ID, Name: "Noa Levi", Phone: "+1 555 110 0002", Active: true})
	sam := r.SeedEmployee(models.Employee{BusinessID: biz.ID, Name: "Sam Okafor", Phone: "+1 555 110 0003", Active: true})

	haircut := r.SeedService(models.Service{
		BusinessID: biz.ID, Name: "Haircut", Description: "Wash, cut and style",
		DurationMinutes: 30, Price: 40, Active: true, Category: "hair",
	}, mia.ID, noa.ID, sam.ID)

	coloring := r.SeedService(models.Service{
		BusinessID: biz.ID, Name: "Hair Coloring", Description: "Full color or highlights",
		DurationMinutes: 90, Price: 120, Active: true, Category: "hair",
	}, mia.ID, noa.ID)

	manicure := r.SeedService(models.Service{
		BusinessID: biz.ID, Name: "Manicure", Description: "Classic manicure with polish",
		DurationMinutes: 45, Price: 35, Active: true, Category: "nails",
	}, sam.ID)

	r.SeedService(models.Service{
		BusinessID: biz.ID, Name: "Facial Treatment", Description: "Deep cleansing facial",
		DurationMinutes: 60, Price: 75, Active: true, Category: "skin",
	}, noa.ID, sam.ID)

	// Monday-Friday 09:00-18:00, Saturday 10:00-16:00, closed Sunday.
	for dow := 1; dow <= 5; dow++ {
		r.SeedSchedule(models.Schedule{
			BusinessID: biz.ID, DayOfWeek: dow,
			StartTime: "09:00", EndTime: "18:00", IsAvailable: true,
		})
	}
	r.SeedSchedule(models.Schedule{
		BusinessID: biz.ID, DayOfWeek: 6,
		StartTime: "10:00", EndTime: "16:00", IsAvailable: true,
	})

	// Noa starts late on Wednesdays.
	noaID := noa.ID
	r.SeedSchedule(models.Schedule{
		BusinessID: biz.ID, EmployeeID: &noaID, DayOfWeek: 3,
		StartTime: "12:00", EndTime: "18:00", IsAvailable: true,
	})

	seedBookings(r, biz, []models.Employee{mia, noa, sam}, []models.Service{haircut, coloring, manicure})

	return r
}

type demoVisit struct {
	time     string
	employee int // index into employees
	service  int // index into services
	prepaid  bool
}

// One repeating daily pattern; the calculator sees realistic contention
// without two fixture bookings ever colliding on a slot.
var dailyVisits = []demoVisit{
	{"09:00", 0, 0, false},
	{"10:30", 1, 1, true},
	{"14:00", 2, 2, false},
	{"16:00", 0, 0, true},
}

func seedBookings(r *Repo, biz models.Business, employees []models.Employee, services []models.Service) {
	clients := []struct{ name, phone string }{
		{"Ava Mendel", "+1 555 220 1001"},
		{"Liam Carter", "+1 555 220 1002"},
		{"Sofia Brandt", "+1 555 220 1003"},
		{"Ethan Cole", "+1 555 220 1004"},
	}

	today := timezone.Now().Truncate(24 * time.Hour)

	for offset := -6; offset <= 7; offset++ {
		date := today.AddDate(0, 0, offset)
		if date.Weekday() == time.Sunday {
			continue
		}

		for i, v := range dailyVisits {
			// thin out the pattern so days look uneven
			if (offset+i)%3 == 0 {
				continue
			}

			status := "pending"
			switch {
			case offset < 0 && i%4 == 3:
				status = "no_show"
			case offset < 0:
				status = "completed"
			case offset == 0 || i%2 == 0:
				status = "confirmed"
			}

			client := clients[(offset+6+i)%len(clients)]
			b := models.Booking{
				Reference:   uuid.NewString(),
				BusinessID:  biz.ID,
				ServiceID:   services[v.service].ID,
				EmployeeID:  employees[v.employee].ID,
				ClientName:  client.name,
				ClientPhone: client.phone,
				BookingDate: date,
				BookingTime: v.time,
				Status:      status,
				IsPrepaid:   v.prepaid,
			}

			// Saturday opens at 10:00; the 09:00 visit has no slot there
			if date.Weekday() == time.Saturday && v.time < "10:00" {
				continue
			}

			_ = r.CreateBooking(context.Background(), &b)
		}
	}
}
