package fixture

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/models"
)

// Repo is the in-memory implementation of the booking repository, backing
// fixture (demo) mode. It enforces the same one-active-booking-per-slot rule
// the Postgres partial index does, so demo behavior matches live behavior.
type Repo struct {
	mu sync.RWMutex

	businesses []models.Business
	services   []models.Service
	employees  []models.Employee
	schedules  []models.Schedule
	bookings   []models.Booking

	// serviceID -> employee IDs able to perform it
	assignments map[uint][]uint

	nextID uint
}

func New() *Repo {
	return &Repo{assignments: make(map[uint][]uint), nextID: 1}
}

func (r *Repo) id() uint {
	v := r.nextID
	r.nextID++
	return v
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *Repo) SeedBusiness(b models.Business) models.Business {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == 0 {
		b.ID = r.id()
	}
	r.businesses = append(r.businesses, b)
	return b
}

func (r *Repo) SeedService(s models.Service, employeeIDs ...uint) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		s.ID = r.id()
	}
	r.services = append(r.services, s)
	r.assignments[s.ID] = append(r.assignments[s.ID], employeeIDs...)
	return s
}

func (r *Repo) AssignEmployee(serviceID, employeeID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[serviceID] = append(r.assignments[serviceID], employeeID)
}

func (r *Repo) SeedEmployee(e models.Employee) models.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == 0 {
		e.ID = r.id()
	}
	r.employees = append(r.employees, e)
	return e
}

func (r *Repo) SeedSchedule(s models.Schedule) models.Schedule {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == 0 {
		s.ID = r.id()
	}
	r.schedules = append(r.schedules, s)
	return s
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *Repo) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.businesses {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.businesses {
		if b.Slug == slug {
			out := b
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --------------------------------------------------
// Catalogue
// --------------------------------------------------

func (r *Repo) GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.services {
		if s.ID == serviceID && s.BusinessID == businessID {
			out := s
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) ListActiveServices(ctx context.Context, businessID uint, filter domain.ServiceFilter) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		if s.BusinessID != businessID || !s.Active {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(s.Category, filter.Category) {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(s.Name), q) &&
				!strings.Contains(strings.ToLower(s.Description), q) {
				continue
			}
		}
		out = append(out, s)
	}

	switch filter.Sort {
	case "price_asc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "price_desc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case "duration_asc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].DurationMinutes < out[j].DurationMinutes })
	case "duration_desc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].DurationMinutes > out[j].DurationMinutes })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}

	return out, nil
}

func (r *Repo) ListEmployeesForService(ctx context.Context, businessID, serviceID uint) ([]models.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.assignments[serviceID]
	out := make([]models.Employee, 0, len(ids))
	for _, e := range r.employees {
		if e.BusinessID != businessID || !e.Active {
			continue
		}
		for _, id := range ids {
			if e.ID == id {
				out = append(out, e)
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *Repo) ListSchedules(ctx context.Context, businessID uint) ([]models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Schedule, 0, len(r.schedules))
	for _, s := range r.schedules {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Repo) ListBookingsForDate(ctx context.Context, businessID uint, date time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.Format("2006-01-02")
	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if b.BusinessID != businessID || b.Status == string(domain.StatusCancelled) {
			continue
		}
		if b.BookingDate.Format("2006-01-02") != day {
			continue
		}
		out = append(out, r.withRelations(b))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].BookingTime < out[j].BookingTime })
	return out, nil
}

// --------------------------------------------------
// Booking (create / state change)
// --------------------------------------------------

func (r *Repo) CreateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := b.BookingDate.Format("2006-01-02")
	for _, existing := range r.bookings {
		if existing.BusinessID == b.BusinessID &&
			existing.EmployeeID == b.EmployeeID &&
			existing.BookingDate.Format("2006-01-02") == day &&
			existing.BookingTime == b.BookingTime &&
			existing.Status != string(domain.StatusCancelled) {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	if b.ID == 0 {
		b.ID = r.id()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *Repo) GetBookingForBusiness(ctx context.Context, bookingID, businessID uint) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == bookingID && b.BusinessID == businessID {
			out := r.withRelations(b)
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Repo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			updated := *b
			updated.UpdatedAt = time.Now()
			r.bookings[i] = updated
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *Repo) ListBookingsForRange(ctx context.Context, businessID uint, from, to time.Time, filter domain.RangeFilter) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fromDay := from.Format("2006-01-02")
	toDay := to.Format("2006-01-02")

	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if b.BusinessID != businessID {
			continue
		}
		day := b.BookingDate.Format("2006-01-02")
		if day < fromDay || day > toDay {
			continue
		}
		if filter.EmployeeID != nil && b.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.ServiceID != nil && b.ServiceID != *filter.ServiceID {
			continue
		}
		out = append(out, r.withRelations(b))
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].BookingDate.Format("2006-01-02"), out[j].BookingDate.Format("2006-01-02")
		if di != dj {
			return di < dj
		}
		return out[i].BookingTime < out[j].BookingTime
	})
	return out, nil
}

// withRelations fills the Service and Employee the way GORM preloads do,
// so calculator and revenue code see durations and prices in both modes.
func (r *Repo) withRelations(b models.Booking) models.Booking {
	for _, s := range r.services {
		if s.ID == b.ServiceID {
			b.Service = s
			break
		}
	}
	for _, e := range r.employees {
		if e.ID == b.EmployeeID {
			b.Employee = e
			break
		}
	}
	return b
}

// Compile-time check
var _ domain.Repository = (*Repo)(nil)
