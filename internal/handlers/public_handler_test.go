package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonflow/booking-api/internal/audit"
	"github.com/salonflow/booking-api/internal/fixture"
	"github.com/salonflow/booking-api/internal/usecase/booking"
)

func newDemoRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := fixture.Seeded()
	dispatcher := audit.NewDispatcher(audit.LogSink{})

	h := NewPublicHandler(
		repo,
		booking.NewGetAvailability(repo),
		booking.NewCreateBooking(repo, dispatcher, nil, nil),
	)

	r := gin.New()
	pub := r.Group("/api/public")
	{
		pub.GET("/:slug/services", h.ListServices)
		pub.GET("/:slug/availability", h.Availability)
		pub.POST("/:slug/bookings", h.CreateBooking)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

// farMonday returns a Monday beyond the seeded booking window, so tests
// start from a day with no pre-existing bookings.
func farMonday() string {
	d := time.Now().UTC().AddDate(0, 0, 10)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func TestPublicListServices(t *testing.T) {
	r := newDemoRouter()

	w, body := doJSON(t, r, http.MethodGet, "/api/public/demo/services", nil)
	require.Equal(t, http.StatusOK, w.Code)

	services := body["services"].([]any)
	assert.Len(t, services, 4)

	business := body["business"].(map[string]any)
	assert.Equal(t, "Velvet & Shears", business["name"])
}

func TestPublicListServices_UnknownSlug(t *testing.T) {
	r := newDemoRouter()

	w, _ := doJSON(t, r, http.MethodGet, "/api/public/nope/services", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicListServices_CategoryFilter(t *testing.T) {
	r := newDemoRouter()

	w, body := doJSON(t, r, http.MethodGet, "/api/public/demo/services?category=nails", nil)
	require.Equal(t, http.StatusOK, w.Code)

	services := body["services"].([]any)
	require.Len(t, services, 1)
	first := services[0].(map[string]any)
	assert.Equal(t, "Manicure", first["name"])
}

func TestPublicAvailability(t *testing.T) {
	r := newDemoRouter()

	_, listBody := doJSON(t, r, http.MethodGet, "/api/public/demo/services", nil)
	services := listBody["services"].([]any)
	serviceID := int(services[0].(map[string]any)["id"].(float64))

	path := fmt.Sprintf("/api/public/demo/availability?date=%s&service_id=%d", farMonday(), serviceID)
	w, body := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	slots := body["slots"].([]any)
	// Monday 09:00-18:00 yields 18 half-hour slots
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1])

	staff := body["staff"].([]any)
	require.Len(t, staff, 3)
	for _, s := range staff {
		member := s.(map[string]any)
		available := member["available_slots"].([]any)
		// empty day far in the future: everyone is fully free
		assert.Len(t, available, 18)
	}
}

func TestPublicAvailability_MissingParams(t *testing.T) {
	r := newDemoRouter()

	w, _ := doJSON(t, r, http.MethodGet, "/api/public/demo/availability?date=2026-03-02", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicCreateBooking(t *testing.T) {
	r := newDemoRouter()

	_, listBody := doJSON(t, r, http.MethodGet, "/api/public/demo/services", nil)
	services := listBody["services"].([]any)
	serviceID := int(services[0].(map[string]any)["id"].(float64))

	date := farMonday()

	path := fmt.Sprintf("/api/public/demo/availability?date=%s&service_id=%d", date, serviceID)
	_, availBody := doJSON(t, r, http.MethodGet, path, nil)
	staff := availBody["staff"].([]any)
	employeeID := int(staff[0].(map[string]any)["employee_id"].(float64))

	payload := gin.H{
		"client_name":  "Jordan Reyes",
		"client_phone": "+1 555 330 2001",
		"service_id":   serviceID,
		"employee_id":  employeeID,
		"date":         date,
		"time":         "09:30",
	}

	w, body := doJSON(t, r, http.MethodPost, "/api/public/demo/bookings", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	created := body["booking"].(map[string]any)
	assert.NotEmpty(t, created["reference"])
	assert.Equal(t, "pending", created["status"])

	// same slot, same employee: rejected
	w, body = doJSON(t, r, http.MethodPost, "/api/public/demo/bookings", payload)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_taken", body["error_code"])
}

func TestPublicCreateBooking_OutsideHours(t *testing.T) {
	r := newDemoRouter()

	_, listBody := doJSON(t, r, http.MethodGet, "/api/public/demo/services", nil)
	services := listBody["services"].([]any)
	serviceID := int(services[0].(map[string]any)["id"].(float64))

	payload := gin.H{
		"client_name":  "Jordan Reyes",
		"client_phone": "+1 555 330 2001",
		"service_id":   serviceID,
		"employee_id":  2,
		"date":         farMonday(),
		"time":         "08:00",
	}

	w, body := doJSON(t, r, http.MethodPost, "/api/public/demo/bookings", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "outside_business_hours", body["error_code"])
}
