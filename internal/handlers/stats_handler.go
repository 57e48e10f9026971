package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/salonflow/booking-api/internal/domain/booking"
	"github.com/salonflow/booking-api/internal/httperr"
	"github.com/salonflow/booking-api/internal/middleware"
	"github.com/salonflow/booking-api/internal/timezone"
	"github.com/salonflow/booking-api/internal/usecase/stats"
)

type StatsHandler struct {
	repo    domain.Repository
	revenue *stats.GetRevenue
}

func NewStatsHandler(repo domain.Repository, revenue *stats.GetRevenue) *StatsHandler {
	return &StatsHandler{repo: repo, revenue: revenue}
}

// Revenue summarizes booking revenue over a date range, defaulting to the
// current month in the business timezone.
func (h *StatsHandler) Revenue(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "business_not_found", "Business not found.")
		return
	}

	loc := timezone.Location(biz.Timezone)
	now := timezone.NowIn(biz.Timezone)

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, -1)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Invalid from date.")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Invalid to date.")
			return
		}
		to = parsed
	}
	if to.Before(from) {
		httperr.BadRequest(c, "invalid_range", "Invalid date range.")
		return
	}

	summary, err := h.revenue.Execute(c.Request.Context(), businessID, from, to, parseRangeFilter(c))
	if err != nil {
		httperr.Internal(c, "revenue_failed", "Could not compute revenue.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":    from.Format("2006-01-02"),
		"to":      to.Format("2006-01-02"),
		"summary": summary,
	})
}
