package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Booking(BookingCreated)
	m.Booking(BookingCreated)
	m.Booking(BookingConflict)
	m.Email("confirmation", nil)
	m.Email("confirmation", errors.New("smtp"))
	m.EmailDropped()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues(BookingCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues(BookingConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues("confirmation", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emailDropped))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Booking(BookingCreated)
	m.Email("reminder", nil)
	m.EmailDropped()
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/barbers/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/barbers/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/barbers/:id", "GET", "204")))
}
