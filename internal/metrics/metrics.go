package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "barberpro"

// Resultados de uma tentativa de reserva.
const (
	BookingCreated  = "created"
	BookingConflict = "conflict"
	BookingRejected = "rejected"
	BookingFailed   = "failed"
)

// Metrics agrupa os coletores da aplicação. Todos os métodos aceitam
// receptor nil, então quem não quer métricas passa nil.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	bookings     *prometheus.CounterVec
	emails       *prometheus.CounterVec
	emailDropped prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking submissions by result.",
		}, []string{"result"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Transactional emails by kind and result.",
		}, []string{"kind", "result"}),
		emailDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_dropped_total",
			Help:      "Emails dropped because the send queue was full.",
		}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.bookings, m.emails, m.emailDropped)
	return m
}

func (m *Metrics) Booking(result string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(result).Inc()
}

func (m *Metrics) Email(kind string, err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.emails.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) EmailDropped() {
	if m == nil {
		return
	}
	m.emailDropped.Inc()
}

// Middleware registra contagem e latência por rota (template do gin, não a URL crua).
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		m.httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
