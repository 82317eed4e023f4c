package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics owns the Prometheus registry and every collector the service exports
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	StoreRecords    *prometheus.GaugeVec
	Notifications   *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusnav_store_operations_total",
				Help: "Loads and saves against CSV tables",
			},
			[]string{"file", "op", "result"},
		),
		StoreDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campusnav_store_operation_duration_seconds",
				Help:    "Duration of CSV table loads and saves",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"file", "op"},
		),
		StoreRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "campusnav_store_records",
				Help: "Number of records seen in the last load or save of a table",
			},
			[]string{"file"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campusnav_notifications_total",
				Help: "Notifications appended by the notifier",
			},
			[]string{"result"},
		),
	}

	m.Registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.StoreOperations,
		m.StoreDuration,
		m.StoreRecords,
		m.Notifications,
	)

	return m
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveStore implements storage.Observer
func (m *Metrics) ObserveStore(file, op string, records int, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	} else {
		m.StoreRecords.WithLabelValues(file).Set(float64(records))
	}
	m.StoreOperations.WithLabelValues(file, op, result).Inc()
	m.StoreDuration.WithLabelValues(file, op).Observe(duration.Seconds())
}

// ObserveNotification counts an attempted notification
func (m *Metrics) ObserveNotification(err error) {
	if err != nil {
		m.Notifications.WithLabelValues("error").Inc()
		return
	}
	m.Notifications.WithLabelValues("ok").Inc()
}
