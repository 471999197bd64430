package api

import (
	"net/http"
	"parcel-delivery-sim/internal/services"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors served on /metrics. Each router gets its own
// registry so several can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	fleetMileage   prometheus.Gauge
	deliveredTotal prometheus.Gauge
	vehicleMileage *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parcelsim_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parcelsim_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		fleetMileage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parcelsim_fleet_mileage",
			Help: "Total distance driven by the fleet in the finished run.",
		}),
		deliveredTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parcelsim_parcels_delivered",
			Help: "Parcels with a recorded delivery time.",
		}),
		vehicleMileage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parcelsim_vehicle_mileage",
			Help: "Distance driven per vehicle.",
		}, []string{"vehicle"}),
	}

	m.Registry.MustRegister(m.requests, m.duration, m.fleetMileage, m.deliveredTotal, m.vehicleMileage)
	return m
}

// ObserveRun sets the run gauges from a finished simulation.
func (m *Metrics) ObserveRun(q *services.QueryService) {
	m.fleetMileage.Set(q.TotalMileage())
	for _, id := range q.VehicleIDs() {
		miles, _ := q.VehicleMileage(id)
		m.vehicleMileage.WithLabelValues(strconv.Itoa(id)).Set(miles)
	}

	delivered := 0
	for _, p := range q.Store.All() {
		if p.Delivered() {
			delivered++
		}
	}
	m.deliveredTotal.Set(float64(delivered))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(route, method string, status int, dur time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(dur.Seconds())
}
