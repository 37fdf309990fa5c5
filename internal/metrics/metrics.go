// Package metrics exposes Prometheus metrics for the local server.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what request handlers report to.
type Recorder interface {
	RecordBackup(operation string, ok bool)
}

// Collector registers and updates every herflow metric.
type Collector struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	backups    *prometheus.CounterVec
	registerer prometheus.Registerer
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herflow_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "herflow_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		backups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herflow_backup_operations_total",
			Help: "Backup exports and restores by outcome.",
		}, []string{"operation", "result"}),
		registerer: reg,
	}

	reg.MustRegister(c.requests, c.latency, c.backups)
	return c
}

// ObserveStore publishes the size of the tracked collections at scrape time.
func (c *Collector) ObserveStore(counts func() (periods int, dailyLogs int)) {
	c.registerer.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "herflow_tracked_periods",
			Help: "Number of logged periods.",
		}, func() float64 {
			periods, _ := counts()
			return float64(periods)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "herflow_tracked_daily_logs",
			Help: "Number of daily logs.",
		}, func() float64 {
			_, dailyLogs := counts()
			return float64(dailyLogs)
		}),
	)
}

func (c *Collector) RecordRequest(method string, route string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordBackup(operation string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	c.backups.WithLabelValues(operation, result).Inc()
}

// Middleware records every request under its route pattern, not its raw path.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		started := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}
		c.RecordRequest(ctx.Method(), ctx.Route().Path, status, time.Since(started))
		return err
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
