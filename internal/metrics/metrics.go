// Package metrics holds the Prometheus collectors of the blog.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yatube_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "yatube_http_active_requests",
			Help: "Number of HTTP requests being served",
		},
	)

	// Blog
	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yatube_posts_created_total",
			Help: "Total number of posts created through the site",
		},
	)

	PostsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yatube_posts_updated_total",
			Help: "Total number of posts edited by their authors",
		},
	)

	PostEditsDenied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yatube_post_edits_denied_total",
			Help: "Edit attempts by users who are not the author",
		},
	)

	// Auth
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"}, // "success", "failure", "error"
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yatube_users_registered_total",
			Help: "Total number of sign-ups",
		},
	)
)

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

func RecordLogin(outcome string) {
	LoginAttempts.WithLabelValues(outcome).Inc()
}
