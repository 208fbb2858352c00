package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthAttempts counts signup/signin attempts by outcome (ok, conflict, invalid, unauthorized, error).
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of signup and signin attempts by outcome",
		},
		[]string{"op", "result"},
	)

	// MovieMutations counts successful movie writes by action (create, update, delete).
	MovieMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_mutations_total",
			Help: "Total number of successful movie writes by action",
		},
		[]string{"action"},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthAttempts, MovieMutations)
	})
}

// RecordRequest records duration and count for an HTTP request. path should be the route
// pattern, not the raw URL, to keep label cardinality bounded.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAuth increments the auth attempts counter. op is signup or signin.
func IncAuth(op, result string) {
	AuthAttempts.WithLabelValues(op, result).Inc()
}

// IncMovieMutation increments the movie writes counter for action.
func IncMovieMutation(action string) {
	MovieMutations.WithLabelValues(action).Inc()
}
