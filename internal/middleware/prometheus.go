package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/movies-api/internal/metrics"
)

// Prometheus records request duration and count labelled by chi route pattern.
// /metrics scrapes are not recorded.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)
		if r.URL.Path == "/metrics" {
			return
		}
		metrics.RecordRequest(r.Method, routePattern(r), rec.status, time.Since(start).Seconds())
	})
}
