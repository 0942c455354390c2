package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/offmind/offmind-backend/internal/observability"
)

// Metrics records request counts and latencies by matched route. Unmatched
// requests are grouped under "unmatched" to bound label cardinality.
func Metrics(c *observability.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			route := routePattern(r)
			if route == "" {
				route = "unmatched"
			}
			c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
