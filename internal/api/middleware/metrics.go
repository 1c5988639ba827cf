package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/evelone226/salon-appointment-service/pkg/metrics"
)

// statusWriter перехватывает код ответа для метрик
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Metrics снимает количество и длительность HTTP запросов.
// В качестве path используется шаблон маршрута mux, а не фактический URL,
// чтобы не плодить кардинальность по идентификаторам
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			m.ObserveHTTPRequest(r.Method, path, sw.status, time.Since(start))
		})
	}
}
