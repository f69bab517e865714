package httpd

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
)

// requestLogger tags each request with an X-Request-ID and logs the outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.With("request", id).Infof("%-7v %v  %v  %vms  %v", r.Method, r.URL.Path, ww.Status(), time.Since(start).Milliseconds(), r.RemoteAddr)
	})
}

// cors allows any origin. Preflight requests are answered by the individual handlers.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")

		next.ServeHTTP(w, r)
	})
}
