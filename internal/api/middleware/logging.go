package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
}

// AccessLog пишет строку лога на каждый запрос вместе с X-Request-ID
func AccessLog(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			id, _ := GetRequestID(r.Context())
			logger.Info("[REQ] id=%s %s %s status=%d dur=%s",
				id, r.Method, r.URL.RequestURI(), rec.status, time.Since(start))
		})
	}
}
