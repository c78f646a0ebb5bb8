package middleware

import (
	"net/http"
	"time"

	"github.com/barbero1999/api-turnos/pkg/logger"
	"github.com/google/uuid"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLog registra cada request con su id, método, ruta, estado y latencia.
// Si el cliente no manda X-Request-ID se genera uno.
func RequestLog(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inicio := time.Now()

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			log.Info("request",
				"request_id", requestID,
				"metodo", r.Method,
				"ruta", r.URL.Path,
				"estado", sw.status,
				"latencia", time.Since(inicio).String(),
			)
		})
	}
}
