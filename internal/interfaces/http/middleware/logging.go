package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wishwell/wishwell/internal/infrastructure/monitoring/logging"
)

// LoggingMiddleware emits one structured line per request.
type LoggingMiddleware struct {
	logger logging.Logger
}

// NewLoggingMiddleware builds the middleware.
func NewLoggingMiddleware(logger logging.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger.Named("http")}
}

// Handler wraps the response writer to capture the status code and logs
// after the handler returns.
func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		fields := []logging.Field{
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Int("bytes", ww.BytesWritten()),
			logging.Duration("elapsed", time.Since(start)),
			logging.String("remote", r.RemoteAddr),
		}
		if reqID := chimw.GetReqID(r.Context()); reqID != "" {
			fields = append(fields, logging.String("request_id", reqID))
		}

		switch {
		case ww.Status() >= 500:
			m.logger.Error("request", fields...)
		case ww.Status() >= 400:
			m.logger.Warn("request", fields...)
		default:
			m.logger.Info("request", fields...)
		}
	})
}
