package server

import (
	"context"
	"net/http"
	"time"

	"finsight/insights/internal/logging"

	"github.com/go-chi/chi/v5/middleware"
)

type loggerKey struct{}

// RequestLogger attaches a request-scoped logger to the context and logs each
// completed request with its status and duration.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			reqLogger := logger.WithFields(
				logging.F(logging.FieldMethod, req.Method),
				logging.F(logging.FieldPath, req.URL.Path),
				logging.F(logging.FieldRemoteAddr, req.RemoteAddr),
				logging.F(logging.FieldRequestID, middleware.GetReqID(req.Context())),
			)

			ctx := context.WithValue(req.Context(), loggerKey{}, reqLogger)
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

			next.ServeHTTP(ww, req.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLogger.Info("request completed",
				logging.F(logging.FieldStatus, status),
				logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
		})
	}
}

// LoggerFromContext returns the request logger, or a discarding logger outside a request.
func LoggerFromContext(ctx context.Context) logging.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logging.Logger); ok {
		return l
	}
	return logging.NewDiscardLogger()
}
