// Package middleware holds the chi middleware shared by every route.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

// Logger logs one line per request with its status and duration.
func Logger(appLogger *logger.Logger) func(http.Handler) http.Handler {
	log := appLogger.Named("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			}
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				log.Error("Request failed", fields...)
			case ww.Status() >= http.StatusBadRequest:
				log.Warn("Request rejected", fields...)
			default:
				log.Info("Request served", fields...)
			}
		})
	}
}
