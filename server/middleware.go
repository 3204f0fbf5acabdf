package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/kasuboski/gapz/pkg/logger"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"

// LogMiddleware attaches a request scoped logger to the context and logs each request once it's served
func (s Server) LogMiddleware() mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			w.Header().Set(requestIDHeader, id)

			log := s.baseLogger.With(
				zap.String("request_path", r.URL.Path),
				zap.String("method", r.Method),
				zap.String("id", id),
			)

			start := time.Now()
			h.ServeHTTP(w, r.WithContext(logger.WithCtx(r.Context(), log)))
			log.Debugw("served request", zap.Duration("elapsed", time.Since(start)))
		})
	}
}
