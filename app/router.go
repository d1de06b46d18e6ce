package app

import (
	"log/slog"
	"net/http"
	"time"

	authhandlers "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/httpx"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *App) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(app.Observability.Logger))
	r.Use(middleware.Recoverer)
	r.Use(authhandlers.CORSMiddleware(app.Config.HTTP.AllowedOrigins))

	r.Get("/healthz", app.handleHealth)
	if app.Observability.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(app.Observability.Registry, promhttp.HandlerOpts{}))
	}

	app.AuthModule.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(app.AuthModule.Authenticate())
		app.ClubModule.RegisterRoutes(r)
		app.EventModule.RegisterRoutes(r)
		app.DashboardModule.RegisterRoutes(r)
	})
	return r
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := app.DB.PingContext(r.Context()); err != nil {
		app.Observability.Logger.ErrorContext(r.Context(), "Health check failed", attr.Error(err))
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "HTTP request",
				attr.String("method", r.Method),
				attr.String("path", r.URL.Path),
				attr.Int("status", ww.Status()),
				attr.String("request_id", middleware.GetReqID(r.Context())),
				attr.Duration("duration", time.Since(start)),
			)
		})
	}
}
