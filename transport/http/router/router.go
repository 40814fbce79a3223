package router

import (
	"net/http"

	"hotel/config"
	_ "hotel/docs" //nolint:revive
	"hotel/infras/metrics"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/guest"
	"hotel/internal/handlers/health"
	"hotel/internal/handlers/room"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health  health.Handler
	Room    room.Handler
	Guest   guest.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	if r.Config.App.CORS.Enable {
		router.Use(r.cors())
	}

	metrics.Register()
	router.Handle("/metrics", promhttp.Handler())

	if r.Config.Server.Env != constant.ServerEnvProduction {
		router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Middleware.Tracing)
		routerGroup.Use(r.Middleware.Metrics)
		routerGroup.Use(r.Middleware.Actor)
		routerGroup.Use(r.Middleware.RateLimit())

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func (r *Router) cors() func(next http.Handler) http.Handler {
	corsConfig := r.Config.App.CORS

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     appMiddleware,
		Config:         cfg,
	}
}
