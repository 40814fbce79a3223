package health

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Status struct {
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

const (
	statusUp   = "up"
	statusDown = "down"
)

type Handler struct {
	db    *postgres.Connection
	redis *goRedis.Client
	otel  otel.Otel
}

func New(db *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return Handler{
		db:    db,
		redis: redis,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports whether the stores behind the API answer.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Status]
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	status := Status{Postgres: statusUp, Redis: statusUp}
	healthy := true

	if err := handler.db.Live(ctx); err != nil {
		log.Error().Err(err).Msg("postgres health check failed")
		scope.TraceError(err)

		status.Postgres = statusDown
		healthy = false
	}

	if err := handler.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("redis health check failed")
		scope.TraceError(err)

		status.Redis = statusDown
		healthy = false
	}

	scope.SetAttributes(map[string]any{
		"health.postgres": status.Postgres,
		"health.redis":    status.Redis,
	})

	if !healthy {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
