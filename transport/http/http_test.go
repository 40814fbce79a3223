package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/shared/cache"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newServer(t *testing.T) *HTTP {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://frontdesk.example"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet}

	ot := mocks.NewOtel()
	appMiddleware := middleware.NewAppMiddleware(ot, cfg, cache.NewRedisCache(client, ot))

	return New(cfg, router.New(router.DomainHandlers{}, appMiddleware, cfg))
}

func TestServeHTTP_Metrics(t *testing.T) {
	server := newServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
	assert.Equal(t, ServerStateReady, server.State())
}

func TestServeHTTP_UnknownRoute(t *testing.T) {
	server := newServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeHTTP_CORS(t *testing.T) {
	server := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Origin", "https://frontdesk.example")

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, "https://frontdesk.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeHTTP_RefusesDuringShutdown(t *testing.T) {
	server := newServer(t)
	server.setup()
	server.setState(ServerStateInGracePeriod)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SERVER PREPARING TO SHUT DOWN")
}

func TestServeHTTP_SwaggerDoc(t *testing.T) {
	server := newServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/bookings/{id}/checkin")
}
