package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"hotel/transport/http/response"
)

var (
	mu     sync.Mutex
	cached http.Handler
)

// warmHandler wires the service once per instance. A failed attempt is not kept, so the next invocation retries.
func warmHandler() (http.Handler, error) {
	mu.Lock()
	defer mu.Unlock()

	if cached != nil {
		return cached, nil
	}

	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	handler, err := di.InitializeService()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	cached = handler

	return cached, nil
}

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	handler, err := warmHandler()
	if err != nil {
		response.WithError(w, failure.InternalError(err))

		return
	}

	handler.ServeHTTP(w, r)
}
