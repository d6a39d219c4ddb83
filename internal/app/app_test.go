package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Http: config.Http{Host: "127.0.0.1", Port: "0"},
		Cors: config.CORS{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

type pingHandler struct{}

func (pingHandler) Init(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("pong")) })
}

type funcStarter func(ctx context.Context) error

func (f funcStarter) Start(ctx context.Context) error { return f(ctx) }

type blockingConsumer struct {
	closed atomic.Bool
}

func (c *blockingConsumer) Consume(ctx context.Context) { <-ctx.Done() }

func (c *blockingConsumer) Close() error {
	c.closed.Store(true)
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func newTestApp() *application {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), testConfig())
}

func TestApplication_Routes(t *testing.T) {
	a := newTestApp()
	a.SetHTTPHandlers(pingHandler{})

	testCases := []struct {
		path       string
		wantStatus int
	}{
		{path: "/ping", wantStatus: http.StatusOK},
		{path: "/healthz", wantStatus: http.StatusNoContent},
		{path: "/metrics", wantStatus: http.StatusOK},
		{path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			a.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestApplication_CORS(t *testing.T) {
	a := newTestApp()
	a.SetHTTPHandlers(pingHandler{})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()

	a.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestApplication_StartFailsWhenStarterFails(t *testing.T) {
	a := newTestApp()
	a.SetStarters(
		funcStarter(func(context.Context) error { return nil }),
		funcStarter(func(context.Context) error { return errors.New("redis unreachable") }),
	)

	err := a.Start(context.Background())
	assert.ErrorContains(t, err, "redis unreachable")
}

func TestApplication_Lifecycle(t *testing.T) {
	a := newTestApp()

	var started, closed atomic.Bool
	consumer := &blockingConsumer{}
	a.SetStarters(funcStarter(func(context.Context) error {
		started.Store(true)
		return nil
	}))
	a.SetConsumers(consumer)
	a.SetClosers(closerFunc(func() error {
		closed.Store(true)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, a.Start(ctx))
	assert.True(t, started.Load())

	cancel()
	require.NoError(t, a.Stop())

	assert.True(t, consumer.closed.Load())
	assert.True(t, closed.Load())
}
