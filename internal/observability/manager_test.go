package observability_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/Additional-Code/ordermanager/internal/config"
	"github.com/Additional-Code/ordermanager/internal/observability"
)

func newConfig(metrics bool) config.Config {
	return config.Config{
		App: config.App{Name: "Order Management API", Version: "1.0.0"},
		Observability: config.Observability{
			ServiceName:     "ordermanager",
			Environment:     "test",
			EnableMetrics:   metrics,
			MetricsExporter: "prometheus",
			PrometheusPath:  "/metrics",
		},
	}
}

func TestNewManager_Disabled(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	mgr, err := observability.NewManager(lc, newConfig(false), zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mgr.TracingEnabled())
	assert.False(t, mgr.MetricsEnabled())
	assert.Nil(t, mgr.MetricsHandler())

	lc.RequireStart()
	lc.RequireStop()
}

func TestNewManager_PrometheusMetrics(t *testing.T) {
	// Two managers in one process must not fight over a shared registry.
	for i := 0; i < 2; i++ {
		lc := fxtest.NewLifecycle(t)
		mgr, err := observability.NewManager(lc, newConfig(true), zap.NewNop())
		require.NoError(t, err)
		require.True(t, mgr.MetricsEnabled())
		assert.Equal(t, "/metrics", mgr.PrometheusPath())

		rec := httptest.NewRecorder()
		mgr.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "go_goroutines")

		require.NoError(t, mgr.Shutdown(context.Background()))
	}
}

func TestNewManager_UnknownExporter(t *testing.T) {
	cfg := newConfig(true)
	cfg.Observability.MetricsExporter = "statsd"

	mgr, err := observability.NewManager(fxtest.NewLifecycle(t), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, mgr.MetricsEnabled())
}
