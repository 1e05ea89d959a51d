package system_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/ordermanager/internal/config"
	"github.com/Additional-Code/ordermanager/internal/database/databasetest"
	"github.com/Additional-Code/ordermanager/internal/dto"
	"github.com/Additional-Code/ordermanager/internal/transport/http/system"
)

type proberFunc func(ctx context.Context) error

func (f proberFunc) Probe(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, prober system.Prober, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	system.Register(e, system.NewHandler(system.Params{
		Config: config.Config{App: config.App{Name: "Order Management API", Version: "1.0.0", Description: "orders"}},
		Prober: prober,
		Logger: zap.NewNop(),
	}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name         string
		prober       system.Prober
		wantStatus   string
		wantDatabase string
	}{
		{
			name:         "connected",
			prober:       proberFunc(func(context.Context) error { return nil }),
			wantStatus:   "healthy",
			wantDatabase: "connected",
		},
		{
			name:         "probe_error",
			prober:       proberFunc(func(context.Context) error { return errors.New("connection refused") }),
			wantStatus:   "unhealthy",
			wantDatabase: "disconnected",
		},
		{
			name:         "probe_panics",
			prober:       proberFunc(func(context.Context) error { panic("driver bug") }),
			wantStatus:   "unhealthy",
			wantDatabase: "disconnected",
		},
		{
			name:         "no_prober",
			prober:       nil,
			wantStatus:   "unhealthy",
			wantDatabase: "disconnected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := time.Now().UTC().Add(-time.Second)
			rec := serve(t, tt.prober, "/health")
			require.Equal(t, http.StatusOK, rec.Code)

			var body dto.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantDatabase, body.Database)
			assert.True(t, body.Timestamp.After(before))
		})
	}
}

func TestHealth_RealDatabase(t *testing.T) {
	conns := databasetest.Open(t)

	rec := serve(t, conns, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "connected", body.Database)
}

func TestInfo(t *testing.T) {
	rec := serve(t, nil, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.InfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Order Management API", body.Name)
	assert.Equal(t, "1.0.0", body.Version)
	assert.Equal(t, "POST /orders", body.Endpoints["create_order"])
}
