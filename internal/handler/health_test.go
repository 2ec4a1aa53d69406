package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fechas-bloqueo/internal/cache"
	"fechas-bloqueo/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newCtx() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cacheWithPing(err error) *cache.FakeCache {
	return &cache.FakeCache{
		PingFn: func(context.Context) *redis.StatusCmd {
			return redis.NewStatusResult("PONG", err)
		},
	}
}

func TestRootHandler(t *testing.T) {
	c, rec := newCtx()
	require.NoError(t, RootHandler()(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "API Fechas Bloqueo funcionando")
}

func TestHealthHandler(t *testing.T) {
	c, rec := newCtx()
	db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
	require.NoError(t, HealthHandler(db, cacheWithPing(nil))(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"OK"`)
	require.Contains(t, rec.Body.String(), `"cache":"connected"`)

	c, rec = newCtx()
	db = &database.FakeDB{PingFn: func(context.Context) error { return errors.New("down") }}
	require.NoError(t, HealthHandler(db, cacheWithPing(nil))(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthHandlerDegradedCache(t *testing.T) {
	c, rec := newCtx()
	db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
	require.NoError(t, HealthHandler(db, cacheWithPing(errors.New("no redis")))(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"degraded"`)
	require.Contains(t, rec.Body.String(), `"database":"connected"`)
	require.Contains(t, rec.Body.String(), `"cache":"disconnected"`)
}
