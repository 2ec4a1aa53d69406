package handler

import (
	"net/http"

	"fechas-bloqueo/internal/api"
	"fechas-bloqueo/internal/cache"
	"fechas-bloqueo/internal/database"

	"github.com/labstack/echo/v4"
)

// RootResponse is the service banner.
// swagger:model RootResponse
type RootResponse struct {
	Message string `json:"message" example:"API Fechas Bloqueo funcionando"`
}

// HealthResponse reports connectivity of the backing stores.
// swagger:model HealthResponse
type HealthResponse struct {
	Status   string `json:"status" example:"OK"`
	Database string `json:"database" example:"connected"`
	Cache    string `json:"cache" example:"connected"`
}

// RootHandler answers the unauthenticated service banner.
// @Summary     Service banner
// @Tags        health
// @Produce     json
// @Success     200 {object} RootResponse
// @Router      / [get]
func RootHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, RootResponse{Message: "API Fechas Bloqueo funcionando"})
	}
}

// HealthHandler checks database and cache connectivity. An unreachable
// database fails the check outright; an unreachable cache only degrades it,
// since lookups fall through to the database.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /health [get]
func HealthHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "base de datos no disponible"})
		}
		resp := HealthResponse{Status: "OK", Database: "connected", Cache: "connected"}
		if err := rdb.Ping(ctx).Err(); err != nil {
			resp.Status = "degraded"
			resp.Cache = "disconnected"
		}
		return c.JSON(http.StatusOK, resp)
	}
}
