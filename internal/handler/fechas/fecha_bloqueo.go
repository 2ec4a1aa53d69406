// File: internal/handler/fechas/fecha_bloqueo.go
package fechas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fechas-bloqueo/internal/api"
	"fechas-bloqueo/internal/cache"
	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/model"
	"fechas-bloqueo/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

var (
	listFechas         = store.ListFechasBloqueo
	listFechasByCentro = store.ListFechasBloqueoByCentro
	createFecha        = store.CreateFechaBloqueo
	getFecha           = store.GetFechaBloqueo
	deleteFecha        = store.DeleteFechaBloqueo
	moverFechas        = store.MoverTodasFechas
)

// Verification lookups are cached under a version-stamped key; every write
// bumps the version, which orphans all stale entries at once without key
// enumeration. Orphans simply age out via the TTL.
const (
	verificarVersionKey = "fb:ver"
	verificarTTL        = 5 * time.Minute
)

func toFechaResponse(f *model.FechaBloqueo) api.FechaBloqueoResponse {
	return api.FechaBloqueoResponse{
		ID:       f.ID,
		IDCentro: f.IDCentro,
		Centro:   f.Centro,
		Fechab:   f.Fechab.Format(model.DateLayout),
	}
}

func toFechaResponses(fs []model.FechaBloqueo) []api.FechaBloqueoResponse {
	out := make([]api.FechaBloqueoResponse, 0, len(fs))
	for i := range fs {
		out = append(out, toFechaResponse(&fs[i]))
	}
	return out
}

func parseCentro(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id_centro"))
	if err != nil {
		return 0, fmt.Errorf("id_centro inválido")
	}
	return id, nil
}

func parseFecha(c echo.Context) (time.Time, error) {
	fecha, err := time.Parse(model.DateLayout, c.Param("fecha"))
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida, se espera YYYY-MM-DD")
	}
	return fecha, nil
}

// ListFechasHandler returns every blocked date, newest first.
// @Summary     Listar fechas de bloqueo
// @Tags        fechas-bloqueo
// @Produce     json
// @Success     200 {array} api.FechaBloqueoResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /fechas-bloqueo [get]
func ListFechasHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		fechas, err := listFechas(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toFechaResponses(fechas))
	}
}

// ListByCentroHandler returns the blocked dates of one centro.
// @Summary     Listar fechas de bloqueo por centro
// @Tags        fechas-bloqueo
// @Produce     json
// @Param       id_centro path int true "ID del centro"
// @Success     200 {array} api.FechaBloqueoResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /fechas-bloqueo/centro/{id_centro} [get]
func ListByCentroHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		idCentro, err := parseCentro(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		fechas, err := listFechasByCentro(c.Request().Context(), db, idCentro)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toFechaResponses(fechas))
	}
}

// CreateFechaHandler registers a new blocked date.
// @Summary     Crear fecha de bloqueo
// @Tags        fechas-bloqueo
// @Accept      json
// @Produce     json
// @Param       request body api.CreateFechaBloqueoRequest true "Fecha a bloquear"
// @Success     201 {object} api.FechaBloqueoResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /fechas-bloqueo [post]
func CreateFechaHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateFechaBloqueoRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "datos de petición inválidos"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		fecha, err := time.Parse(model.DateLayout, req.Fechab)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "fechab inválida, se espera YYYY-MM-DD"})
		}

		created, err := createFecha(c.Request().Context(), db, &model.FechaBloqueo{
			IDCentro: req.IDCentro,
			Centro:   req.Centro,
			Fechab:   fecha,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		bumpVerificarVersion(c, rdb)
		return c.JSON(http.StatusCreated, toFechaResponse(created))
	}
}

// DeleteFechaHandler removes the block of a centro on a date.
// @Summary     Eliminar fecha de bloqueo
// @Tags        fechas-bloqueo
// @Produce     json
// @Param       id_centro path int    true "ID del centro"
// @Param       fecha     path string true "Fecha (YYYY-MM-DD)"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /fechas-bloqueo/{id_centro}/{fecha} [delete]
func DeleteFechaHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		idCentro, err := parseCentro(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		fecha, err := parseFecha(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		if err := deleteFecha(c.Request().Context(), db, idCentro, fecha); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "fecha de bloqueo no encontrada"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		bumpVerificarVersion(c, rdb)
		return c.NoContent(http.StatusNoContent)
	}
}

// VerificarFechaHandler reports whether a date is blocked for a centro,
// serving repeated lookups from Redis.
// @Summary     Verificar fecha bloqueada
// @Tags        fechas-bloqueo
// @Produce     json
// @Param       id_centro path int    true "ID del centro"
// @Param       fecha     path string true "Fecha (YYYY-MM-DD)"
// @Success     200 {object} api.VerificarFechaResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /fechas-bloqueo/verificar/{id_centro}/{fecha} [get]
func VerificarFechaHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		idCentro, err := parseCentro(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		fecha, err := parseFecha(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		ctx := c.Request().Context()
		key, cached := verificarKey(c, rdb, idCentro, fecha)
		if cached {
			if resp, ok := cachedVerificar(c, rdb, key); ok {
				return c.JSON(http.StatusOK, resp)
			}
		}

		resp := api.VerificarFechaResponse{}
		f, err := getFecha(ctx, db, idCentro, fecha)
		switch {
		case err == nil:
			detalles := toFechaResponse(f)
			resp.FechaBloqueada = true
			resp.Detalles = &detalles
		case errors.Is(err, store.ErrNotFound):
			// not blocked
		default:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if cached {
			storeVerificar(c, rdb, key, resp)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// MoverTodasHandler shifts every blocked date to a new one in a single
// statement.
// @Summary     Mover todas las fechas de bloqueo
// @Tags        fechas-bloqueo
// @Accept      json
// @Produce     json
// @Param       request body api.MoverFechasRequest true "Nueva fecha"
// @Success     200 {object} api.MoverFechasResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /fechas-bloqueo/mover-todas [put]
func MoverTodasHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.MoverFechasRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "datos de petición inválidos"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		nueva, err := time.Parse(model.DateLayout, req.NuevaFecha)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "nueva_fecha inválida, se espera YYYY-MM-DD"})
		}

		moved, err := moverFechas(c.Request().Context(), db, nueva)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		bumpVerificarVersion(c, rdb)
		return c.JSON(http.StatusOK, api.MoverFechasResponse{
			Mensaje:            fmt.Sprintf("Se movieron %d fechas a %s", len(moved), req.NuevaFecha),
			FilasAfectadas:     len(moved),
			FechasActualizadas: toFechaResponses(moved),
		})
	}
}

/* ---------- cache helpers ---------- */

// verificarKey resolves the current version-stamped cache key. The second
// return is false when Redis is unreachable, in which case the request falls
// through to the database.
func verificarKey(c echo.Context, rdb cache.Cache, idCentro int, fecha time.Time) (string, bool) {
	ver, err := rdb.Get(c.Request().Context(), verificarVersionKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.Logger().Warnf("cache version lookup failed: %v", err)
			return "", false
		}
		ver = "0"
	}
	return fmt.Sprintf("fb:%s:%d:%s", ver, idCentro, fecha.Format(model.DateLayout)), true
}

func cachedVerificar(c echo.Context, rdb cache.Cache, key string) (api.VerificarFechaResponse, bool) {
	val, err := rdb.Get(c.Request().Context(), key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.Logger().Warnf("cache lookup failed: %v", err)
		}
		return api.VerificarFechaResponse{}, false
	}
	var resp api.VerificarFechaResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		c.Logger().Warnf("cache entry corrupt: %v", err)
		return api.VerificarFechaResponse{}, false
	}
	return resp, true
}

func storeVerificar(c echo.Context, rdb cache.Cache, key string, resp api.VerificarFechaResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := rdb.Set(c.Request().Context(), key, data, verificarTTL).Err(); err != nil {
		c.Logger().Warnf("cache store failed: %v", err)
	}
}

func bumpVerificarVersion(c echo.Context, rdb cache.Cache) {
	if err := rdb.Incr(c.Request().Context(), verificarVersionKey).Err(); err != nil {
		c.Logger().Warnf("cache invalidation failed: %v", err)
	}
}
