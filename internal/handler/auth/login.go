// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"net/http"
	"time"

	"fechas-bloqueo/internal/api"
	"fechas-bloqueo/internal/config"
	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/service"
	"fechas-bloqueo/internal/store"
	"fechas-bloqueo/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	getActiveUser    = store.GetActiveUserByUsername
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	touchUltimo      = store.TouchUltimoAcceso
)

// LoginHandler verifies credentials and issues a bearer token.
// Unknown usernames and wrong passwords produce the same 401 body so the
// endpoint cannot be used to enumerate accounts.
// @Summary     Iniciar sesión
// @Description Valida username y password y devuelve un token de acceso
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequest true "Credenciales"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB, wp worker.Pool, cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "datos de petición inválidos"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getActiveUser(c.Request().Context(), db, req.Username)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: service.ErrInvalidCredentials.Error()})
		}
		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: service.ErrInvalidCredentials.Error()})
		}

		token, err := issueAccessToken(cfg.SecretKey, user.Username, cfg.TokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "no se pudo emitir el token"})
		}

		// Best effort: a failed timestamp update never fails the login.
		username := user.Username
		logger := c.Logger()
		wp.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := touchUltimo(ctx, db, username); err != nil {
				logger.Warnf("ultimo_acceso update failed for %s: %v", username, err)
			}
		})

		return c.JSON(http.StatusOK, api.LoginResponse{
			AccessToken:      token,
			TokenType:        "bearer",
			ExpiresInMinutes: int(cfg.TokenTTL.Minutes()),
			User: api.UserResponse{
				ID:            user.ID,
				Username:      user.Username,
				Email:         user.Email,
				Activo:        user.Activo,
				FechaCreacion: user.FechaCreacion,
				UltimoAcceso:  user.UltimoAcceso,
			},
		})
	}
}
