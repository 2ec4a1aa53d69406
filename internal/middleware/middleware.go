package middleware

import (
	"net/http"
	"strings"

	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/service"
	"fechas-bloqueo/internal/store"

	"github.com/labstack/echo/v4"
)

// ContextUserKey holds the authenticated username in the echo context.
const ContextUserKey = "user"

// authenticate runs the full chain: bearer extraction, signature and expiry
// check, then a live lookup of the subject among active users. A deactivated
// account fails exactly like an unknown one, which is what revokes its
// outstanding tokens without any blacklist.
func authenticate(c echo.Context, db database.DB, secret string) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "falta el token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "cabecera de autorización inválida")
	}

	username, err := service.VerifyAccessToken(secret, parts[1])
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	if _, err := store.GetActiveUserByUsername(c.Request().Context(), db, username); err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "usuario no válido")
	}
	return username, nil
}

// RequireAuth admits any authenticated active user.
func RequireAuth(db database.DB, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, err := authenticate(c, db, secret)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, username)
			return next(c)
		}
	}
}

// RequireAdmin admits only the admin principal.
func RequireAdmin(db database.DB, secret string) echo.MiddlewareFunc {
	auth := RequireAuth(db, secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			identity := c.Get(ContextUserKey).(string)
			if err := service.RequireAdmin(identity); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, err.Error())
			}
			return next(c)
		})
	}
}

// Identity returns the authenticated username stored by RequireAuth.
func Identity(c echo.Context) string {
	username, _ := c.Get(ContextUserKey).(string)
	return username
}
