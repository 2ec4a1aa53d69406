// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"fechas-bloqueo/internal/cache"
	"fechas-bloqueo/internal/config"
	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/handler"
	"fechas-bloqueo/internal/handler/auth"
	"fechas-bloqueo/internal/handler/fechas"
	"fechas-bloqueo/internal/handler/users"
	"fechas-bloqueo/internal/middleware"
	"fechas-bloqueo/internal/worker"
)

// Setup registers every route with its middleware.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, cfg *config.Config) {
	requireAuth := middleware.RequireAuth(db, cfg.SecretKey)
	requireAdmin := middleware.RequireAdmin(db, cfg.SecretKey)

	e.GET("/", handler.RootHandler())
	e.GET("/health", handler.HealthHandler(db, rdb))

	e.POST("/login", auth.LoginHandler(db, wp, cfg))

	fb := e.Group("/fechas-bloqueo", requireAuth)
	fb.GET("", fechas.ListFechasHandler(db))
	fb.POST("", fechas.CreateFechaHandler(db, rdb))
	fb.GET("/centro/:id_centro", fechas.ListByCentroHandler(db))
	fb.PUT("/mover-todas", fechas.MoverTodasHandler(db, rdb))
	fb.GET("/verificar/:id_centro/:fecha", fechas.VerificarFechaHandler(db, rdb))
	fb.DELETE("/:id_centro/:fecha", fechas.DeleteFechaHandler(db, rdb))

	us := e.Group("/usuarios")
	us.POST("", users.CreateUserHandler(db), requireAdmin)
	us.GET("", users.ListUsersHandler(db), requireAdmin)
	us.PUT("/:username/password", users.UpdatePasswordHandler(db), requireAuth)
	us.PUT("/:username/estado", users.UpdateEstadoHandler(db), requireAdmin)
	us.DELETE("/:username", users.DeleteUserHandler(db), requireAdmin)
}
