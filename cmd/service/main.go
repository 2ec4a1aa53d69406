// File: cmd/service/main.go
// @title        API Fechas Bloqueo
// @version      1.0
// @description  Gestión de fechas de bloqueo por centro con autenticación JWT
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"fechas-bloqueo/internal/cache"
	"fechas-bloqueo/internal/config"
	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/router"
	"fechas-bloqueo/internal/store"
	"fechas-bloqueo/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "fechas-bloqueo/docs" // swag generated docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	ensureUsersFn   = store.EnsureDefaultUsers
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuración inválida: %v", err)
	}
	if cfg.SecretKey == config.DefaultSecretKey {
		log.Print("SECRET_KEY no definida, usando la clave de desarrollo (insegura)")
	}

	if err := runMigrationsFn(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("migración fallida: %v", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("conexión a base de datos fallida: %v", err)
	}
	defer db.Close()

	if err := ensureUsersFn(context.Background(), db); err != nil {
		return fmt.Errorf("provisión de usuarios fallida: %v", err)
	}

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("conexión a Redis fallida: %v", err)
	}
	defer rdb.Close()

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb, wp, cfg)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.HTTPAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
