// File: internal/handler/users/user.go
package users

import (
	"errors"
	"net/http"
	"strings"

	"fechas-bloqueo/internal/api"
	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/middleware"
	"fechas-bloqueo/internal/model"
	"fechas-bloqueo/internal/service"
	"fechas-bloqueo/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword       = service.HashPassword
	comparePassword    = service.ComparePassword
	createUser         = store.CreateUser
	listUsers          = store.ListUsers
	getUserByUsername  = store.GetUserByUsername
	changeUserPassword = store.ChangeUserPassword
	updateUserEstado   = store.UpdateUserEstado
	deleteUser         = store.DeleteUser
)

var (
	errPasswordActualRequired  = errors.New("se requiere la contraseña actual")
	errPasswordActualIncorrect = errors.New("contraseña actual incorrecta")
)

func toUserResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Activo:        u.Activo,
		FechaCreacion: u.FechaCreacion,
		UltimoAcceso:  u.UltimoAcceso,
	}
}

// CreateUserHandler registers a new account. Admin only (enforced by the
// route's middleware).
// @Summary     Crear usuario
// @Tags        usuarios
// @Accept      json
// @Produce     json
// @Param       request body api.CreateUserRequest true "Datos del usuario"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /usuarios [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "datos de petición inválidos"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "no se pudo procesar la contraseña"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Username:       req.Username,
			HashedPassword: hash,
			Email:          strings.ToLower(req.Email),
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "el usuario ya existe"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// ListUsersHandler returns every account. Admin only.
// @Summary     Listar usuarios
// @Tags        usuarios
// @Produce     json
// @Success     200 {array} api.UserResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /usuarios [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		out := make([]api.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, toUserResponse(&users[i]))
		}
		return c.JSON(http.StatusOK, out)
	}
}

// UpdatePasswordHandler changes a user's password. The owner or the admin may
// call it; a non-admin owner must prove the current password first. The proof
// and the write run inside one transaction with the row locked, so the digest
// cannot change between them.
// @Summary     Cambiar contraseña
// @Tags        usuarios
// @Accept      json
// @Produce     json
// @Param       username path string true "Usuario objetivo"
// @Param       request body api.UpdatePasswordRequest true "Contraseñas"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /usuarios/{username}/password [put]
func UpdatePasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		target := c.Param("username")
		identity := middleware.Identity(c)

		if err := service.RequireSelfOrAdmin(identity, target); err != nil {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: err.Error()})
		}

		var req api.UpdatePasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "datos de petición inválidos"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.PasswordNueva)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "no se pudo procesar la contraseña"})
		}

		// Only the admin may skip the current-password proof.
		verify := func(u *model.User) error {
			if service.IsAdmin(identity) {
				return nil
			}
			if req.PasswordActual == "" {
				return errPasswordActualRequired
			}
			if err := comparePassword(u.HashedPassword, req.PasswordActual); err != nil {
				return errPasswordActualIncorrect
			}
			return nil
		}

		err = changeUserPassword(c.Request().Context(), db, target, verify, hash)
		switch {
		case err == nil:
			return c.NoContent(http.StatusNoContent)
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "usuario no encontrado"})
		case errors.Is(err, errPasswordActualRequired), errors.Is(err, errPasswordActualIncorrect):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
	}
}

// UpdateEstadoHandler toggles the activo flag. Admin only. The admin account
// itself can never be deactivated, which would otherwise lock everyone out.
// @Summary     Activar o desactivar usuario
// @Tags        usuarios
// @Accept      json
// @Produce     json
// @Param       username path string true "Usuario objetivo"
// @Param       request body api.UpdateEstadoRequest true "Nuevo estado"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /usuarios/{username}/estado [put]
func UpdateEstadoHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		target := c.Param("username")

		var req api.UpdateEstadoRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "datos de petición inválidos"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		if service.IsProtectedAdmin(target) && !*req.Activo {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "la cuenta admin no puede desactivarse"})
		}

		if err := updateUserEstado(c.Request().Context(), db, target, *req.Activo); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "usuario no encontrado"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByUsername(c.Request().Context(), db, target)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// DeleteUserHandler removes an account. Admin only; the admin account itself
// is never deletable.
// @Summary     Eliminar usuario
// @Tags        usuarios
// @Produce     json
// @Param       username path string true "Usuario objetivo"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /usuarios/{username} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		target := c.Param("username")

		if service.IsProtectedAdmin(target) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "la cuenta admin no puede eliminarse"})
		}

		if err := deleteUser(c.Request().Context(), db, target); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "usuario no encontrado"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
