// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"

	"fechas-bloqueo/internal/model"
)

// ErrInvalidCredentials is the single error surfaced for both an unknown
// username and a wrong password, so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("credenciales inválidas")

// AuthenticateUser verifies a plaintext password against the stored digest.
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if err := ComparePassword(user.HashedPassword, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
