package store

import (
	"context"
	"fmt"

	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/service"
)

// defaultUsers are the accounts provisioned on first start. Digests are
// computed at runtime because bcrypt salts make fixed SQL constants useless.
var defaultUsers = []struct {
	Username string
	Password string
	Email    string
}{
	{"admin", "admin123", "admin@empresa.com"},
	{"usuario", "user456", "usuario@empresa.com"},
	{"manager", "manager789", "manager@empresa.com"},
}

var hashPassword = service.HashPassword

// EnsureDefaultUsers inserts the default accounts if they are absent.
// Existing rows are left untouched, so password or estado changes survive
// restarts.
func EnsureDefaultUsers(ctx context.Context, db database.DB) error {
	for _, du := range defaultUsers {
		hash, err := hashPassword(du.Password)
		if err != nil {
			return fmt.Errorf("EnsureDefaultUsers: %w", err)
		}
		_, err = db.Exec(ctx,
			`INSERT INTO usuarios (username, hashed_password, email)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (username) DO NOTHING`,
			du.Username,
			hash,
			du.Email,
		)
		if err != nil {
			return fmt.Errorf("EnsureDefaultUsers: %w", err)
		}
	}
	return nil
}
