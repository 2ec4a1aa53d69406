// File: internal/model/user.go
package model

import "time"

// User mirrors a row of the usuarios table. The hashed password never
// leaves the service; admin privilege is decided by username, not by a column.
type User struct {
	ID             int        `db:"id" json:"id"`
	Username       string     `db:"username" json:"username"`
	HashedPassword string     `db:"hashed_password" json:"-"`
	Email          string     `db:"email" json:"email"`
	Activo         bool       `db:"activo" json:"activo"`
	FechaCreacion  time.Time  `db:"fecha_creacion" json:"fecha_creacion"`
	UltimoAcceso   *time.Time `db:"ultimo_acceso" json:"ultimo_acceso,omitempty"`
}
