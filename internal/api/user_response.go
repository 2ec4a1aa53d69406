package api

import "time"

// UserResponse never carries the password digest.
// swagger:model api.UserResponse
type UserResponse struct {
	ID            int        `json:"id" example:"1"`
	Username      string     `json:"username" example:"usuario"`
	Email         string     `json:"email" example:"usuario@empresa.com"`
	Activo        bool       `json:"activo" example:"true"`
	FechaCreacion time.Time  `json:"fecha_creacion" example:"2025-05-01T15:04:05Z"`
	UltimoAcceso  *time.Time `json:"ultimo_acceso,omitempty"`
}
