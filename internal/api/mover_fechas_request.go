package api

// swagger:model api.MoverFechasRequest
type MoverFechasRequest struct {
	NuevaFecha string `json:"nueva_fecha" form:"nueva_fecha" validate:"required" example:"2026-02-01"`
}
