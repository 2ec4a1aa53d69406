package api

// swagger:model api.UpdateEstadoRequest
type UpdateEstadoRequest struct {
	Activo *bool `json:"activo" form:"activo" validate:"required" example:"false"`
}
