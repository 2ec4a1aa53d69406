package api

// swagger:model api.CreateFechaBloqueoRequest
type CreateFechaBloqueoRequest struct {
	IDCentro int    `json:"id_centro" form:"id_centro" validate:"required" example:"3"`
	Centro   string `json:"centro" form:"centro" validate:"required" example:"Centro Norte"`
	Fechab   string `json:"fechab" form:"fechab" validate:"required" example:"2026-01-15"`
}
