package api

// swagger:model api.FechaBloqueoResponse
type FechaBloqueoResponse struct {
	ID       int    `json:"id" example:"7"`
	IDCentro int    `json:"id_centro" example:"3"`
	Centro   string `json:"centro" example:"Centro Norte"`
	Fechab   string `json:"fechab" example:"2026-01-15"`
}
