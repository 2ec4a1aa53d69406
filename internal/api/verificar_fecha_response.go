package api

// swagger:model api.VerificarFechaResponse
type VerificarFechaResponse struct {
	FechaBloqueada bool                  `json:"fecha_bloqueada" example:"true"`
	Detalles       *FechaBloqueoResponse `json:"detalles"`
}
