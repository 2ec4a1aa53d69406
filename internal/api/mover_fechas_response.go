package api

// swagger:model api.MoverFechasResponse
type MoverFechasResponse struct {
	Mensaje            string                 `json:"mensaje" example:"Se movieron 4 fechas a 2026-02-01"`
	FilasAfectadas     int                    `json:"filas_afectadas" example:"4"`
	FechasActualizadas []FechaBloqueoResponse `json:"fechas_actualizadas"`
}
