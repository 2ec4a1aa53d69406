// File: internal/model/fecha_bloqueo.go
package model

import "time"

// DateLayout is the wire format of the fechab column (a plain date).
const DateLayout = "2006-01-02"

// FechaBloqueo is a blocked date for a facility (centro).
type FechaBloqueo struct {
	ID       int       `db:"id" json:"id"`
	IDCentro int       `db:"id_centro" json:"id_centro"`
	Centro   string    `db:"centro" json:"centro"`
	Fechab   time.Time `db:"fechab" json:"fechab"`
}
