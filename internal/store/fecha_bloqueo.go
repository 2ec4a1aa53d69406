package store

import (
	"context"
	"fmt"
	"time"

	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/model"
)

const fechaColumns = `id, id_centro, centro, fechab`

func scanFecha(row interface{ Scan(dest ...any) error }) (*model.FechaBloqueo, error) {
	f := &model.FechaBloqueo{}
	if err := row.Scan(&f.ID, &f.IDCentro, &f.Centro, &f.Fechab); err != nil {
		return nil, err
	}
	return f, nil
}

func collectFechas(ctx context.Context, db database.DB, sql string, args ...any) ([]model.FechaBloqueo, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FechaBloqueo
	for rows.Next() {
		f, err := scanFecha(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func ListFechasBloqueo(ctx context.Context, db database.DB) ([]model.FechaBloqueo, error) {
	out, err := collectFechas(ctx, db,
		`SELECT `+fechaColumns+` FROM fecha_bloqueo ORDER BY fechab DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListFechasBloqueo: %w", err)
	}
	return out, nil
}

func ListFechasBloqueoByCentro(ctx context.Context, db database.DB, idCentro int) ([]model.FechaBloqueo, error) {
	out, err := collectFechas(ctx, db,
		`SELECT `+fechaColumns+` FROM fecha_bloqueo WHERE id_centro = $1 ORDER BY fechab DESC`,
		idCentro,
	)
	if err != nil {
		return nil, fmt.Errorf("ListFechasBloqueoByCentro: %w", err)
	}
	return out, nil
}

func CreateFechaBloqueo(ctx context.Context, db database.DB, f *model.FechaBloqueo) (*model.FechaBloqueo, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO fecha_bloqueo (id_centro, centro, fechab)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		f.IDCentro,
		f.Centro,
		f.Fechab,
	)
	if err := row.Scan(&f.ID); err != nil {
		return nil, fmt.Errorf("CreateFechaBloqueo: %w", mapError(err))
	}
	return f, nil
}

// GetFechaBloqueo returns the first block matching a centro and date, used by
// the verification lookup.
func GetFechaBloqueo(ctx context.Context, db database.DB, idCentro int, fecha time.Time) (*model.FechaBloqueo, error) {
	row := db.QueryRow(ctx,
		`SELECT `+fechaColumns+` FROM fecha_bloqueo
		 WHERE id_centro = $1 AND fechab = $2
		 LIMIT 1`,
		idCentro,
		fecha,
	)
	f, err := scanFecha(row)
	if err != nil {
		return nil, fmt.Errorf("GetFechaBloqueo: %w", mapError(err))
	}
	return f, nil
}

// DeleteFechaBloqueo removes every block for a centro on a date.
func DeleteFechaBloqueo(ctx context.Context, db database.DB, idCentro int, fecha time.Time) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM fecha_bloqueo WHERE id_centro = $1 AND fechab = $2`,
		idCentro,
		fecha,
	)
	if err != nil {
		return fmt.Errorf("DeleteFechaBloqueo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteFechaBloqueo: %w", ErrNotFound)
	}
	return nil
}

// MoverTodasFechas shifts every block to the given date in one statement and
// returns the rows as updated.
func MoverTodasFechas(ctx context.Context, db database.DB, nuevaFecha time.Time) ([]model.FechaBloqueo, error) {
	out, err := collectFechas(ctx, db,
		`UPDATE fecha_bloqueo SET fechab = $1 RETURNING `+fechaColumns,
		nuevaFecha,
	)
	if err != nil {
		return nil, fmt.Errorf("MoverTodasFechas: %w", err)
	}
	return out, nil
}
