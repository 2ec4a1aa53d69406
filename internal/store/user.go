package store

import (
	"context"
	"fmt"

	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/model"
)

const userColumns = `id, username, hashed_password, email, activo, fecha_creacion, ultimo_acceso`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.HashedPassword,
		&u.Email,
		&u.Activo,
		&u.FechaCreacion,
		&u.UltimoAcceso,
	); err != nil {
		return nil, err
	}
	return u, nil
}

// GetActiveUserByUsername fetches a user only if the activo flag is set.
// Inactive accounts are indistinguishable from nonexistent ones here; that is
// what makes deactivation act as token revocation.
func GetActiveUserByUsername(ctx context.Context, db database.DB, username string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM usuarios WHERE username = $1 AND activo = TRUE`,
		username,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetActiveUserByUsername: %w", mapError(err))
	}
	return u, nil
}

// GetUserByUsername fetches a user regardless of the activo flag.
func GetUserByUsername(ctx context.Context, db database.DB, username string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM usuarios WHERE username = $1`,
		username,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", mapError(err))
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO usuarios (username, hashed_password, email)
		 VALUES ($1, $2, $3)
		 RETURNING id, activo, fecha_creacion`,
		u.Username,
		u.HashedPassword,
		u.Email,
	)
	if err := row.Scan(&u.ID, &u.Activo, &u.FechaCreacion); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", mapError(err))
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM usuarios ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return out, nil
}

// ChangeUserPassword replaces a user's digest after verify approves the row,
// with the read and the write inside one transaction. The row is locked for
// the duration, so the digest verify saw is the digest the write replaces.
// Errors returned by verify pass through unwrapped.
func ChangeUserPassword(ctx context.Context, db database.DB, username string, verify func(*model.User) error, newHash string) error {
	return db.InTx(ctx, func(q database.Querier) error {
		row := q.QueryRow(ctx,
			`SELECT `+userColumns+`
			 FROM usuarios WHERE username = $1
			 FOR UPDATE`,
			username,
		)
		u, err := scanUser(row)
		if err != nil {
			return fmt.Errorf("ChangeUserPassword: %w", mapError(err))
		}
		if err := verify(u); err != nil {
			return err
		}
		_, err = q.Exec(ctx,
			`UPDATE usuarios SET hashed_password = $1 WHERE username = $2`,
			newHash,
			username,
		)
		if err != nil {
			return fmt.Errorf("ChangeUserPassword: %w", err)
		}
		return nil
	})
}

func UpdateUserEstado(ctx context.Context, db database.DB, username string, activo bool) error {
	tag, err := db.Exec(ctx,
		`UPDATE usuarios SET activo = $1 WHERE username = $2`,
		activo,
		username,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserEstado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserEstado: %w", ErrNotFound)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, username string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM usuarios WHERE username = $1`,
		username,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}

// TouchUltimoAcceso stamps the last-access column. Callers treat a failure
// here as best effort; a login must not fail because of it.
func TouchUltimoAcceso(ctx context.Context, db database.DB, username string) error {
	_, err := db.Exec(ctx,
		`UPDATE usuarios SET ultimo_acceso = CURRENT_TIMESTAMP WHERE username = $1`,
		username,
	)
	if err != nil {
		return fmt.Errorf("TouchUltimoAcceso: %w", err)
	}
	return nil
}
