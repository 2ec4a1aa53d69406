package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- fakes ---------- */

type fakeFechaRow struct {
	scanErr error
	fecha   *model.FechaBloqueo
}

func (r *fakeFechaRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	f := r.fecha
	switch len(dest) {
	case 4:
		*dest[0].(*int) = f.ID
		*dest[1].(*int) = f.IDCentro
		*dest[2].(*string) = f.Centro
		*dest[3].(*time.Time) = f.Fechab
	case 1:
		*dest[0].(*int) = f.ID
	default:
		panic("fakeFechaRow.Scan: unexpected dest count")
	}
	return nil
}

type fakeFechaRows struct {
	data    []model.FechaBloqueo
	idx     int
	scanErr error
	err     error
}

func (r *fakeFechaRows) Close()                                       {}
func (r *fakeFechaRows) Err() error                                   { return r.err }
func (r *fakeFechaRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeFechaRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeFechaRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeFechaRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	f := r.data[r.idx]
	r.idx++
	*dest[0].(*int) = f.ID
	*dest[1].(*int) = f.IDCentro
	*dest[2].(*string) = f.Centro
	*dest[3].(*time.Time) = f.Fechab
	return nil
}
func (r *fakeFechaRows) Values() ([]any, error) { return nil, nil }
func (r *fakeFechaRows) RawValues() [][]byte    { return nil }
func (r *fakeFechaRows) Conn() *pgx.Conn        { return nil }

/* ---------- tests ---------- */

func sampleFechas() []model.FechaBloqueo {
	d1, _ := time.Parse(model.DateLayout, "2026-01-20")
	d2, _ := time.Parse(model.DateLayout, "2026-01-15")
	return []model.FechaBloqueo{
		{ID: 1, IDCentro: 3, Centro: "Centro Norte", Fechab: d1},
		{ID: 2, IDCentro: 5, Centro: "Centro Sur", Fechab: d2},
	}
}

func TestListFechasBloqueo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeFechaRows{data: sampleFechas()}, nil
			},
		}
		fechas, err := ListFechasBloqueo(context.Background(), db)
		require.NoError(t, err)
		require.Len(t, fechas, 2)
		require.Equal(t, "Centro Norte", fechas[0].Centro)
	})

	t.Run("query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return nil, errors.New("boom")
			},
		}
		_, err := ListFechasBloqueo(context.Background(), db)
		require.Error(t, err)
	})
}

func TestListFechasBloqueoByCentro(t *testing.T) {
	var gotArgs []any
	db := &database.FakeDB{
		QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
			gotArgs = args
			return &fakeFechaRows{data: sampleFechas()[:1]}, nil
		},
	}
	fechas, err := ListFechasBloqueoByCentro(context.Background(), db, 3)
	require.NoError(t, err)
	require.Len(t, fechas, 1)
	require.Equal(t, []any{3}, gotArgs)
}

func TestCreateFechaBloqueo(t *testing.T) {
	d, _ := time.Parse(model.DateLayout, "2026-01-15")

	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeFechaRow{fecha: &model.FechaBloqueo{ID: 42}}
		},
	}
	f, err := CreateFechaBloqueo(context.Background(), db, &model.FechaBloqueo{
		IDCentro: 3, Centro: "Centro Norte", Fechab: d,
	})
	require.NoError(t, err)
	require.Equal(t, 42, f.ID)

	db.QueryRowFn = func(_ context.Context, _ string, _ ...any) pgx.Row {
		return &fakeFechaRow{scanErr: errors.New("insert failed")}
	}
	_, err = CreateFechaBloqueo(context.Background(), db, &model.FechaBloqueo{})
	require.Error(t, err)
}

func TestGetFechaBloqueo(t *testing.T) {
	d, _ := time.Parse(model.DateLayout, "2026-01-20")

	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeFechaRow{fecha: &sampleFechas()[0]}
		},
	}
	f, err := GetFechaBloqueo(context.Background(), db, 3, d)
	require.NoError(t, err)
	require.Equal(t, 3, f.IDCentro)

	db.QueryRowFn = func(_ context.Context, _ string, _ ...any) pgx.Row {
		return &fakeFechaRow{scanErr: pgx.ErrNoRows}
	}
	_, err = GetFechaBloqueo(context.Background(), db, 3, d)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFechaBloqueo(t *testing.T) {
	d, _ := time.Parse(model.DateLayout, "2026-01-20")

	db := &database.FakeDB{
		ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
	}
	require.NoError(t, DeleteFechaBloqueo(context.Background(), db, 3, d))

	db.ExecFn = func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	require.ErrorIs(t, DeleteFechaBloqueo(context.Background(), db, 3, d), ErrNotFound)
}

func TestMoverTodasFechas(t *testing.T) {
	nueva, _ := time.Parse(model.DateLayout, "2026-02-01")
	moved := sampleFechas()
	moved[0].Fechab = nueva
	moved[1].Fechab = nueva

	db := &database.FakeDB{
		QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
			require.Equal(t, []any{nueva}, args)
			return &fakeFechaRows{data: moved}, nil
		},
	}
	out, err := MoverTodasFechas(context.Background(), db, nueva)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, nueva, out[0].Fechab)
}
