package store

import (
	"context"
	"errors"
	"testing"

	"fechas-bloqueo/internal/database"
	"fechas-bloqueo/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultUsers(t *testing.T) {
	t.Cleanup(func() { hashPassword = service.HashPassword })

	// hash stub keeps the test fast
	hashPassword = func(password string) (string, error) { return "hashed:" + password, nil }

	t.Run("inserts every default account", func(t *testing.T) {
		var usernames []string
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				require.Contains(t, sql, "ON CONFLICT (username) DO NOTHING")
				usernames = append(usernames, args[0].(string))
				require.Equal(t, "hashed:", args[1].(string)[:7])
				return pgconn.NewCommandTag("INSERT 0 1"), nil
			},
		}
		require.NoError(t, EnsureDefaultUsers(context.Background(), db))
		require.Equal(t, []string{"admin", "usuario", "manager"}, usernames)
	})

	t.Run("exec error propagates", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("down")
			},
		}
		require.Error(t, EnsureDefaultUsers(context.Background(), db))
	})

	t.Run("hash error propagates", func(t *testing.T) {
		hashPassword = func(string) (string, error) { return "", errors.New("hash") }
		require.Error(t, EnsureDefaultUsers(context.Background(), &database.FakeDB{}))
	})
}
