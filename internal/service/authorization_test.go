package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAdmin(t *testing.T) {
	require.True(t, IsAdmin("admin"))
	require.False(t, IsAdmin("alice"))
	require.False(t, IsAdmin(""))
	require.False(t, IsAdmin("Admin"))
}

func TestIsSelfOrAdmin(t *testing.T) {
	require.True(t, IsSelfOrAdmin("alice", "alice"))
	require.False(t, IsSelfOrAdmin("alice", "bob"))
	require.True(t, IsSelfOrAdmin("admin", "bob"))
	require.True(t, IsSelfOrAdmin("admin", "admin"))
}

func TestIsProtectedAdmin(t *testing.T) {
	require.True(t, IsProtectedAdmin("admin"))
	require.False(t, IsProtectedAdmin("manager"))
}

func TestRequireAdmin(t *testing.T) {
	require.NoError(t, RequireAdmin("admin"))

	err := RequireAdmin("alice")
	require.Error(t, err)
	var forbidden *ErrForbidden
	require.ErrorAs(t, err, &forbidden)
	require.NotEmpty(t, forbidden.Reason)
}

func TestRequireSelfOrAdmin(t *testing.T) {
	require.NoError(t, RequireSelfOrAdmin("alice", "alice"))
	require.NoError(t, RequireSelfOrAdmin("admin", "bob"))

	err := RequireSelfOrAdmin("alice", "bob")
	require.Error(t, err)
	var forbidden *ErrForbidden
	require.ErrorAs(t, err, &forbidden)
}
