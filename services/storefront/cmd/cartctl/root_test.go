package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sakhi_shop/pkg/db"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/models"
)

const testSession = "7d2f4a61-3b8e-4c5d-a9f0-6e1b2c3d4e5f"

func run(t *testing.T, dsn string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--backend", "sql", "--dsn", dsn, "--session", testSession, "--brokers", ""}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCartctlEditsSQLCart(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "carts.db")

	out, _, err := run(t, dsn, "show")
	require.NoError(t, err)
	require.Contains(t, out, "cart is empty")

	_, _, err = run(t, dsn, "add", "1")
	require.NoError(t, err)
	out, _, err = run(t, dsn, "add", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Rose Chiffon Tiered Dress")
	require.Contains(t, out, "₹4,598")

	out, _, err = run(t, dsn, "add", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Blush Satin Wrap Top")

	out, _, err = run(t, dsn, "qty", "1", "-2")
	require.NoError(t, err)
	require.NotContains(t, out, "Rose Chiffon Tiered Dress")
	require.Contains(t, out, "₹1,299")

	out, _, err = run(t, dsn, "remove", "3")
	require.NoError(t, err)
	require.Contains(t, out, "cart is empty")

	_, _, err = run(t, dsn, "add", "2")
	require.NoError(t, err)
	out, _, err = run(t, dsn, "clear")
	require.NoError(t, err)
	require.Contains(t, out, "cart cleared")

	out, _, err = run(t, dsn, "show")
	require.NoError(t, err)
	require.Contains(t, out, "cart is empty")
}

func TestCartctlClearPurgeDeletesRow(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "carts.db")

	_, _, err := run(t, dsn, "add", "2")
	require.NoError(t, err)

	countRows := func() int64 {
		gdb, err := db.Open(context.Background(), dsn)
		require.NoError(t, err)
		defer db.Close(gdb)
		var n int64
		require.NoError(t, gdb.Model(&models.CartState{}).Where("session_id = ?", testSession).Count(&n).Error)
		return n
	}

	_, _, err = run(t, dsn, "clear")
	require.NoError(t, err)
	require.EqualValues(t, 1, countRows())

	out, _, err := run(t, dsn, "clear", "--purge")
	require.NoError(t, err)
	require.Contains(t, out, "cart purged")
	require.Zero(t, countRows())

	out, _, err = run(t, dsn, "show")
	require.NoError(t, err)
	require.Contains(t, out, "cart is empty")
}

func TestCartctlUnknownProduct(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "carts.db")

	out, errOut, err := run(t, dsn, "add", "42")
	require.NoError(t, err)
	require.Contains(t, errOut, "not in the catalog")
	require.Contains(t, out, "cart is empty")
}

func TestCartctlRejectsBadInput(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "carts.db")

	_, _, err := run(t, dsn, "add", "zero")
	require.Error(t, err)

	_, _, err = run(t, dsn, "qty", "1", "lots")
	require.Error(t, err)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--backend", "sql", "--dsn", dsn, "--session", "not-a-uuid", "show"})
	require.Error(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--backend", "cookie", "--session", testSession, "show"})
	require.Error(t, cmd.Execute())
}
