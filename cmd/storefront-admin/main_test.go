package main

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugashop/storefront/config"
	domainauth "github.com/plugashop/storefront/internal/domain/auth"
)

func captureStdout(t *testing.T, f func() error) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := f()
	require.NoError(t, w.Close())
	require.NoError(t, runErr)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestPrintUsageListsAllCommands(t *testing.T) {
	out := captureStdout(t, printUsage)

	for name := range commands() {
		assert.Contains(t, out, name)
	}
}

func TestParseMigrateFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseMigrateFlags([]string{"--timeout", "30s"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, opts.Timeout)

	_, err = parseMigrateFlags([]string{"--timeout", "0s"})
	assert.Error(t, err)
}

func TestParseDBResetFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseDBResetFlags([]string{"--yes", "--seed", "--allow-remote"})
	require.NoError(t, err)
	assert.True(t, opts.Yes)
	assert.True(t, opts.Seed)
	assert.True(t, opts.AllowRemote)
	assert.Equal(t, defaultCommandTimeout, opts.Timeout)
}

func TestParseGrantRoleFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		role    domainauth.Role
		store   string
	}{
		{
			name: "valid store scoped grant",
			args: []string{"--email", "Admin@Example.com", "--role", "support", "--store", "demo-shop"},
			role: domainauth.RoleSupport,
			store: "demo-shop",
		},
		{
			name: "valid platform wide grant",
			args: []string{"--email", "a@b.c", "--role", "admin"},
			role: domainauth.RoleAdmin,
		},
		{
			name:    "missing email",
			args:    []string{"--role", "admin"},
			wantErr: true,
		},
		{
			name:    "invalid role",
			args:    []string{"--email", "a@b.c", "--role", "superuser"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, err := parseGrantRoleFlags(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, opts.Role)
			assert.Equal(t, tt.store, opts.StoreSlug)
		})
	}
}

func TestParseGrantRoleFlagsNormalizesEmail(t *testing.T) {
	t.Parallel()

	opts, err := parseGrantRoleFlags([]string{"--email", " Admin@Example.com ", "--role", "user"})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", opts.Email)
}

func TestParseClearIdleCartsFlags(t *testing.T) {
	t.Parallel()

	cmdCtx := &commandContext{
		Config: config.AppConfig{
			CartReaper: config.CartReaperConfig{
				MaxIdle:   48 * time.Hour,
				BatchSize: 250,
			},
		},
	}

	opts, err := parseClearIdleCartsFlags(cmdCtx, nil)
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, opts.MaxIdle)
	assert.Equal(t, 250, opts.BatchSize)

	opts, err = parseClearIdleCartsFlags(cmdCtx, []string{"--max-idle", "1h", "--batch-size", "10", "--yes"})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, opts.MaxIdle)
	assert.Equal(t, 10, opts.BatchSize)
	assert.True(t, opts.Yes)

	_, err = parseClearIdleCartsFlags(cmdCtx, []string{"--batch-size", "0"})
	assert.Error(t, err)
}

func TestIsLikelyRemoteHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host   string
		remote bool
	}{
		{"localhost", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"db.local", false},
		{"", false},
		{"db.prod.example.com", true},
		{"10.0.0.5", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.remote, isLikelyRemoteHost(tt.host), "host %q", tt.host)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"plugashop"`, quoteIdentifier("plugashop"))
	assert.Equal(t, `"we""ird"`, quoteIdentifier(`we"ird`))
}
