package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachreach/marketplace/internal/client/model"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MARKET_STATE_BACKEND", "memory")
	t.Setenv("MARKET_API_URL", "http://127.0.0.1:1/api")
	var out bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "absent.jsonc")
	err := run(append([]string{"--config", cfg}, args...), &out)
	return out.String(), err
}

func TestRun_ListsSeedCatalog(t *testing.T) {
	out, err := runCLI(t, "services")
	require.NoError(t, err)

	var services []model.Service
	require.NoError(t, json.Unmarshal([]byte(out), &services))
	assert.Equal(t, model.SeedServices(), services)
}

func TestRun_Errors(t *testing.T) {
	_, err := runCLI(t, "whoami")
	assert.ErrorIs(t, err, model.ErrAuth)

	_, err = runCLI(t, "frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	_, err = runCLI(t, "order")
	assert.ErrorContains(t, err, "expected 1 argument")

	_, err = runCLI(t)
	assert.ErrorContains(t, err, "missing command")
}

func TestRun_AdminCommandsNeedSession(t *testing.T) {
	_, err := runCLI(t, "site-name", "Other")
	assert.ErrorIs(t, err, model.ErrAuth)
}
