package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	exiter := cli.OsExiter
	cli.OsExiter = func(int) {}
	t.Cleanup(func() { cli.OsExiter = exiter })

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)

	err := app.Run(append([]string{"portfolio-value-service"}, args...))
	return stdout.String(), err
}

func TestValueCommand_Success(t *testing.T) {
	configPath := writeFile(t, "config.yaml", "logging:\n  level: error\n")
	requestPath := writeFile(t, "request.json", `{"portfolio":{"BTC":1,"USDT":100},"fiat_currency":"CLP"}`)

	out, err := runApp(t, "", "--config", configPath, "--mock", "value", "--file", requestPath)
	require.NoError(t, err)

	var body map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Greater(t, body["portfolioValue"], 0.0)
}

func TestValueCommand_ReadsStdin(t *testing.T) {
	configPath := writeFile(t, "config.yaml", "development:\n  mock_mode: true\nlogging:\n  level: error\n")

	out, err := runApp(t, `{"portfolio":{},"fiat_currency":"PEN"}`, "--config", configPath, "value", "-f", "-")
	require.NoError(t, err)
	assert.JSONEq(t, `{"portfolioValue": 0}`, out)
}

func TestValueCommand_FailurePrintsErrorBody(t *testing.T) {
	configPath := writeFile(t, "config.yaml", "logging:\n  level: error\n")
	requestPath := writeFile(t, "request.json", `{"portfolio":{"BTC":1},"fiat_currency":"USD"}`)

	out, err := runApp(t, "", "--config", configPath, "--mock", "value", "--file", requestPath)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.JSONEq(t,
		`{"error":"Failed to calculate portfolio value","message":"Invalid fiat currency: USD. Valid options are: CLP, COP, PEN"}`,
		out)
}

func TestValueCommand_OverflowPrintsErrorBody(t *testing.T) {
	configPath := writeFile(t, "config.yaml", "logging:\n  level: error\n")
	requestPath := writeFile(t, "request.json", `{"portfolio":{"BTC":1e305},"fiat_currency":"CLP"}`)

	out, err := runApp(t, "", "--config", configPath, "--mock", "value", "--file", requestPath)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.JSONEq(t,
		`{"error":"Failed to calculate portfolio value","message":"Portfolio value out of range at BTC"}`,
		out)
}

func TestValueCommand_MissingFile(t *testing.T) {
	configPath := writeFile(t, "config.yaml", "")

	_, err := runApp(t, "", "--config", configPath, "--mock", "value", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidConfigurationFails(t *testing.T) {
	configPath := writeFile(t, "config.yaml", "price_source:\n  max_attempts: 0\n")
	requestPath := writeFile(t, "request.json", `{}`)

	_, err := runApp(t, "", "--config", configPath, "value", "--file", requestPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
