// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/querydesk-tui/internal/logging"
	"github.com/jeranaias/querydesk-tui/internal/server"
)

// =============================================================================
// HELPERS
// =============================================================================

type result struct {
	code   int
	stdout string
	stderr string
}

// isolate points config and logging away from the user's home directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("QUERYDESK_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("QUERYDESK_LOG_PATH", "")
	t.Setenv("QUERYDESK_ENDPOINT", "")
	t.Setenv("NO_COLOR", "1")
	return dir
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// demoService starts the demo query service over fixture data.
func demoService(t *testing.T) string {
	t.Helper()
	srv := server.New(server.Config{}, server.NewFixtureAnswerer())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func deadEndpoint(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()
	return url
}

// =============================================================================
// VERSION
// =============================================================================

func TestVersion(t *testing.T) {
	isolate(t)
	r := run(t, "version")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "querydesk version "+Version)
}

// =============================================================================
// ASK
// =============================================================================

func TestAsk_Table(t *testing.T) {
	isolate(t)
	url := demoService(t)

	r := run(t, "--endpoint", url, "ask", "Which", "clients", "hold", "RELIANCE?")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Client Name")
	assert.Contains(t, r.stdout, "Priyanka Chopra")
	assert.Contains(t, r.stdout, "4,275,000")
}

func TestAsk_Chart(t *testing.T) {
	isolate(t)
	url := demoService(t)

	r := run(t, "--endpoint", url, "ask", "--exact", "What is the total holding value per relationship manager?")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Anjali Sharma")
	assert.Contains(t, r.stdout, "10,435,000")
}

func TestAsk_JSON(t *testing.T) {
	isolate(t)
	url := demoService(t)

	r := run(t, "--endpoint", url, "ask", "--json", "Who is the relationship manager of Virat Kohli?")
	require.Equal(t, 0, r.code, r.stderr)
	assert.JSONEq(t,
		`{"type":"text","data":"Virat Kohli's relationship manager is Vikram Singh (Delhi)."}`,
		r.stdout)
}

func TestAsk_ErrorAnswerExitsNonZero(t *testing.T) {
	isolate(t)
	url := demoService(t)

	r := run(t, "--endpoint", url, "ask", "What's the weather like?")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stdout, server.NoAnswerText)
	assert.Empty(t, r.stderr)
}

func TestAsk_Unreachable(t *testing.T) {
	isolate(t)

	r := run(t, "--endpoint", deadEndpoint(t), "ask", "--json", "top five portfolios")
	assert.Equal(t, 1, r.code)

	var env map[string]string
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &env))
	assert.Equal(t, "error", env["type"])
	assert.Contains(t, env["data"], "may be unreachable")
}

func TestAsk_Save(t *testing.T) {
	dir := isolate(t)
	url := demoService(t)
	t.Chdir(dir)

	r := run(t, "--endpoint", url, "ask", "--save", "json", "Which clients hold TCS?")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stderr, "Saved to ")

	matches, err := filepath.Glob(filepath.Join(dir, "querydesk_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	r = run(t, "--endpoint", url, "ask", "--save", "pdf", "Which clients hold TCS?")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "unsupported export format")
}

func TestAsk_RequiresQuestion(t *testing.T) {
	isolate(t)
	r := run(t, "ask")
	assert.Equal(t, 1, r.code)

	r = run(t, "ask", "   ")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "question cannot be empty")
}

// =============================================================================
// STATUS
// =============================================================================

func TestStatus_Online(t *testing.T) {
	isolate(t)
	url := demoService(t)

	r := run(t, "--endpoint", url, "status")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "online")

	r = run(t, "--endpoint", url, "status", "--json")
	require.Equal(t, 0, r.code, r.stderr)
	var report StatusReport
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &report))
	assert.True(t, report.Online)
	assert.Equal(t, "API is running", report.Status)
}

func TestStatus_Offline(t *testing.T) {
	isolate(t)
	url := deadEndpoint(t)

	r := run(t, "--endpoint", url, "status")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stdout, "Connection Error")
	assert.Contains(t, r.stdout, "querydesk serve")
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_InitShowPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")

	r := run(t, "--config", path, "config", "path")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, path+"\n", r.stdout)

	r = run(t, "--config", path, "config", "init")
	require.Equal(t, 0, r.code, r.stderr)
	_, err := os.Stat(path)
	require.NoError(t, err)

	r = run(t, "--config", path, "config", "init")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "already exists")

	r = run(t, "--config", path, "config", "init", "--force")
	assert.Equal(t, 0, r.code, r.stderr)

	r = run(t, "--config", path, "--endpoint", "http://example.test:9000", "config", "show")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "[service]")
	assert.Contains(t, r.stdout, "http://example.test:9000")
}

func TestInvalidEndpointFlag(t *testing.T) {
	isolate(t)
	r := run(t, "--endpoint", "not a url", "status")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "invalid --endpoint")
}

// =============================================================================
// CHAT
// =============================================================================

func TestChat_NeedsTerminal(t *testing.T) {
	isolate(t)
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		t.Skip("running in a terminal")
	}

	r := run(t, "chat")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "interactive terminal")
}

// =============================================================================
// LOGGER LIFECYCLE
// =============================================================================

// syncRecorder is a log sink that remembers whether it was flushed.
type syncRecorder struct {
	bytes.Buffer
	synced bool
}

func (s *syncRecorder) Sync() error {
	s.synced = true
	return nil
}

func TestLoggerSyncedWhenCommandFails(t *testing.T) {
	isolate(t)
	sink := &syncRecorder{}
	a := &app{newLogger: func(logging.Options) (*zap.Logger, error) {
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		return zap.New(zapcore.NewCore(enc, sink, zapcore.DebugLevel)), nil
	}}

	var stdout, stderr bytes.Buffer
	code := executeApp(context.Background(), a, []string{"--endpoint", deadEndpoint(t), "ask", "top five portfolios"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.True(t, sink.synced, "logger must be flushed on the failure path")
	assert.Contains(t, sink.String(), "cycle failed")
}
