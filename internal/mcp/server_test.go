package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestSession connects an in-process client to a freshly built server.
func startTestSession(t *testing.T, defaults Defaults) *mcp.ClientSession {
	t.Helper()

	server := newServer("test", defaults)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})
	return session
}

func structured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotNil(t, result.StructuredContent)
	data, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func errorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return text.Text
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestListTools(t *testing.T) {
	session := startTestSession(t, Defaults{})

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	assert.ElementsMatch(t, []string{ReadToolName, PreviewToolName, WriteToolName}, names)
}

func TestCallTool_Read(t *testing.T) {
	session := startTestSession(t, Defaults{})
	path := writeFile(t, "package.json", `{"name":"p","version":"1.2.3"}`)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ReadToolName,
		Arguments: map[string]any{"file": path, "selector": "version"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := structured(t, result)
	assert.Equal(t, "1.2.3", out["version"])
	assert.Equal(t, "json", out["format"])
}

func TestCallTool_PreviewWithDiff(t *testing.T) {
	session := startTestSession(t, Defaults{})
	content := "[package]\nname = \"p\"\nversion = \"1.2.3\"\n"
	path := writeFile(t, "Cargo.toml", content)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      PreviewToolName,
		Arguments: map[string]any{"file": path, "selector": "package.version", "bump": "minor", "diff": true},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := structured(t, result)
	assert.Equal(t, "1.2.3", out["old_version"])
	assert.Equal(t, "1.3.0", out["new_version"])
	assert.Equal(t, false, out["written"])
	assert.Contains(t, out["diff"], "+version = \"1.3.0\"")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestCallTool_Write(t *testing.T) {
	session := startTestSession(t, Defaults{NoLock: true})
	path := writeFile(t, "chart.yaml", "name: p\nversion: 1.2.3\n")

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      WriteToolName,
		Arguments: map[string]any{"file": path, "selector": "version", "bump": "major"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, true, structured(t, result)["written"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name: p\nversion: 2.0.0\n", string(data))
}

func TestCallTool_Errors(t *testing.T) {
	session := startTestSession(t, Defaults{})
	path := writeFile(t, "package.json", `{"version":"2.5.0"}`)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      WriteToolName,
		Arguments: map[string]any{"file": path, "selector": "version", "bump": "1.0.0"},
	})
	require.NoError(t, err, "protocol call succeeds even when the tool fails")
	assert.Contains(t, errorText(t, result), "must be greater than current version")

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      PreviewToolName,
		Arguments: map[string]any{"file": path, "selector": "version"},
	})
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), "bump is required")

	result, err = session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ReadToolName,
		Arguments: map[string]any{"file": path, "selector": "package.version"},
	})
	require.NoError(t, err)
	assert.Contains(t, errorText(t, result), `missing key "package"`)
}

func TestTools_DefaultTypeApplies(t *testing.T) {
	path := writeFile(t, "VERSION", "version: 0.1.0\n")
	tl := &tools{defaults: Defaults{Type: "yaml"}}

	res, out, err := tl.handleRead(context.Background(), &mcp.CallToolRequest{}, readInput{File: path, Selector: "version"})
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, "0.1.0", out.Version)

	res, _, err = tl.handleRead(context.Background(), &mcp.CallToolRequest{}, readInput{File: path, Selector: "version", Type: "json"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestTools_WriteRequiresBump(t *testing.T) {
	tl := &tools{}
	res, _, err := tl.handleWrite(context.Background(), &mcp.CallToolRequest{}, bumpInput{File: "a.json", Selector: "version"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRunServer_UsesRunner(t *testing.T) {
	called := false
	err := runServer(context.Background(), "v1.0.0", Defaults{}, func(_ context.Context, server *mcp.Server) error {
		assert.NotNil(t, server)
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRunServer_WrapsRunnerError(t *testing.T) {
	err := runServer(context.Background(), "v1.0.0", Defaults{}, func(context.Context, *mcp.Server) error {
		return errors.New("stdin closed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run mcp server: stdin closed")

	err = runServer(context.Background(), "v1.0.0", Defaults{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runner is nil")
}
