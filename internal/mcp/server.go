// Package mcp exposes read, preview, and write as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/bumpver/internal/bump"
	"github.com/conn-castle/bumpver/internal/diffview"
	"github.com/conn-castle/bumpver/internal/messages"
)

// Tool names.
const (
	ReadToolName    = "read_version"
	PreviewToolName = "preview_version"
	WriteToolName   = "write_version"
)

// Defaults are applied to every tool call that does not set the field itself.
type Defaults struct {
	Type   string
	NoLock bool
}

type serverRunner func(ctx context.Context, server *mcp.Server) error

// RunServer starts the MCP tool server over stdio and blocks until the client
// disconnects or ctx is cancelled.
func RunServer(ctx context.Context, version string, defaults Defaults) error {
	return runServer(ctx, version, defaults, defaultServerRunner)
}

func runServer(ctx context.Context, version string, defaults Defaults, runner serverRunner) error {
	if runner == nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, errors.New("server runner is nil"))
	}
	server := newServer(version, defaults)
	if err := runner(ctx, server); err != nil {
		return fmt.Errorf(messages.McpRunServerFailedFmt, err)
	}
	return nil
}

func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer(version string, defaults Defaults) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: messages.McpServerName, Version: version},
		&mcp.ServerOptions{Instructions: messages.McpServerInstructions},
	)
	registerTools(server, &tools{defaults: defaults})
	return server
}

func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ReadToolName,
		Description: messages.McpReadToolDescription,
	}, t.handleRead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        PreviewToolName,
		Description: messages.McpPreviewToolDescription,
	}, t.handlePreview)

	mcp.AddTool(server, &mcp.Tool{
		Name:        WriteToolName,
		Description: messages.McpWriteToolDescription,
	}, t.handleWrite)
}

type tools struct {
	defaults Defaults
}

type readInput struct {
	File     string `json:"file"           jsonschema:"Path to the JSON or YAML or TOML file"`
	Selector string `json:"selector"       jsonschema:"Dot-separated key path such as package.version"`
	Type     string `json:"type,omitempty" jsonschema:"Format override: json or yaml or toml"`
}

type readOutput struct {
	File     string `json:"file"`
	Format   string `json:"format"`
	Selector string `json:"selector"`
	Version  string `json:"version"`
}

type bumpInput struct {
	File     string `json:"file"           jsonschema:"Path to the JSON or YAML or TOML file"`
	Selector string `json:"selector"       jsonschema:"Dot-separated key path such as package.version"`
	Bump     string `json:"bump,omitempty" jsonschema:"major or minor or patch or an explicit version such as 2.5.0"`
	Type     string `json:"type,omitempty" jsonschema:"Format override: json or yaml or toml"`
	Diff     bool   `json:"diff,omitempty" jsonschema:"Also return a unified diff of the file"`
}

type bumpOutput struct {
	File     string `json:"file"`
	Format   string `json:"format"`
	Selector string `json:"selector"`
	Old      string `json:"old_version"`
	New      string `json:"new_version"`
	Written  bool   `json:"written"`
	Diff     string `json:"diff,omitempty"`
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

func (t *tools) request(file, sel, bumpToken, typ string) bump.Request {
	if typ == "" {
		typ = t.defaults.Type
	}
	return bump.Request{
		Path:     file,
		Selector: sel,
		Bump:     bumpToken,
		Type:     typ,
		NoLock:   t.defaults.NoLock,
	}
}

func (t *tools) handleRead(ctx context.Context, _ *mcp.CallToolRequest, input readInput) (*mcp.CallToolResult, readOutput, error) {
	res, err := bump.Read(ctx, t.request(input.File, input.Selector, "", input.Type))
	if err != nil {
		return errResult(err), readOutput{}, nil
	}
	return nil, readOutput{
		File:     res.Path,
		Format:   res.Format.String(),
		Selector: res.Selector,
		Version:  res.Old,
	}, nil
}

func (t *tools) handlePreview(ctx context.Context, _ *mcp.CallToolRequest, input bumpInput) (*mcp.CallToolResult, bumpOutput, error) {
	if input.Bump == "" {
		return errResult(errors.New(messages.McpBumpRequired)), bumpOutput{}, nil
	}
	res, err := bump.Preview(ctx, t.request(input.File, input.Selector, input.Bump, input.Type))
	if err != nil {
		return errResult(err), bumpOutput{}, nil
	}
	out := newBumpOutput(res, false)
	if input.Diff {
		out.Diff = diffview.Unified(res.Path, string(res.Before), string(res.After))
	}
	return nil, out, nil
}

func (t *tools) handleWrite(ctx context.Context, _ *mcp.CallToolRequest, input bumpInput) (*mcp.CallToolResult, bumpOutput, error) {
	if input.Bump == "" {
		return errResult(errors.New(messages.McpBumpRequired)), bumpOutput{}, nil
	}
	res, err := bump.Write(ctx, t.request(input.File, input.Selector, input.Bump, input.Type))
	if err != nil {
		return errResult(err), bumpOutput{}, nil
	}
	out := newBumpOutput(res, true)
	if input.Diff {
		out.Diff = diffview.Unified(res.Path, string(res.Before), string(res.After))
	}
	return nil, out, nil
}

func newBumpOutput(res *bump.Result, written bool) bumpOutput {
	return bumpOutput{
		File:     res.Path,
		Format:   res.Format.String(),
		Selector: res.Selector,
		Old:      res.Old,
		New:      res.New,
		Written:  written,
	}
}
