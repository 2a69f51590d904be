// Package server binds the dispatcher to its transports: the MCP stdio
// protocol and a plain HTTP POST surface.
package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/kalyanram262/docker-mcp-server/pkg/config"
	"github.com/kalyanram262/docker-mcp-server/pkg/tools"
)

// NewMCP builds the MCP server with every registered operation exposed
// as a tool. Handlers never return a Go error: failures travel inside
// the result envelope so agent clients always get structured content.
func NewMCP(dispatcher *tools.Dispatcher, cfg *config.Config, log zerolog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.ServiceName,
		cfg.ServiceVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	mcpLog := log.With().Str("component", "mcp").Logger()
	for _, desc := range dispatcher.Descriptors() {
		desc := desc
		s.AddTool(desc.Tool(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result := dispatcher.Dispatch(ctx, desc.Name, req.GetArguments())
			payload, err := json.Marshal(result)
			if err != nil {
				mcpLog.Error().Err(err).Str("operation", desc.Name).Msg("unserializable result")
				return mcp.NewToolResultError("internal error: unserializable result"), nil
			}
			res := mcp.NewToolResultText(string(payload))
			res.IsError = !result.Success
			return res, nil
		})
		mcpLog.Debug().Str("tool", desc.Name).Msg("registered tool")
	}
	return s
}

// ServeStdio runs the MCP server over stdin/stdout until the client
// disconnects. ctx is threaded into every tool invocation so process
// shutdown cancels in-flight engine calls.
func ServeStdio(ctx context.Context, s *server.MCPServer) error {
	return server.ServeStdio(s, server.WithStdioContextFunc(
		func(context.Context) context.Context { return ctx },
	))
}
