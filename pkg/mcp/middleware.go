package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/react2ts/pkg/mcplog"
)

// loggingMiddleware returns a ToolHandlerMiddleware that records every tool
// call as a JSONL entry in the server's call log. NewServer installs it only
// when a call log is configured.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)
			elapsed := time.Since(start).Milliseconds()

			var errStr *string
			if err != nil {
				msg := err.Error()
				errStr = &msg
			}

			args := req.GetArguments()
			entry := mcplog.LogEntry{
				Ts:            start.UTC().Format(time.RFC3339),
				Tool:          req.Params.Name,
				Params:        mcplog.SanitizeParams(args),
				DurationMs:    elapsed,
				InputBytes:    mcplog.InputBytes(args),
				ResponseBytes: mcplog.ResponseBytes(result),
				ToolError:     result != nil && result.IsError,
				Error:         errStr,
			}
			if werr := s.callLog.Write(entry); werr != nil {
				s.logger.Debug("failed to write MCP call log", "error", werr)
			}

			return result, err
		}
	}
}
