package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/react2ts/pkg/format"
	"github.com/gnana997/react2ts/pkg/transform"
)

const defaultSourcePath = "input.jsx"

type passInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

func (s *Server) handleTransformSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path := req.GetString("path", defaultSourcePath)
	names := req.GetStringSlice("passes", nil)

	passes, err := transform.PassesByName(names)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	src := []byte(source)
	if err := s.pm.Preflight(path, src); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := transform.TransformSource(s.pm, path, src, passes,
		transform.WithVocabulary(s.vocab),
		transform.WithLogger(s.logger))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("transform failed", err), nil
	}

	if req.GetBool("format", false) {
		if s.runner == nil {
			return mcp.NewToolResultError("formatting is not configured on this server"), nil
		}
		formatted, err := s.runner.Run(ctx, path, src, out)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("format failed", err), nil
		}
		out = formatted
	}

	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleListPasses(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	passes := transform.Passes()
	out := make([]passInfo, 0, len(passes))
	for i, p := range passes {
		out = append(out, passInfo{Name: p.Name, Description: p.Description, Order: i + 1})
	}
	return jsonResult(out)
}

func (s *Server) handleDetectFormat(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(format.Detect([]byte(source)))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
