package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: transformSourceTool(), Handler: s.handleTransformSource},
		{Tool: listPassesTool(), Handler: s.handleListPasses},
		{Tool: detectFormatTool(), Handler: s.handleDetectFormat},
	}
}

func transformSourceTool() mcp.Tool {
	return mcp.NewTool("transform_source",
		mcp.WithDescription("Convert a React .js/.jsx module that uses propTypes into TSX with static Props and State types. Returns the converted source."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Full text of the JavaScript module"),
		),
		mcp.WithString("path",
			mcp.Description("File name of the module, used for diagnostics and formatter parser selection (default input.jsx)"),
		),
		mcp.WithArray("passes",
			mcp.Description("Pass names to run in order; omit for the full migration. See list_passes."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("format",
			mcp.Description("Run the configured formatter over the result"),
		),
	)
}

func listPassesTool() mcp.Tool {
	return mcp.NewTool("list_passes",
		mcp.WithDescription("List the available conversion passes in their default order"),
	)
}

func detectFormatTool() mcp.Tool {
	return mcp.NewTool("detect_format",
		mcp.WithDescription("Report the indentation, quote, semicolon and width style detected in a source file"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source text to inspect"),
		),
	)
}
