package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const serverKey = "react2ts"

// editorTarget is a project-level MCP configuration file that can carry a
// react2ts server entry.
type editorTarget struct {
	ID          string
	DisplayName string
	Path        string            // relative to the project directory
	Marker      string            // directory whose presence selects the target; empty means always
	ServersKey  string            // JSON key: "servers" (VS Code) or "mcpServers" (others)
	ExtraFields map[string]string // extra JSON fields (e.g. "type": "stdio" for VS Code)
}

// editorTargets lists the supported configuration files in display order.
var editorTargets = []editorTarget{
	{
		ID: "project", DisplayName: "Project (.mcp.json)",
		Path: ".mcp.json", ServersKey: "mcpServers",
	},
	{
		ID: "vscode", DisplayName: "VS Code",
		Path: filepath.Join(".vscode", "mcp.json"), Marker: ".vscode",
		ServersKey: "servers", ExtraFields: map[string]string{"type": "stdio"},
	},
	{
		ID: "cursor", DisplayName: "Cursor",
		Path: filepath.Join(".cursor", "mcp.json"), Marker: ".cursor",
		ServersKey: "mcpServers",
	},
}

type setupOptions struct {
	dir     string
	targets []string
	logFile string
	dryRun  bool
}

func newSetupCmd() *cobra.Command {
	var opts setupOptions
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register the react2ts MCP server in project editor configs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.dir, "dir", ".", "project directory")
	flags.StringSliceVar(&opts.targets, "target", nil, "targets to configure: project, vscode, cursor (default: project plus detected editors)")
	flags.StringVar(&opts.logFile, "log-file", "", "have the server log tool calls to this JSONL file")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the resulting files instead of writing them")

	return cmd
}

// selectTargets resolves explicit target IDs, or detects editors by their
// marker directories under dir.
func selectTargets(dir string, ids []string) ([]editorTarget, error) {
	if len(ids) > 0 {
		var out []editorTarget
		for _, id := range ids {
			t, ok := findTarget(id)
			if !ok {
				return nil, fmt.Errorf("unknown target %q", id)
			}
			out = append(out, t)
		}
		return out, nil
	}

	var out []editorTarget
	for _, t := range editorTargets {
		if t.Marker == "" {
			out = append(out, t)
			continue
		}
		if info, err := os.Stat(filepath.Join(dir, t.Marker)); err == nil && info.IsDir() {
			out = append(out, t)
		}
	}
	return out, nil
}

func findTarget(id string) (editorTarget, bool) {
	for _, t := range editorTargets {
		if t.ID == id {
			return t, true
		}
	}
	return editorTarget{}, false
}

// serverEntry returns the MCP server config object for react2ts.
func serverEntry(extra map[string]string, logFile string) map[string]any {
	args := []any{"serve"}
	if logFile != "" {
		args = append(args, "--log-file", logFile)
	}
	entry := map[string]any{
		"command": "react2ts",
		"args":    args,
	}
	for k, v := range extra {
		entry[k] = v
	}
	return entry
}

// mergeServerEntry reads existing JSON (or starts empty), adds the react2ts
// entry under serversKey and returns the merged JSON bytes.
// Returns nil, nil if react2ts is already configured.
func mergeServerEntry(existing []byte, serversKey string, entry map[string]any) ([]byte, error) {
	config := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &config); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	servers, ok := config[serversKey].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers[serverKey]; exists {
		return nil, nil
	}

	servers[serverKey] = entry
	config[serversKey] = servers

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func runSetup(w io.Writer, opts setupOptions) error {
	targets, err := selectTargets(opts.dir, opts.targets)
	if err != nil {
		return err
	}

	for _, t := range targets {
		path := filepath.Join(opts.dir, t.Path)

		var existing []byte
		if data, err := os.ReadFile(path); err == nil {
			existing = data
		}

		merged, err := mergeServerEntry(existing, t.ServersKey, serverEntry(t.ExtraFields, opts.logFile))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if merged == nil {
			fmt.Fprintf(w, "  * %s already configured (%s)\n", t.DisplayName, path)
			continue
		}

		if opts.dryRun {
			fmt.Fprintf(w, "--- %s\n%s", path, merged)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(path, merged, 0644); err != nil {
			return err
		}
		fmt.Fprintf(w, "  + %s configured (%s)\n", t.DisplayName, path)
	}
	return nil
}
