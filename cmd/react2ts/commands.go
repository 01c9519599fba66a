package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gnana997/react2ts/pkg/converter"
	"github.com/gnana997/react2ts/pkg/format"
	mcpserver "github.com/gnana997/react2ts/pkg/mcp"
	"github.com/gnana997/react2ts/pkg/mcplog"
	"github.com/gnana997/react2ts/pkg/parser"
	"github.com/gnana997/react2ts/pkg/watch"
)

func bindFlag(v *viper.Viper, key string, flags *pflag.FlagSet, name string) {
	if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

// addFormatFlags registers the formatter switches shared by convert, watch
// and serve.
func addFormatFlags(a *app, cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("format", false, "run the formatter over converted files")
	flags.String("formatter", "prettier", "formatter command")
	flags.Bool("ignore-format-errors", false, "keep unformatted output when the formatter fails")
	a.bind(cmd, "format.enabled", "format")
	a.bind(cmd, "format.command", "formatter")
	a.bind(cmd, "format.ignore_errors", "ignore-format-errors")
}

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file|dir|glob>...",
		Short: "Convert .js/.jsx files to .tsx with inferred prop and state types",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a.cfg, args)
		},
	}

	flags := cmd.Flags()
	flags.Bool("dry-run", false, "print converted sources instead of writing them")
	flags.Bool("keep-original", false, "copy each source to <file>.bak before renaming")
	flags.Int("workers", 0, "number of parallel workers (default: 2 x CPUs)")
	flags.String("report", "", "write a YAML run report to this path")
	flags.StringSlice("exclude", nil, "glob patterns to skip")
	a.bind(cmd, "convert.dry_run", "dry-run")
	a.bind(cmd, "convert.keep_original", "keep-original")
	a.bind(cmd, "convert.workers", "workers")
	a.bind(cmd, "convert.report", "report")
	a.bind(cmd, "convert.exclude", "exclude")
	addFormatFlags(a, cmd)

	return cmd
}

func runConvert(cmd *cobra.Command, cfg *Config, args []string) error {
	logger := cfg.newLogger()
	pm := parser.NewParserManager(logger)
	defer pm.Close()

	runner := format.NewRunner(cfg.Format, nil, logger)
	conv, err := converter.New(cfg.Convert, pm, runner, logger)
	if err != nil {
		return err
	}

	report, err := conv.Run(cmd.Context(), args)
	if report != nil {
		if cfg.Convert.DryRun {
			printDryRun(cmd.OutOrStdout(), report)
		}
		printSummary(cmd.ErrOrStderr(), report)
	}
	if err != nil {
		return err
	}
	if report.HasFailures() {
		return errFilesFailed
	}
	return nil
}

func printDryRun(w io.Writer, report *converter.Report) {
	for _, f := range report.Files {
		if f.Status != converter.StatusDryRun {
			continue
		}
		fmt.Fprintf(w, "// %s\n", f.Output)
		w.Write(f.Content)
	}
}

func printSummary(w io.Writer, report *converter.Report) {
	for _, f := range report.Files {
		if f.Status == converter.StatusFailed {
			fmt.Fprintf(w, "FAIL %s: %s\n", f.Path, f.Error)
		}
	}
	fmt.Fprintf(w, "%d converted, %d unchanged, %d failed in %s\n",
		report.Converted, report.Unchanged, report.Failed, report.Duration.Round(time.Millisecond))
}

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Convert .js/.jsx files as they are created or saved",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runWatch(cmd, a.cfg, root)
		},
	}

	flags := cmd.Flags()
	flags.Int("debounce", 200, "milliseconds to wait after the last change to a file")
	flags.Bool("keep-original", false, "copy each source to <file>.bak before renaming")
	flags.StringSlice("exclude", nil, "glob patterns to skip")
	a.bind(cmd, "watch.debounce_ms", "debounce")
	a.bind(cmd, "convert.keep_original", "keep-original")
	a.bind(cmd, "convert.exclude", "exclude")
	addFormatFlags(a, cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, cfg *Config, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	logger := cfg.newLogger()
	pm := parser.NewParserManager(logger)
	defer pm.Close()

	convCfg := cfg.Convert
	convCfg.DryRun = false
	conv, err := converter.New(convCfg, pm, format.NewRunner(cfg.Format, nil, logger), logger)
	if err != nil {
		return err
	}

	opts := watch.DefaultOptions()
	opts.DebounceMs = cfg.Watch.DebounceMs
	opts.Exclude = append(opts.Exclude, cfg.Convert.Exclude...)
	w, err := watch.New(conv, opts, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl-c to stop)\n", abs)
	return w.Run(cmd.Context(), abs)
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(a.cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("log-file", "", "append a JSONL record of every tool call to this file")
	a.bind(cmd, "serve.log_file", "log-file")
	addFormatFlags(a, cmd)

	return cmd
}

func runServe(cfg *Config) error {
	logger := cfg.newLogger()
	pm := parser.NewParserManager(logger)
	defer pm.Close()

	callLog, err := mcplog.NewLogger(cfg.Serve.LogFile)
	if err != nil {
		return err
	}
	defer callLog.Close()

	var runner *format.Runner
	if cfg.Format.Enabled {
		runner = format.NewRunner(cfg.Format, nil, logger)
	}

	srv := mcpserver.NewServer(pm, mcpserver.Config{
		Vocabulary: cfg.Vocabulary,
		Runner:     runner,
		CallLog:    callLog,
		Logger:     logger,
		Version:    version,
	})
	return srv.ServeStdio()
}
