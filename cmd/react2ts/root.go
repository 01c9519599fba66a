package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gnana997/react2ts/pkg/transform"
)

var version = "0.1.0-dev"

// errFilesFailed makes the process exit non-zero after a run in which at
// least one file could not be converted.
var errFilesFailed = errors.New("one or more files failed to convert")

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *Config

	// bindings maps config keys to local flags of one subcommand. Several
	// subcommands share keys, so only the running one is bound.
	bindings map[*cobra.Command][]flagBinding
}

type flagBinding struct {
	key, flag string
}

func (a *app) bind(cmd *cobra.Command, key, flag string) {
	a.bindings[cmd] = append(a.bindings[cmd], flagBinding{key: key, flag: flag})
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), bindings: make(map[*cobra.Command][]flagBinding)}
	setDefaults(a.v)

	root := &cobra.Command{
		Use:           "react2ts",
		Short:         "Migrate React propTypes components to typed TSX",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			for _, b := range a.bindings[cmd] {
				bindFlag(a.v, b.key, cmd.Flags(), b.flag)
			}
			if err := readConfig(a.v, a.configFile); err != nil {
				return err
			}
			cfg, err := loadConfig(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default .react2ts.yaml in . or $HOME)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.StringSlice("passes", nil, "passes to run, in order (default: all, see `react2ts passes`)")
	bindFlag(a.v, "log.level", flags, "log-level")
	bindFlag(a.v, "log.format", flags, "log-format")
	bindFlag(a.v, "passes", flags, "passes")

	root.AddCommand(
		newConvertCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newSetupCmd(),
		newPassesCmd(),
		newVersionCmd(),
	)
	return root
}

func newPassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passes",
		Short: "List the conversion passes in their default order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printPasses(cmd.OutOrStdout())
		},
	}
}

func printPasses(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, p := range transform.Passes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, p.Name, p.Description)
	}
	return tw.Flush()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "react2ts %s\n", version)
		},
	}
}
