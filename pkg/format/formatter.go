package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrFormatter is returned when the external formatter fails.
var ErrFormatter = errors.New("formatter failed")

// Formatter reformats one file's content.
type Formatter interface {
	Format(ctx context.Context, path string, src []byte, opts Options) ([]byte, error)
}

// Prettier runs the prettier CLI over stdin.
type Prettier struct {
	// Command is the executable, "prettier" by default.
	Command string
	// Args are placed before the generated flags, e.g. ["exec", "prettier"]
	// when Command is a package runner.
	Args []string
}

// Format implements Formatter.
func (p *Prettier) Format(ctx context.Context, path string, src []byte, opts Options) ([]byte, error) {
	command := p.Command
	if command == "" {
		command = "prettier"
	}
	args := append(append([]string(nil), p.Args...), "--stdin-filepath", path, "--parser", "typescript")
	args = append(args, opts.Flags()...)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrFormatter, path, msg)
	}
	return stdout.Bytes(), nil
}

// Config controls the formatting step.
type Config struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Command string `mapstructure:"command" yaml:"command"`
	// IgnoreErrors keeps the unformatted output when the formatter fails.
	IgnoreErrors bool `mapstructure:"ignore_errors" yaml:"ignore_errors"`
	// Options override detected settings.
	Options Options `mapstructure:",squash" yaml:",inline"`
}

// Runner applies a Formatter according to a Config.
type Runner struct {
	formatter Formatter
	config    Config
	logger    *slog.Logger
}

// NewRunner creates a Runner. A nil formatter runs Prettier with
// cfg.Command.
func NewRunner(cfg Config, formatter Formatter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if formatter == nil {
		formatter = &Prettier{Command: cfg.Command}
	}
	return &Runner{formatter: formatter, config: cfg, logger: logger}
}

// Run formats out, using original to detect style. With formatting
// disabled out is returned as is.
func (r *Runner) Run(ctx context.Context, path string, original, out []byte) ([]byte, error) {
	if r == nil || !r.config.Enabled {
		return out, nil
	}

	opts := Detect(original).Merge(r.config.Options)
	formatted, err := r.formatter.Format(ctx, path, out, opts)
	if err != nil {
		if r.config.IgnoreErrors {
			r.logger.Warn("formatter failed, keeping unformatted output",
				"file", path,
				"error", err)
			return out, nil
		}
		return nil, err
	}
	return formatted, nil
}
