// Package converter drives the migration of files on disk: it resolves
// patterns to .js/.jsx files, runs the transform pipeline and the formatter
// over each in a worker pool, renames them to .tsx and reports the outcome.
package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnana997/react2ts/pkg/format"
	"github.com/gnana997/react2ts/pkg/parser"
	"github.com/gnana997/react2ts/pkg/proptypes"
	"github.com/gnana997/react2ts/pkg/transform"
	"github.com/gnana997/react2ts/pkg/util"
)

// ErrUnsupportedExtension is returned for files that are not .js or .jsx.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// ErrTargetExists is returned when the .tsx file a conversion would write
// is already present.
var ErrTargetExists = errors.New("target file already exists")

// Config controls a conversion run.
type Config struct {
	// KeepOriginal copies each source file to <file>.bak before renaming.
	KeepOriginal bool `mapstructure:"keep_original" yaml:"keep_original"`
	// DryRun converts in memory only; results carry the output.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
	// Workers is the worker pool size; 0 picks one from the CPU count.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// Report is the path of the YAML run report; empty disables it.
	Report string `mapstructure:"report" yaml:"report"`
	// Exclude globs are added to DefaultExclude.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// Passes lists pass names in order; empty runs the default pipeline.
	Passes     []string             `mapstructure:"-" yaml:"-"`
	Vocabulary proptypes.Vocabulary `mapstructure:"-" yaml:"-"`
}

// Converter converts files on disk.
type Converter struct {
	cfg       Config
	pm        *parser.ParserManager
	runner    *format.Runner
	passes    []transform.PassFactory
	passNames []string
	logger    *slog.Logger
}

// New creates a Converter. A nil runner skips formatting.
func New(cfg Config, pm *parser.ParserManager, runner *format.Runner, logger *slog.Logger) (*Converter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if pm == nil {
		return nil, fmt.Errorf("converter requires a parser manager")
	}

	passes, err := transform.PassesByName(cfg.Passes)
	if err != nil {
		return nil, err
	}
	names := cfg.Passes
	if len(names) == 0 {
		names = transform.DefaultPassNames()
	}
	cfg.Vocabulary = cfg.Vocabulary.WithDefaults()

	return &Converter{
		cfg:       cfg,
		pm:        pm,
		runner:    runner,
		passes:    passes,
		passNames: names,
		logger:    logger,
	}, nil
}

// Run converts every file the patterns resolve to. Per-file failures are
// recorded in the report and do not stop the run; the returned error is
// reserved for discovery, cancellation and report writing.
func (c *Converter) Run(ctx context.Context, patterns []string) (*Report, error) {
	report := &Report{Started: time.Now(), Passes: c.passNames}

	exclude := append(append([]string(nil), DefaultExclude...), c.cfg.Exclude...)
	files, err := Discover(patterns, exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		c.logger.Warn("no files matched", "patterns", patterns)
	}

	c.logger.Info("Converting files",
		"files", len(files),
		"dry_run", c.cfg.DryRun,
		"passes", len(c.passes))

	pool := NewWorkerPool(ctx, c.cfg.Workers, func(ctx context.Context, job FileJob) *FileResult {
		return c.ConvertFile(ctx, job.FilePath)
	}, c.logger)
	pool.Start()

	var submitErr error
	go func() {
		defer pool.Stop()
		for i, file := range files {
			if err := pool.Submit(FileJob{FilePath: file, JobID: i}); err != nil {
				submitErr = err
				return
			}
		}
	}()

	for result := range pool.Results() {
		report.add(result)
	}
	report.sortFiles()
	report.Duration = time.Since(report.Started)

	c.logger.Info("Conversion finished",
		"converted", report.Converted,
		"unchanged", report.Unchanged,
		"failed", report.Failed,
		"duration", report.Duration)

	if c.cfg.Report != "" {
		if err := report.Save(c.cfg.Report); err != nil {
			return report, err
		}
	}
	if submitErr != nil {
		return report, submitErr
	}
	return report, ctx.Err()
}

// ConvertFile converts a single file. It never returns nil.
func (c *Converter) ConvertFile(ctx context.Context, path string) *FileResult {
	start := time.Now()
	result := &FileResult{Path: path}

	err := c.convert(ctx, path, result)
	result.Duration = time.Since(start)
	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		c.logger.Error("Conversion failed", "file", path, "error", err)
		return result
	}

	c.logger.Debug("Converted file",
		"file", path,
		"output", result.Output,
		"status", result.Status,
		"duration", result.Duration)
	return result
}

func (c *Converter) convert(ctx context.Context, path string, result *FileResult) error {
	if !parser.IsConvertible(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedExtension, filepath.Ext(path))
	}

	target := parser.TSXPath(path)
	result.Output = target
	if !c.cfg.DryRun {
		if _, err := os.Lstat(target); err == nil {
			return fmt.Errorf("%w: %s", ErrTargetExists, target)
		}
	}

	src, err := util.ReadSource(path, c.logger)
	if err != nil {
		return err
	}
	if err := c.pm.Preflight(path, src); err != nil {
		return err
	}

	out, err := transform.TransformSource(c.pm, target, src, c.passes,
		transform.WithVocabulary(c.cfg.Vocabulary),
		transform.WithLogger(c.logger))
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	changed := !bytes.Equal(out, src)
	formatted, err := c.runner.Run(ctx, target, src, out)
	if err != nil {
		return err
	}

	if c.cfg.DryRun {
		result.Status = StatusDryRun
		result.Content = formatted
		return nil
	}

	if err := c.write(path, target, src, formatted, result); err != nil {
		return err
	}
	if changed {
		result.Status = StatusConverted
	} else {
		result.Status = StatusUnchanged
	}
	return nil
}

// write renames path to target and writes content there. On failure the
// original file is put back under its old name.
func (c *Converter) write(path, target string, original, content []byte, result *FileResult) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	perm := info.Mode().Perm()

	if c.cfg.KeepOriginal {
		backup := path + ".bak"
		if err := os.WriteFile(backup, original, perm); err != nil {
			return fmt.Errorf("failed to write backup %s: %w", backup, err)
		}
		result.Backup = backup
	}

	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}

	if err := os.WriteFile(target, content, perm); err != nil {
		c.restore(path, target, original, perm)
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

func (c *Converter) restore(path, target string, original []byte, perm os.FileMode) {
	if err := os.Rename(target, path); err != nil {
		c.logger.Warn("failed to restore original name", "file", path, "error", err)
	}
	if err := os.WriteFile(path, original, perm); err != nil {
		c.logger.Error("failed to restore original content", "file", path, "error", err)
	}
}
