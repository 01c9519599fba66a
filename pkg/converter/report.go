package converter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Status is the outcome of converting one file.
type Status string

const (
	// StatusConverted means the .tsx file was written.
	StatusConverted Status = "converted"
	// StatusUnchanged means the passes produced no edits; the file was
	// still renamed.
	StatusUnchanged Status = "unchanged"
	// StatusDryRun means the output was produced but nothing was written.
	StatusDryRun Status = "dry-run"
	// StatusFailed means the file was left as it was.
	StatusFailed Status = "failed"
)

// FileResult records the conversion of one file.
type FileResult struct {
	Path     string        `yaml:"path"`
	Output   string        `yaml:"output,omitempty"`
	Backup   string        `yaml:"backup,omitempty"`
	Status   Status        `yaml:"status"`
	Error    string        `yaml:"error,omitempty"`
	Duration time.Duration `yaml:"duration"`

	// Content holds the converted source in dry-run mode.
	Content []byte `yaml:"-"`
	JobID   int    `yaml:"-"`
}

// Report summarizes a conversion run.
type Report struct {
	Started   time.Time     `yaml:"started"`
	Duration  time.Duration `yaml:"duration"`
	Passes    []string      `yaml:"passes"`
	Converted int           `yaml:"converted"`
	Unchanged int           `yaml:"unchanged"`
	Failed    int           `yaml:"failed"`
	Files     []*FileResult `yaml:"files"`
}

func (r *Report) add(result *FileResult) {
	switch result.Status {
	case StatusFailed:
		r.Failed++
	case StatusUnchanged:
		r.Unchanged++
	default:
		r.Converted++
	}
	r.Files = append(r.Files, result)
}

// sortFiles restores submission order, which is path order.
func (r *Report) sortFiles() {
	sort.SliceStable(r.Files, func(i, j int) bool {
		return r.Files[i].JobID < r.Files[j].JobID
	})
}

// HasFailures reports whether any file failed.
func (r *Report) HasFailures() bool {
	return r.Failed > 0
}

// WriteYAML encodes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// Save writes the YAML report to path.
func (r *Report) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	if err := r.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadReport reads a report written by Save.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}
