// Package format post-processes converted files with an external code
// formatter. Style options not set explicitly are detected from the
// original source so the formatted output keeps the project's look.
package format

import (
	"strconv"
	"strings"

	"github.com/gnana997/react2ts/pkg/syntax"
)

// Options are formatter settings. Nil fields are unset.
type Options struct {
	PrintWidth    *int    `mapstructure:"print_width" yaml:"print_width,omitempty" json:"print_width,omitempty"`
	TabWidth      *int    `mapstructure:"tab_width" yaml:"tab_width,omitempty" json:"tab_width,omitempty"`
	UseTabs       *bool   `mapstructure:"use_tabs" yaml:"use_tabs,omitempty" json:"use_tabs,omitempty"`
	Semi          *bool   `mapstructure:"semi" yaml:"semi,omitempty" json:"semi,omitempty"`
	SingleQuote   *bool   `mapstructure:"single_quote" yaml:"single_quote,omitempty" json:"single_quote,omitempty"`
	TrailingComma *string `mapstructure:"trailing_comma" yaml:"trailing_comma,omitempty" json:"trailing_comma,omitempty"`
}

// Merge returns o with every field set in override replaced.
func (o Options) Merge(override Options) Options {
	if override.PrintWidth != nil {
		o.PrintWidth = override.PrintWidth
	}
	if override.TabWidth != nil {
		o.TabWidth = override.TabWidth
	}
	if override.UseTabs != nil {
		o.UseTabs = override.UseTabs
	}
	if override.Semi != nil {
		o.Semi = override.Semi
	}
	if override.SingleQuote != nil {
		o.SingleQuote = override.SingleQuote
	}
	if override.TrailingComma != nil {
		o.TrailingComma = override.TrailingComma
	}
	return o
}

// Detect infers indentation, semicolon use, quote style and line width
// from src.
func Detect(src []byte) Options {
	var o Options

	indent := syntax.DetectIndent(src)
	useTabs := indent == "\t"
	o.UseTabs = &useTabs
	if !useTabs {
		width := len(indent)
		o.TabWidth = &width
	}

	var semi, bare, single, double, widest int
	for _, line := range strings.Split(string(src), "\n") {
		if n := len(line); n > widest {
			widest = n
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "//"), strings.HasPrefix(trimmed, "*"), strings.HasPrefix(trimmed, "/*"):
			continue
		case strings.HasSuffix(trimmed, ";"):
			semi++
		case strings.HasSuffix(trimmed, ")") || strings.HasSuffix(trimmed, "'") || strings.HasSuffix(trimmed, "\""):
			bare++
		}
		single += strings.Count(trimmed, "'")
		double += strings.Count(trimmed, "\"")
	}

	useSemi := semi >= bare
	o.Semi = &useSemi
	singleQuote := single > double
	o.SingleQuote = &singleQuote
	if widest < 80 {
		widest = 80
	}
	o.PrintWidth = &widest
	return o
}

// Flags renders o as prettier command line flags.
func (o Options) Flags() []string {
	var out []string
	if o.PrintWidth != nil {
		out = append(out, "--print-width", strconv.Itoa(*o.PrintWidth))
	}
	if o.TabWidth != nil {
		out = append(out, "--tab-width", strconv.Itoa(*o.TabWidth))
	}
	if o.UseTabs != nil && *o.UseTabs {
		out = append(out, "--use-tabs")
	}
	if o.Semi != nil && !*o.Semi {
		out = append(out, "--no-semi")
	}
	if o.SingleQuote != nil && *o.SingleQuote {
		out = append(out, "--single-quote")
	}
	if o.TrailingComma != nil {
		out = append(out, "--trailing-comma", *o.TrailingComma)
	}
	return out
}
