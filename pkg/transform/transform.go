// Package transform holds the rewrite passes that migrate a React source
// file from runtime propTypes to static types, and the pipeline that runs
// them in order.
//
// Every pass is a Transform: it reads one syntax.File and returns a new
// one. Passes share nothing but the Context they are built from, so any
// subset can run in any order, though only the default order yields a
// fully migrated file.
package transform

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gnana997/react2ts/pkg/oracle"
	"github.com/gnana997/react2ts/pkg/parser"
	"github.com/gnana997/react2ts/pkg/proptypes"
	"github.com/gnana997/react2ts/pkg/syntax"
)

// ErrUnknownPass is returned by PassByName for unregistered names.
var ErrUnknownPass = errors.New("unknown pass")

// Transform rewrites one file. It returns its input unchanged when it has
// nothing to do.
type Transform func(*syntax.File) (*syntax.File, error)

// PassFactory binds a pass to a Context.
type PassFactory func(ctx *Context) Transform

// Context carries what passes need from outside the tree.
type Context struct {
	Oracle     oracle.Oracle
	Vocabulary proptypes.Vocabulary
	Logger     *slog.Logger
}

// NewContext returns a Context with a syntactic oracle and defaults filled in.
func NewContext(vocab proptypes.Vocabulary, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	vocab = vocab.WithDefaults()
	return &Context{
		Oracle:     oracle.New(vocab, 0, logger),
		Vocabulary: vocab,
		Logger:     logger,
	}
}

func (c *Context) normalize() *Context {
	out := *c
	out.Vocabulary = out.Vocabulary.WithDefaults()
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	if out.Oracle == nil {
		out.Oracle = oracle.New(out.Vocabulary, 0, out.Logger)
	}
	return &out
}

// Pass is a registered pass.
type Pass struct {
	Name        string
	Description string
	Factory     PassFactory
}

var registry = []Pass{
	{"hoist-prop-types", "move `X.propTypes = {...}` into class X as a static member", HoistPropTypes},
	{"infer-class-types", "infer Props and State type arguments for component classes", InferClassTypes},
	{"infer-stateless-types", "type function components with propTypes as stateless components", InferStatelessTypes},
	{"collapse-intersections", "merge type aliases that intersect plain object types", CollapseIntersections},
	{"strip-prop-types-assignments", "remove top-level `X.propTypes = ...` statements", StripPropTypesAssignments},
	{"strip-static-prop-types", "remove static propTypes members from component classes", StripStaticPropTypes},
	{"strip-prop-types-imports", "remove prop-types imports and PropTypes bindings", StripPropTypesImports},
}

// Passes returns the registered passes in default order.
func Passes() []Pass {
	return append([]Pass(nil), registry...)
}

// DefaultPasses returns the full migration in its required order: hoist,
// class inference, stateless inference, collapse, then the three strips.
func DefaultPasses() []PassFactory {
	out := make([]PassFactory, 0, len(registry))
	for _, p := range registry {
		out = append(out, p.Factory)
	}
	return out
}

// DefaultPassNames returns the names of DefaultPasses.
func DefaultPassNames() []string {
	out := make([]string, 0, len(registry))
	for _, p := range registry {
		out = append(out, p.Name)
	}
	return out
}

// PassByName looks up a registered pass.
func PassByName(name string) (PassFactory, error) {
	for _, p := range registry {
		if p.Name == name {
			return p.Factory, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPass, name)
}

// PassesByName resolves an ordered list of names. An empty list yields
// DefaultPasses.
func PassesByName(names []string) ([]PassFactory, error) {
	if len(names) == 0 {
		return DefaultPasses(), nil
	}
	out := make([]PassFactory, 0, len(names))
	for _, name := range names {
		p, err := PassByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// TransformFile feeds file through passes in order. Intermediate files are
// closed; the input file is left to the caller and the result is owned by
// the caller as well (it may be the input itself).
func TransformFile(ctx *Context, file *syntax.File, passes []PassFactory) (*syntax.File, error) {
	ctx = ctx.normalize()

	current := file
	for i, factory := range passes {
		next, err := factory(ctx)(current)
		if err != nil {
			if current != file {
				current.Close()
			}
			return nil, fmt.Errorf("pass %d on %s: %w", i, file.Path, err)
		}
		if next == current {
			continue
		}

		if d, ok := next.FirstError(); ok {
			if _, had := current.FirstError(); !had {
				ctx.Logger.Warn("pass output has syntax errors",
					"file", file.Path,
					"pass", i,
					"position", d.String())
			}
		}
		if current != file {
			current.Close()
		}
		current = next
	}
	return current, nil
}

// Option configures TransformSource.
type Option func(*Context)

// WithOracle replaces the syntactic oracle.
func WithOracle(o oracle.Oracle) Option {
	return func(c *Context) { c.Oracle = o }
}

// WithVocabulary sets the framework spellings.
func WithVocabulary(v proptypes.Vocabulary) Option {
	return func(c *Context) { c.Vocabulary = v }
}

// WithLogger sets the logger passes report to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.Logger = l }
}

// TransformSource parses src, runs passes over it and returns the printed
// result. A nil pass list runs DefaultPasses.
func TransformSource(pm *parser.ParserManager, path string, src []byte, passes []PassFactory, opts ...Option) ([]byte, error) {
	ctx := &Context{Vocabulary: proptypes.DefaultVocabulary()}
	for _, opt := range opts {
		opt(ctx)
	}
	if passes == nil {
		passes = DefaultPasses()
	}

	file, err := syntax.Parse(pm, path, src)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	out, err := TransformFile(ctx, file, passes)
	if err != nil {
		return nil, err
	}
	if out != file {
		defer out.Close()
	}
	return out.Source, nil
}
