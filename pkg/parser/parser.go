package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ErrSyntax is returned by Preflight when the input does not parse cleanly.
var ErrSyntax = errors.New("syntax error")

// grammarKey uniquely identifies a parser pool (language + TSX variant)
type grammarKey struct {
	lang  Language
	isTSX bool
}

func (k grammarKey) String() string {
	if k.lang == LanguageTypeScript && k.isTSX {
		return "tsx"
	}
	return k.lang.String()
}

// ParserManager manages tree-sitter parsers with lazy, per-grammar pools.
//
// The transform pipeline parses everything with the TSX grammar: legacy
// JavaScript with JSX is accepted by it, and so is the TypeScript the
// passes emit. The plain JavaScript grammar is only used by Preflight to
// reject input that is not valid JavaScript in the first place.
//
// Memory Management:
//   - ParserManager owns the pools and must be closed via Close()
//   - Callers own Tree instances and must call tree.Close() after use
//
// Thread Safety:
//   - Safe for concurrent use; each grammar pool holds up to
//     util.GetOptimalPoolSize() parsers
//
// Example:
//
//	manager := NewParserManager(logger)
//	defer manager.Close()
//
//	tree, err := manager.ParseTSX([]byte("class A extends React.Component {}"))
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ParserManager struct {
	pools map[grammarKey]*parserPool

	// mutex guards pools and stats
	mutex sync.RWMutex

	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewParserManager creates a new ParserManager instance.
//
// The returned manager must be closed via Close() to free resources.
func NewParserManager(logger *slog.Logger) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &ParserManager{
		pools:  make(map[grammarKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source code using the specified language grammar.
//
// The isTSX parameter is only relevant for TypeScript - it enables JSX support.
// Returns a Tree that MUST be closed by the caller. Trees containing ERROR
// nodes are still returned: partial trees are useful to the passes, which
// leave anything they do not recognise untouched.
func (pm *ParserManager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	pm.mutex.Lock()
	pm.stats.parsesCalled++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}

	return tree, nil
}

// ParseTSX parses source with the grammar every transform pass works on.
func (pm *ParserManager) ParseTSX(source []byte) (*ts.Tree, error) {
	return pm.Parse(source, LanguageTypeScript, true)
}

// Preflight parses source with the grammar matching filePath and fails with
// ErrSyntax if the tree contains errors. A file that does not parse as what
// it claims to be is a fatal, per-file error for the converter.
//
// .js/.jsx files are checked with the JavaScript grammar (which accepts JSX),
// .tsx with TSX and .ts with plain TypeScript.
func (pm *ParserManager) Preflight(filePath string, source []byte) error {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return fmt.Errorf("unsupported file extension: %s", filePath)
	}

	tree, err := pm.Parse(source, lang, IsTSXFile(filePath))
	if err != nil {
		return err
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	if pos, ok := FirstErrorPosition(root); ok {
		return fmt.Errorf("%w in %s at %d:%d", ErrSyntax, filePath, pos.Row+1, pos.Column+1)
	}
	return fmt.Errorf("%w in %s", ErrSyntax, filePath)
}

// FirstErrorPosition returns the start of the first ERROR or MISSING node
// in document order.
func FirstErrorPosition(node *ts.Node) (ts.Point, bool) {
	if node == nil || !node.HasError() {
		return ts.Point{}, false
	}
	if node.IsError() || node.IsMissing() {
		return node.StartPosition(), true
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if pos, ok := FirstErrorPosition(node.Child(i)); ok {
			return pos, true
		}
	}
	return node.StartPosition(), true
}

// Close releases all parser pool resources.
//
// MUST be called when ParserManager is no longer needed to avoid memory leaks.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing ParserManager",
		"pools", len(pm.pools),
		"parses_called", pm.stats.parsesCalled)

	for _, pool := range pm.pools {
		if pool != nil {
			pool.close()
		}
	}
	pm.pools = make(map[grammarKey]*parserPool)

	return nil
}

// getOrCreatePool returns an existing parser pool or creates a new one.
// Thread-safe using double-checked locking pattern.
func (pm *ParserManager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := grammarKey{lang: lang, isTSX: isTSX && lang == LanguageTypeScript}

	pm.mutex.RLock()
	pool, exists := pm.pools[key]
	pm.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	if pool, exists = pm.pools[key]; exists {
		return pool, nil
	}

	langPtr, err := pm.GetLanguagePointer(key.lang, key.isTSX)
	if err != nil {
		return nil, err
	}

	pool = newParserPool(key, langPtr, getDefaultPoolSize(), pm.logger)
	pm.pools[key] = pool

	pm.logger.Debug("created new parser pool", "grammar", key.String())

	return pool, nil
}

// GetLanguagePointer returns the unsafe.Pointer to the tree-sitter language grammar.
func (pm *ParserManager) GetLanguagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil

	case LanguageJavaScript:
		return ts_javascript.Language(), nil

	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	totalParsers := 0
	for _, pool := range pm.pools {
		totalParsers += pool.getCreatedCount()
	}

	return ParserStats{
		ParsersCreated: totalParsers,
		ParsesCalled:   pm.stats.parsesCalled,
	}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	// ParsersCreated is the total number of parser instances created
	ParsersCreated int

	// ParsesCalled is the total number of Parse() calls
	ParsesCalled int
}
