// Package tsparser owns the Grammar Handle (C2): per-(language, variant)
// pools of thread-local tree-sitter parsers, sized to match the harness
// worker pool so neither blocks waiting on the other.
package tsparser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/poolsize"
)

type poolKey struct {
	lang  language.Language
	isTSX bool
}

// Manager lazily creates and pools parsers per language, and compiles
// tree-sitter Language handles used both for parsing and for query
// compilation in pkg/queries.
type Manager struct {
	mu     sync.RWMutex
	pools  map[poolKey]*parserPool
	logger *slog.Logger

	statsMu      sync.Mutex
	parsesCalled int
}

// NewManager builds a Manager. A nil logger uses slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{pools: make(map[poolKey]*parserPool), logger: logger}
}

// Parse parses source with lang's grammar, using the TSX variant when
// isTSX is true (TypeScript only; ignored otherwise). The returned Tree
// must be closed by the caller.
func (m *Manager) Parse(source []byte, lang language.Language, isTSX bool) (*ts.Tree, error) {
	if lang == language.Unknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.statsMu.Lock()
	m.parsesCalled++
	m.statsMu.Unlock()

	pool, err := m.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}
	if tree.RootNode().HasError() {
		m.logger.Warn("parse tree contains errors", "language", lang.String())
	}
	return tree, nil
}

// ParseFile detects lang/TSX-ness from filePath and parses source with it.
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := language.Detect(filePath)
	if lang == language.Unknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(source, lang, language.IsTSXFile(filePath))
}

func (m *Manager) getOrCreatePool(lang language.Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	m.mu.RLock()
	pool, ok := m.pools[key]
	m.mu.RUnlock()
	if ok {
		return pool, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if pool, ok = m.pools[key]; ok {
		return pool, nil
	}

	langPtr, err := m.LanguagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}

	size := poolsize.Optimal()
	pool = newParserPool(poolLabel(lang, isTSX), langPtr, size, m.logger)
	m.pools[key] = pool
	m.logger.Debug("created new parser pool", "language", lang.String(), "isTSX", isTSX, "maxSize", size)
	return pool, nil
}

func poolLabel(lang language.Language, isTSX bool) string {
	if isTSX {
		return "tsx"
	}
	return lang.String()
}

// LanguagePointer returns the unsafe.Pointer tree-sitter binding for lang,
// used both here and by pkg/queries for query compilation.
func (m *Manager) LanguagePointer(lang language.Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case language.TypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case language.JavaScript:
		return ts_javascript.Language(), nil
	case language.Go:
		return ts_go.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// Language wraps LanguagePointer in a ts.Language, ready for ts.NewQuery.
func (m *Manager) Language(lang language.Language, isTSX bool) (*ts.Language, error) {
	ptr, err := m.LanguagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}
	return ts.NewLanguage(ptr), nil
}

// Close releases every parser pool. After Close the Manager must not be
// used again.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("closing parser manager", "parses_called", m.parsesCalled)
	for key, pool := range m.pools {
		pool.close()
		m.logger.Debug("closed parser pool", "language", key.lang.String(), "isTSX", key.isTSX)
	}
	m.pools = make(map[poolKey]*parserPool)
	return nil
}

// Stats reports cumulative parser usage.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

// Stats returns parser usage counters across all pools.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, pool := range m.pools {
		total += pool.createdCount()
	}

	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return Stats{ParsersCreated: total, ParsesCalled: m.parsesCalled}
}
