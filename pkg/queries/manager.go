// Package queries compiles and caches the tree-sitter query for each
// supported language and executes it against a parsed tree, returning
// structured matches keyed by capture name.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/tsparser"
)

// Manager compiles and caches one query per (language, isTSX) pair plus the
// Go-receiver re-query, all lazily on first use.
type Manager struct {
	parsers *tsparser.Manager
	logger  *slog.Logger

	mu           sync.RWMutex
	cache        map[cacheKey]*ts.Query
	goReceiverMu sync.Mutex
	goReceiver   *ts.Query
}

type cacheKey struct {
	lang  language.Language
	isTSX bool
}

// NewManager builds a Manager bound to parsers for language-pointer lookup.
func NewManager(parsers *tsparser.Manager, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{parsers: parsers, logger: logger, cache: make(map[cacheKey]*ts.Query)}
}

// Get returns the compiled extraction query for lang, compiling and caching
// it on first request.
func (m *Manager) Get(lang language.Language, isTSX bool) (*ts.Query, error) {
	key := cacheKey{lang: lang, isTSX: isTSX}

	m.mu.RLock()
	q, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return q, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok = m.cache[key]; ok {
		return q, nil
	}

	source, err := queryStringFor(lang)
	if err != nil {
		return nil, err
	}

	tsLang, err := m.parsers.Language(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("language handle for %s: %w", lang, err)
	}

	q, qerr := ts.NewQuery(tsLang, source)
	if qerr != nil {
		return nil, fmt.Errorf("compile %s query: %s", lang, qerr.Message)
	}
	m.cache[key] = q
	m.logger.Debug("compiled query", "language", lang.String())
	return q, nil
}

// GoReceiver returns the compiled Go-receiver re-query, used only by
// pkg/adapter/golang to recover a method's receiver type.
func (m *Manager) GoReceiver() (*ts.Query, error) {
	m.goReceiverMu.Lock()
	defer m.goReceiverMu.Unlock()
	if m.goReceiver != nil {
		return m.goReceiver, nil
	}
	tsLang, err := m.parsers.Language(language.Go, false)
	if err != nil {
		return nil, fmt.Errorf("go language handle: %w", err)
	}
	q, qerr := ts.NewQuery(tsLang, GoReceiver)
	if qerr != nil {
		return nil, fmt.Errorf("compile go receiver query: %s", qerr.Message)
	}
	m.goReceiver = q
	return q, nil
}

func queryStringFor(lang language.Language) (string, error) {
	switch lang {
	case language.TypeScript:
		return TypeScript, nil
	case language.JavaScript:
		return JavaScript, nil
	case language.Go:
		return Go, nil
	default:
		return "", fmt.Errorf("no extraction query for language: %s", lang)
	}
}

// Match is one pattern match from Execute: the node captured under each
// capture name reachable from that match.
type Match struct {
	Captures []Capture
}

// Capture is a single named node captured by a query match.
type Capture struct {
	Name     string
	Category string
	Field    string
	Node     ts.Node
	Text     string
}

// Execute runs query over tree's root node against source and returns every
// match's captures, text already sliced out.
func Execute(tree *ts.Tree, query *ts.Query, source []byte) ([]Match, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}
	return ExecuteNode(tree.RootNode(), query, source)
}

// ExecuteNode runs query over a single node (not necessarily a tree's
// root) against source, used by pkg/adapter/golang to re-run GoReceiver
// against one already-matched method_declaration node rather than the
// whole file.
func ExecuteNode(node ts.Node, query *ts.Query, source []byte) ([]Match, error) {
	if query == nil {
		return nil, fmt.Errorf("query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, node, source)
	names := query.CaptureNames()

	var matches []Match
	for {
		m := iter.Next()
		if m == nil {
			break
		}
		captures := make([]Capture, 0, len(m.Captures))
		for _, c := range m.Captures {
			var name string
			if int(c.Index) < len(names) {
				name = names[c.Index]
			}
			category, field := splitCaptureName(name)
			captures = append(captures, Capture{
				Name:     name,
				Category: category,
				Field:    field,
				Node:     c.Node,
				Text:     c.Node.Utf8Text(source),
			})
		}
		matches = append(matches, Match{Captures: captures})
	}
	return matches, nil
}

// Close releases every compiled query. The Manager must not be used after.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.cache {
		q.Close()
	}
	m.cache = make(map[cacheKey]*ts.Query)
	if m.goReceiver != nil {
		m.goReceiver.Close()
		m.goReceiver = nil
	}
}

func splitCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}
