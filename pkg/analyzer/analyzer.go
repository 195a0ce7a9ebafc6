// Package analyzer implements the external interface (§6): the read-only
// accessor surface that GUI, chat and preview-panel collaborators consume
// instead of touching pkg/engine's internal maps directly. It owns the
// mmap-backed source cache for byte-range fetches and an LRU cache of
// reconstructed skeleton strings, keyed by top-level FQN, so repeated
// GetSkeleton calls for members of the same class don't re-walk the
// parent-child tree.
package analyzer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/buffer"
	"github.com/skelforge/skelforge/pkg/engine"
	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/reconstruct"
	"github.com/skelforge/skelforge/pkg/unit"
)

// ErrSymbolNotFound is returned by GetClassSource (§7 "Symbol not found in
// public accessors") when fqName has no recorded definition.
var ErrSymbolNotFound = errors.New("symbol not found")

// Adapters routes a detected language to the adapter that renders it,
// mirroring pkg/harness.Adapters without importing pkg/harness (the
// analyzer only needs to read skeletons, never to run a scan).
type Adapters map[language.Language]adapter.Adapter

// Skeleton pairs a top-level Code Unit with its reconstructed text, the
// element type GetSkeletons returns in source order.
type Skeleton struct {
	Unit unit.CodeUnit
	Text string
}

// Config controls cache sizing. A zero Config is valid and uses defaults.
type Config struct {
	// SkeletonCacheSize bounds the LRU cache of reconstructed top-level
	// skeletons. Zero uses a default of 512 entries.
	SkeletonCacheSize int
	// Files backs GetClassSource/GetMethodSource byte-range fetches. Nil
	// builds a buffer.FileCache with buffer.DefaultFileCacheConfig.
	Files buffer.FileCache
}

// Analyzer is the public, read-only view over a completed engine.State.
// It is safe for concurrent use: State is itself immutable once a harness
// run has finished merging into it (§3 "Lifecycle"), and the only mutable
// pieces here — the LRU cache and the file cache — are internally locked.
type Analyzer struct {
	state    *engine.State
	adapters Adapters
	files    buffer.FileCache

	fqIndex  map[string]unit.CodeUnit
	parentOf map[unit.CodeUnit]unit.CodeUnit

	skeletons *lru.Cache[string, string]
}

// New builds an Analyzer over state. adapters must cover every language
// state's units were extracted from; a unit whose file detects to a
// language absent from adapters causes skeleton accessors for it to report
// "not found" rather than panicking.
func New(state *engine.State, adapters Adapters, cfg Config) (*Analyzer, error) {
	if cfg.SkeletonCacheSize <= 0 {
		cfg.SkeletonCacheSize = 512
	}
	cache, err := lru.New[string, string](cfg.SkeletonCacheSize)
	if err != nil {
		return nil, fmt.Errorf("build skeleton cache: %w", err)
	}
	files := cfg.Files
	if files == nil {
		files = buffer.NewFileCache(buffer.DefaultFileCacheConfig())
	}

	a := &Analyzer{
		state:     state,
		adapters:  adapters,
		files:     files,
		fqIndex:   make(map[string]unit.CodeUnit),
		parentOf:  make(map[unit.CodeUnit]unit.CodeUnit),
		skeletons: cache,
	}
	a.buildIndices()
	return a, nil
}

func (a *Analyzer) buildIndices() {
	units := a.state.AllUnits()
	for _, u := range units {
		a.fqIndex[u.FQName()] = u
	}
	for _, u := range units {
		for _, child := range a.state.Children(u) {
			a.parentOf[child] = u
		}
	}
}

// Close releases the underlying mmap file cache. The Analyzer must not be
// used after Close.
func (a *Analyzer) Close() error {
	return a.files.Close()
}

// IsEmpty reports whether the underlying state holds any analyzed file.
func (a *Analyzer) IsEmpty() bool {
	return len(a.state.Files()) == 0
}

func (a *Analyzer) adapterFor(file string) adapter.Adapter {
	return a.adapters[language.Detect(file)]
}

// topLevelParent walks u's recorded parent chain up to its root, the unit
// with an empty class chain that reconstruction always starts from.
func (a *Analyzer) topLevelParent(u unit.CodeUnit) unit.CodeUnit {
	cur := u
	for {
		parent, ok := a.parentOf[cur]
		if !ok {
			return cur
		}
		cur = parent
	}
}

// reconstructTop reconstructs u's full skeleton (u must be a top-level
// unit) and applies the adapter's cleanup pass, caching the result by FQN.
func (a *Analyzer) reconstructTop(u unit.CodeUnit, ad adapter.Adapter) (string, error) {
	key := u.FQName()
	if cached, ok := a.skeletons.Get(key); ok {
		return cached, nil
	}

	raw := reconstruct.Reconstruct(u, a.state, a.state, ad, 0)
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		a.skeletons.Add(key, "")
		return "", nil
	}

	src, err := a.sourceBytes(u.File)
	if err != nil {
		return "", err
	}

	lines := strings.Split(raw, "\n")
	lines = ad.CleanupSkeletonLines(lines, src)
	text := strings.Join(lines, "\n")

	a.skeletons.Add(key, text)
	return text, nil
}

func (a *Analyzer) sourceBytes(file string) ([]byte, error) {
	mf, err := a.files.Get(file)
	if err != nil {
		return nil, err
	}
	return []byte(mf.Data), nil
}

// GetSkeletons returns every top-level declaration in file alongside its
// reconstructed skeleton, in source order (§6, §8 property 3: the returned
// units are a subset of topLevelDeclarations[file]).
func (a *Analyzer) GetSkeletons(file string) ([]Skeleton, error) {
	ad := a.adapterFor(file)
	if ad == nil {
		return nil, fmt.Errorf("no adapter registered for %q", file)
	}
	top := a.state.TopLevelDeclarations(file)
	out := make([]Skeleton, 0, len(top))
	for _, u := range top {
		text, err := a.reconstructTop(u, ad)
		if err != nil {
			return nil, err
		}
		out = append(out, Skeleton{Unit: u, Text: text})
	}
	return out, nil
}

// GetSkeleton returns the reconstructed skeleton of fqName's top-level
// parent (§8 property 6's round-trip: GetSkeleton(u.FQName()) equals
// reconstructing u's top-level parent).
func (a *Analyzer) GetSkeleton(fqName string) (string, bool) {
	u, ok := a.fqIndex[fqName]
	if !ok {
		return "", false
	}
	ad := a.adapterFor(u.File)
	if ad == nil {
		return "", false
	}
	top := a.topLevelParent(u)
	text, err := a.reconstructTop(top, ad)
	if err != nil {
		return "", false
	}
	return text, true
}

// GetSkeletonHeader returns the first non-empty line of fqName's skeleton.
func (a *Analyzer) GetSkeletonHeader(fqName string) (string, bool) {
	skeleton, ok := a.GetSkeleton(fqName)
	if !ok {
		return "", false
	}
	return reconstruct.Header(skeleton), true
}

// GetDeclarationsInFile returns the BFS closure of file's top-level units
// and all their descendants.
func (a *Analyzer) GetDeclarationsInFile(file string) []unit.CodeUnit {
	seen := make(map[unit.CodeUnit]bool)
	var out []unit.CodeUnit
	queue := append([]unit.CodeUnit(nil), a.state.TopLevelDeclarations(file)...)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
		queue = append(queue, a.state.Children(u)...)
	}
	return out
}

// GetAllDeclarations returns every class-kind Code Unit across the whole
// analyzed project, sorted by FQN for deterministic output.
func (a *Analyzer) GetAllDeclarations() []unit.CodeUnit {
	var out []unit.CodeUnit
	for _, u := range a.state.AllUnits() {
		if u.Kind == unit.Class {
			out = append(out, u)
		}
	}
	sortByFQName(out)
	return out
}

// GetMembersInClass returns fqName's ordered children, or nil if fqName is
// absent or not class-like.
func (a *Analyzer) GetMembersInClass(fqName string) []unit.CodeUnit {
	u, ok := a.fqIndex[fqName]
	if !ok || u.Kind != unit.Class {
		return nil
	}
	return a.state.Children(u)
}

// GetDefinition looks up the Code Unit for fqName.
func (a *Analyzer) GetDefinition(fqName string) (unit.CodeUnit, bool) {
	u, ok := a.fqIndex[fqName]
	return u, ok
}

// GetFileFor returns the file fqName was recorded in.
func (a *Analyzer) GetFileFor(fqName string) (string, bool) {
	u, ok := a.fqIndex[fqName]
	if !ok {
		return "", false
	}
	return a.state.FileFor(u)
}

// SearchDefinitions returns every Code Unit whose FQN contains substring,
// sorted by FQN.
func (a *Analyzer) SearchDefinitions(substring string) []unit.CodeUnit {
	var out []unit.CodeUnit
	for fq, u := range a.fqIndex {
		if strings.Contains(fq, substring) {
			out = append(out, u)
		}
	}
	sortByFQName(out)
	return out
}

// GetClassSource returns the byte-slice of fqName's first recorded source
// range, or ErrSymbolNotFound if fqName has no recorded definition.
func (a *Analyzer) GetClassSource(fqName string) (string, error) {
	u, ok := a.fqIndex[fqName]
	if !ok {
		return "", ErrSymbolNotFound
	}
	ranges := a.state.Ranges(u)
	if len(ranges) == 0 {
		return "", ErrSymbolNotFound
	}
	r := ranges[0]
	return a.files.FetchCode(u.File, r.StartByte, r.EndByte)
}

// GetMethodSource returns the byte-slices of every recorded range for
// fqName, joined with a blank line (overloads concatenate in recorded
// order).
func (a *Analyzer) GetMethodSource(fqName string) (string, bool) {
	u, ok := a.fqIndex[fqName]
	if !ok {
		return "", false
	}
	ranges := a.state.Ranges(u)
	if len(ranges) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		code, err := a.files.FetchCode(u.File, r.StartByte, r.EndByte)
		if err != nil {
			return "", false
		}
		parts = append(parts, code)
	}
	return strings.Join(parts, "\n\n"), true
}

// GetSymbols returns the unqualified names (last dotted/dollar-chain
// segment) reachable by BFS over units' children, deduped and sorted.
func (a *Analyzer) GetSymbols(units []unit.CodeUnit) []string {
	seen := make(map[string]bool)
	visited := make(map[unit.CodeUnit]bool)
	var names []string

	queue := append([]unit.CodeUnit(nil), units...)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if visited[u] {
			continue
		}
		visited[u] = true

		name := unit.LastSegment(u.ShortName)
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		queue = append(queue, a.state.Children(u)...)
	}

	sort.Strings(names)
	return names
}

func sortByFQName(units []unit.CodeUnit) {
	sort.Slice(units, func(i, j int) bool {
		return units[i].FQName() < units[j].FQName()
	})
}
