// Package engine implements the Extraction Engine (C5): the generic,
// language-agnostic per-file pipeline that turns a parsed syntax tree into
// Code Units, signature strings and source ranges, consulting only a
// Syntax Profile and a Language Adapter — never special-casing a language
// by name itself.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/buffer"
	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/profile"
	"github.com/skelforge/skelforge/pkg/queries"
	"github.com/skelforge/skelforge/pkg/tsparser"
	"github.com/skelforge/skelforge/pkg/unit"
)

// Engine drives one file's extraction pipeline per spec §4.1.1. It holds
// no per-file state itself; every AnalyzeFile call returns a private
// FileAnalysis the caller merges into a shared State.
type Engine struct {
	parsers *tsparser.Manager
	queries *queries.Manager
	logger  *slog.Logger
}

// New builds an Engine. A nil logger uses slog.Default().
func New(parsers *tsparser.Manager, qmanager *queries.Manager, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{parsers: parsers, queries: qmanager, logger: logger}
}

type pendingDefinition struct {
	node        ts.Node
	captureName string
	simpleName  string
}

func nodeKey(n ts.Node) [2]uint32 {
	return [2]uint32{uint32(n.StartByte()), uint32(n.EndByte())}
}

// AnalyzeFile implements spec §4.1.1's seven-step pipeline for one file,
// using ad's Profile and rendering hooks throughout. A cancelled ctx is
// checked before the (potentially expensive) parse step, per §5's
// "cancellation honored between files and at the start of each file's
// parse".
func (e *Engine) AnalyzeFile(ctx context.Context, path string, ad adapter.Adapter) (*FileAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := buffer.Load(path)
	if err != nil {
		e.logger.Warn("failed to read file", "file", path, "error", err)
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	isTSX := language.IsTSXFile(path)
	tree, err := e.parsers.Parse(buf.Src, ad.Language(), isTSX)
	if err != nil {
		e.logger.Warn("failed to parse file", "file", path, "error", err)
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return newFileAnalysis(path), nil
	}

	query, err := e.queries.Get(ad.Language(), isTSX)
	if err != nil {
		return nil, fmt.Errorf("query for %q: %w", path, err)
	}

	matches, err := queries.Execute(tree, query, buf.Src)
	if err != nil {
		return nil, fmt.Errorf("execute query on %q: %w", path, err)
	}

	prof := ad.Profile()
	ignored := ad.IgnoredCaptures()

	defsByNode := make(map[[2]uint32]*pendingDefinition)
	var order [][2]uint32
	var imports []string

	for _, m := range matches {
		nameByCategory := make(map[string]string)
		var defCaptures []queries.Capture
		for _, c := range m.Captures {
			if ignored[c.Category] {
				continue
			}
			switch c.Field {
			case "name":
				nameByCategory[c.Category] = strings.TrimSpace(c.Text)
			case "import":
				if text := strings.TrimSpace(c.Text); text != "" {
					imports = append(imports, text)
				}
			case "definition":
				defCaptures = append(defCaptures, c)
			}
		}
		for _, d := range defCaptures {
			key := nodeKey(d.Node)
			if _, exists := defsByNode[key]; exists {
				continue // first writer wins
			}
			simpleName := nameByCategory[d.Category]
			defsByNode[key] = &pendingDefinition{node: d.Node, captureName: d.Category, simpleName: simpleName}
			order = append(order, key)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := defsByNode[order[i]], defsByNode[order[j]]
		return a.node.StartByte() < b.node.StartByte()
	})

	fa := newFileAnalysis(path)
	packageName := ad.DeterminePackageName(path)
	byFQName := make(map[string]unit.CodeUnit)

	for _, key := range order {
		pd := defsByNode[key]
		simpleName := pd.simpleName
		if simpleName == "" {
			simpleName = ad.ExtractSimpleName(&adapter.Definition{
				Node: pd.node, CaptureName: pd.captureName, Source: buf.Src, File: path, PackageName: packageName,
			})
		}
		if simpleName == "" {
			e.logger.Warn("definition with no resolvable name, skipping", "file", path, "capture", pd.captureName)
			continue
		}

		chain := classChain(pd.node, prof, buf.Src)
		kind := prof.KindFor(pd.captureName)

		def := &adapter.Definition{
			Node:        pd.node,
			CaptureName: pd.captureName,
			SimpleName:  simpleName,
			Source:      buf.Src,
			File:        path,
			PackageName: packageName,
			ClassChain:  chain,
			Kind:        kind,
		}

		u, ok := ad.CreateCodeUnit(def)
		if !ok {
			continue
		}
		chain = def.ClassChain

		prefix := ad.GetVisibilityPrefix(def)
		decorators := collectDecorators(pd.node, prof, buf.Src)

		sig := e.buildSignature(def, prof, ad, prefix)
		if sig == "" {
			continue
		}
		if len(decorators) > 0 {
			sig = strings.Join(append(append([]string(nil), decorators...), sig), "\n")
		}

		fa.addSignature(u, sig)
		fa.addRange(u, byteRangeOf(pd.node))

		parentFQ := chain
		if packageName != "" && chain != "" {
			parentFQ = packageName + "." + chain
		}
		unitFQ := u.FQName()
		if _, exists := byFQName[unitFQ]; !exists {
			byFQName[unitFQ] = u
		}

		if chain == "" {
			appendTopLevelOnce(fa, u)
			continue
		}

		if parent, found := byFQName[parentFQ]; found {
			fa.addChild(parent, u)
		} else {
			e.logger.Warn("unresolvable parent, demoting to top-level", "file", path, "unit", unitFQ, "wantParent", parentFQ)
			appendTopLevelOnce(fa, u)
		}
	}

	if len(imports) > 0 {
		moduleUnit := unit.CodeUnit{Kind: unit.Module, File: path, PackageName: packageName, ShortName: unit.ModuleShortName}
		fa.Signatures[moduleUnit] = dedupStrings(imports)
		fa.TopLevel = append([]unit.CodeUnit{moduleUnit}, fa.TopLevel...)
	}

	fr := toAdapterFileResult(fa)
	ad.DedupeFieldArrows(fr)
	fa.TopLevel = fr.TopLevel

	return fa, nil
}

func appendTopLevelOnce(fa *FileAnalysis, u unit.CodeUnit) {
	for _, existing := range fa.TopLevel {
		if existing == u {
			return
		}
	}
	fa.TopLevel = append(fa.TopLevel, u)
}

func byteRangeOf(n ts.Node) unit.ByteRange {
	start := n.StartPosition()
	end := n.EndPosition()
	return unit.ByteRange{
		StartByte: uint32(n.StartByte()),
		EndByte:   uint32(n.EndByte()),
		StartLine: uint32(start.Row) + 1,
		EndLine:   uint32(end.Row) + 1,
	}
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// toAdapterFileResult adapts the engine's internal FileAnalysis to the
// adapter package's FileResult view, used only by DedupeFieldArrows.
func toAdapterFileResult(fa *FileAnalysis) *adapter.FileResult {
	return &adapter.FileResult{
		TopLevel:   fa.TopLevel,
		Children:   fa.Children,
		Signatures: fa.Signatures,
		Ranges:     fa.Ranges,
	}
}

// buildSignature dispatches on the definition's skeleton kind per spec
// §4.1.2 step 4.
func (e *Engine) buildSignature(def *adapter.Definition, prof *profile.Profile, ad adapter.Adapter, prefix string) string {
	switch def.Kind {
	case profile.ClassLike:
		return ad.RenderClassHeader(def, prefix)
	case profile.FunctionLike:
		generic := genericFunctionInfo(def, prof, ad)
		generic.Prefix = prefix
		return ad.BuildFunctionSkeleton(def, generic)
	case profile.FieldLike, profile.AliasLike:
		return ad.FormatFieldSignature(def, prefix)
	default:
		e.logger.Debug("unsupported skeleton kind, skipping", "file", def.File, "capture", def.CaptureName)
		return ""
	}
}
