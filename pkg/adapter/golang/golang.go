// Package golang is the Go Language Adapter (C6), the structurally
// different sibling to pkg/adapter/typescript and pkg/adapter/javascript:
// no class keyword, package name read from the source rather than the
// file path, and a method's receiver type recovered through a second,
// receiver-only re-query rather than carried by the extraction query's
// own captures (§9's preserve-verbatim Go-receiver rule).
package golang

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/profile"
	"github.com/skelforge/skelforge/pkg/queries"
	"github.com/skelforge/skelforge/pkg/unit"
)

// Adapter is the Go Language Adapter. It holds the queries.Manager so
// CreateCodeUnit can re-run GoReceiver against a single matched
// method_declaration node.
type Adapter struct {
	profile *profile.Profile
	queries *queries.Manager
}

// New builds the Go adapter. qmanager must be the same Manager used to
// compile the primary extraction query, since GoReceiver shares its
// compiled-query cache and underlying Go language handle.
func New(qmanager *queries.Manager) *Adapter {
	return &Adapter{profile: buildProfile(), queries: qmanager}
}

var _ adapter.Adapter = (*Adapter)(nil)

func buildProfile() *profile.Profile {
	return &profile.Profile{
		ClassLikeNodeTypes:      profile.NodeSet("type_declaration"),
		FunctionLikeNodeTypes:   profile.NodeSet("function_declaration", "method_declaration"),
		FieldLikeNodeTypes:      profile.NodeSet("const_spec", "var_spec", "field_declaration"),
		DecoratorNodeTypes:      profile.NodeSet(),
		ModifierNodeTypes:       profile.NodeSet(),
		IdentifierFieldName:     "name",
		BodyFieldName:           "body",
		ParametersFieldName:     "parameters",
		ReturnTypeFieldName:     "result",
		TypeParametersFieldName: "type_parameters",
		AsyncKeywordNodeType:    "", // Go has no async keyword
		CaptureConfiguration: map[string]profile.SkeletonKind{
			"class":    profile.ClassLike,
			"function": profile.FunctionLike,
			"variable": profile.FieldLike,
			"type":     profile.AliasLike,
		},
	}
}

func (a *Adapter) Language() language.Language { return language.Go }
func (a *Adapter) Profile() *profile.Profile   { return a.profile }

// DeterminePackageName reads the file's own package_clause rather than
// using the directory-path convention jsfamily's two adapters share — Go
// package names are declared in source, not inferred from the filesystem.
// A parse failure here (unreadable file, not yet parsed) falls back to an
// empty package name; the engine always has the parsed source available
// by the time this is actually called from AnalyzeFile, since it passes
// the same path already successfully parsed.
func (a *Adapter) DeterminePackageName(file string) string {
	return packageNameFromPath(file)
}

// ExtractSimpleName is the Profile.IdentifierFieldName fallback; Go's
// query supplies a companion ".name" capture for every definition, so
// this is not reached for captured Go definitions.
func (a *Adapter) ExtractSimpleName(def *adapter.Definition) string {
	return adapter.DefaultExtractSimpleName(def, a.profile)
}

// CreateCodeUnit implements §4.2.2's receiver-recovery rule: Go's grammar
// nests a type's methods nowhere near its type_declaration, so the
// engine's generic ancestor-walking classChain is always empty for a
// method_declaration. For that one capture category, a second query
// against just this matched node recovers the receiver's base type
// identifier (stripping a leading "*" for a pointer receiver) and that
// becomes the class chain. A struct field_declaration likewise gets the
// name of its enclosing type_spec as its class chain, since the generic
// walk reads no name from a type_declaration. Every other capture
// category uses the shared default unchanged.
func (a *Adapter) CreateCodeUnit(def *adapter.Definition) (unit.CodeUnit, bool) {
	if def.CaptureName == "function" && def.Node.Kind() == "method_declaration" {
		if receiver := a.receiverTypeOf(def.Node, def.Source); receiver != "" {
			def.ClassChain = receiver
		}
	}
	if def.Node.Kind() == "field_declaration" && def.ClassChain == "" {
		for cur := def.Node.Parent(); cur != nil; cur = cur.Parent() {
			if cur.Kind() == "type_spec" {
				if name := cur.ChildByFieldName("name"); name != nil {
					def.ClassChain = name.Utf8Text(def.Source)
				}
				break
			}
		}
	}
	return adapter.DefaultCreateCodeUnit(def)
}

// receiverTypeOf re-runs GoReceiver against node and returns the base
// type identifier of its receiver, stripped of a leading pointer "*".
func (a *Adapter) receiverTypeOf(node ts.Node, source []byte) string {
	query, err := a.queries.GoReceiver()
	if err != nil {
		return ""
	}
	matches, err := queries.ExecuteNode(node, query, source)
	if err != nil {
		return ""
	}
	for _, m := range matches {
		for _, c := range m.Captures {
			if c.Category == "receiver" && c.Field == "type" {
				return strings.TrimPrefix(strings.TrimSpace(c.Text), "*")
			}
		}
	}
	return ""
}

// RenderClassHeader renders a struct/interface type declaration's header.
// Go has no class keyword, so the rendered line reads "type Name struct {"
// / "type Name interface {". Unlike the jsfamily adapters' named "body"
// field, a struct_type/interface_type node carries its field/method list
// as an unnamed child (field_declaration_list, or bare method_elem
// siblings), so the cut point is found by locating that node's own
// opening brace instead of a named body field.
func (a *Adapter) RenderClassHeader(def *adapter.Definition, prefix string) string {
	spec := typeSpecOf(def.Node)
	if spec == nil {
		return ""
	}
	typeNode := spec.ChildByFieldName("type")
	if typeNode == nil {
		return ""
	}

	start := int(def.Node.StartByte())
	end := braceStart(*typeNode, def.Source)
	if start > end || start < 0 || end > len(def.Source) {
		return ""
	}

	rest := strings.TrimSpace(string(def.Source[start:end]))

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(rest)
	b.WriteString(" {")
	return b.String()
}

// braceStart returns the byte offset of node's first literal "{", or its
// end byte if it has none.
func braceStart(node ts.Node, source []byte) int {
	text := node.Utf8Text(source)
	if idx := strings.IndexByte(text, '{'); idx != -1 {
		return int(node.StartByte()) + idx
	}
	return int(node.EndByte())
}

// typeSpecOf returns the type_declaration's single type_spec child, the
// node RenderClassHeader needs to reach the struct_type/interface_type
// node through its "type" field.
func typeSpecOf(node ts.Node) *ts.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		if c := node.Child(i); c != nil && c.Kind() == "type_spec" {
			return c
		}
	}
	return nil
}

// GetVisibilityPrefix has nothing to compute: Go's exported/unexported
// convention is carried by the identifier's own capitalization, not a
// modifier keyword, so every definition renders with an empty prefix.
func (a *Adapter) GetVisibilityPrefix(def *adapter.Definition) string { return "" }

func (a *Adapter) BodyPlaceholder() string { return "{ ... }" }
func (a *Adapter) IndentString() string    { return "  " }

func (a *Adapter) Closer(u unit.CodeUnit) string {
	if u.Kind == unit.Class {
		return "}"
	}
	return ""
}

func (a *Adapter) IgnoredCaptures() map[string]bool {
	return map[string]bool{}
}

// FormatReturnType is a no-op: a function_declaration/method_declaration's
// "result" field text is already well-formed Go and needs no cleanup the
// way TypeScript's leading ":" does.
func (a *Adapter) FormatReturnType(raw string) string { return strings.TrimSpace(raw) }

func (a *Adapter) ReturnTypeFieldName(nodeType string) string { return a.profile.ReturnTypeFieldName }

// FormatFieldSignature renders a top-level const/var spec or a struct
// field's declaration text bare, with the "_module_." prefix rule applied
// identically to the jsfamily adapters for top-level specs (handled by
// the shared CreateCodeUnit/FieldChild convention, not here).
func (a *Adapter) FormatFieldSignature(def *adapter.Definition, prefix string) string {
	text := strings.TrimSpace(def.Node.Utf8Text(def.Source))
	if !strings.HasPrefix(text, prefix) {
		text = prefix + text
	}
	return text
}

// BuildFunctionSkeleton covers function_declaration and
// method_declaration uniformly: Go has no arrow functions or function
// expressions, so the engine's generic FunctionInfo already matches the
// node shape and no recomputation is needed, unlike the jsfamily
// adapters' variable_declarator special case.
func (a *Adapter) BuildFunctionSkeleton(def *adapter.Definition, generic adapter.FunctionInfo) string {
	return a.RenderFunctionDeclaration(&generic)
}

// RenderFunctionDeclaration assembles "func [(<receiver>) ]<name>(<params>)
// [<result>] { ... }", reading the receiver straight off the node's
// "receiver" field (already-formatted Go text) rather than recomputing it
// from the adapter's own receiverTypeOf, which only recovers the base
// type identifier needed for the class chain.
func (a *Adapter) RenderFunctionDeclaration(fn *adapter.FunctionInfo) string {
	def := fn.Def
	node := def.Node

	var b strings.Builder
	b.WriteString(fn.Prefix)
	b.WriteString("func ")

	if node.Kind() == "method_declaration" {
		if recv := node.ChildByFieldName("receiver"); recv != nil {
			b.WriteString(strings.TrimSpace(recv.Utf8Text(def.Source)))
			b.WriteString(" ")
		}
	}

	b.WriteString(def.SimpleName)
	b.WriteString("(")
	b.WriteString(fn.Params)
	b.WriteString(")")
	if fn.ReturnType != "" {
		b.WriteString(" ")
		b.WriteString(fn.ReturnType)
	}
	b.WriteString(" ")
	b.WriteString(a.BodyPlaceholder())
	return b.String()
}

// DedupeFieldArrows is a no-op: Go has no arrow functions, so there is no
// function/field capture collision to resolve (§4.4's closing sentence,
// "other adapters may opt into none").
func (a *Adapter) DedupeFieldArrows(fileResult *adapter.FileResult) {}

// CleanupSkeletonLines is a no-op for the same reason: none of §4.4's
// rules (nested-arrow filtering, enum trailing commas, export-form
// dedup/preference) apply to a grammar with no arrows, enums or export
// keyword.
func (a *Adapter) CleanupSkeletonLines(lines []string, source []byte) []string { return lines }
