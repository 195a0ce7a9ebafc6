// Package javascript is the JavaScript Language Adapter (C6), the
// §4.2.1 sibling that supplements the distillation's TypeScript-only
// worked example: same rendering approach, minus everything type-only
// (interfaces, enums, namespaces, type aliases, construct signatures, the
// ambient-context rule). It shares jsfamily's renderer helpers with
// pkg/adapter/typescript rather than duplicating them.
package javascript

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/adapter/jsfamily"
	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/profile"
	"github.com/skelforge/skelforge/pkg/unit"
)

// Adapter is the plain JavaScript Language Adapter.
type Adapter struct {
	profile *profile.Profile
}

// New builds the JavaScript adapter.
func New() *Adapter {
	return &Adapter{profile: buildProfile()}
}

var _ adapter.Adapter = (*Adapter)(nil)

func buildProfile() *profile.Profile {
	return &profile.Profile{
		ClassLikeNodeTypes: profile.NodeSet("class_declaration"),
		FunctionLikeNodeTypes: profile.NodeSet(
			"function_declaration", "generator_function_declaration",
			"method_definition", "function_expression", "arrow_function",
		),
		FieldLikeNodeTypes:      profile.NodeSet("field_definition", "lexical_declaration", "variable_declaration"),
		DecoratorNodeTypes:      profile.NodeSet(),
		ModifierNodeTypes:       profile.NodeSet("static", "async"),
		IdentifierFieldName:     "name",
		BodyFieldName:           "body",
		ParametersFieldName:     "parameters",
		ReturnTypeFieldName:     "", // JavaScript carries no type annotations
		TypeParametersFieldName: "",
		AsyncKeywordNodeType:    "async",
		CaptureConfiguration: map[string]profile.SkeletonKind{
			"class":    profile.ClassLike,
			"function": profile.FunctionLike,
			"method":   profile.FunctionLike,
			"arrow":    profile.FunctionLike,
			"variable": profile.FieldLike,
		},
	}
}

func (a *Adapter) Language() language.Language { return language.JavaScript }
func (a *Adapter) Profile() *profile.Profile   { return a.profile }

func (a *Adapter) DeterminePackageName(file string) string {
	return jsfamily.DirectoryPackageName(file)
}

func (a *Adapter) ExtractSimpleName(def *adapter.Definition) string {
	return adapter.DefaultExtractSimpleName(def, a.profile)
}

func (a *Adapter) CreateCodeUnit(def *adapter.Definition) (unit.CodeUnit, bool) {
	return adapter.DefaultCreateCodeUnit(def)
}

// RenderClassHeader slices from the class name (or the node start when
// there is no name) to the body, with a fixed "class" keyword — plain
// JavaScript has no interface/enum/namespace/abstract-class variants.
func (a *Adapter) RenderClassHeader(def *adapter.Definition, prefix string) string {
	node := def.Node
	start := int(node.StartByte())
	if nameNode := node.ChildByFieldName(a.profile.IdentifierFieldName); nameNode != nil {
		start = int(nameNode.StartByte())
	}
	end := int(node.EndByte())
	if bodyNode := node.ChildByFieldName(a.profile.BodyFieldName); bodyNode != nil {
		end = int(bodyNode.StartByte())
	}
	if start > end || start < 0 || end > len(def.Source) {
		start, end = 0, 0
	}

	rest := strings.TrimSpace(string(def.Source[start:end]))
	rest = strings.TrimSuffix(rest, "{")
	rest = strings.TrimSpace(rest)

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("class ")
	b.WriteString(rest)
	b.WriteString(" {")
	return b.String()
}

// GetVisibilityPrefix recognizes export/default (through a wrapping
// export_statement) and the static/async modifier keywords; JavaScript
// has no accessibility_modifier node.
func (a *Adapter) GetVisibilityPrefix(def *adapter.Definition) string {
	scanNode := def.Node
	if scanNode.Kind() == "variable_declarator" {
		if parent := scanNode.Parent(); parent != nil {
			scanNode = *parent
		}
	}

	var parts []string
	if parent := scanNode.Parent(); parent != nil && parent.Kind() == "export_statement" {
		parts = append(parts, "export")
		if hasDefaultChild(*parent) {
			parts = append(parts, "default")
		}
	}

	for i := uint(0); i < scanNode.ChildCount(); i++ {
		child := scanNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "static", "async", "const", "let", "var":
			parts = append(parts, child.Kind())
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func hasDefaultChild(node ts.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if c := node.Child(i); c != nil && c.Kind() == "default" {
			return true
		}
	}
	return false
}

func (a *Adapter) BodyPlaceholder() string { return jsfamily.BodyPlaceholder }
func (a *Adapter) IndentString() string    { return jsfamily.IndentString }

func (a *Adapter) Closer(u unit.CodeUnit) string {
	if u.Kind == unit.Class {
		return "}"
	}
	return ""
}

func (a *Adapter) IgnoredCaptures() map[string]bool {
	return map[string]bool{}
}

// FormatReturnType is a no-op: JavaScript carries no type annotations.
func (a *Adapter) FormatReturnType(raw string) string { return "" }

func (a *Adapter) ReturnTypeFieldName(nodeType string) string { return "" }

// FormatFieldSignature strips a trailing ";" — plain fields and top-level
// variables render bare, matching the TypeScript adapter's convention.
func (a *Adapter) FormatFieldSignature(def *adapter.Definition, prefix string) string {
	text := strings.TrimSpace(def.Node.Utf8Text(def.Source))
	text = jsfamily.TrimTrailingSemicolon(text)
	if !strings.HasPrefix(text, prefix) {
		text = prefix + text
	}
	return text
}
