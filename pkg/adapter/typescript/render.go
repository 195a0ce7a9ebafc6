package typescript

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/adapter/jsfamily"
	"github.com/skelforge/skelforge/pkg/profile"
)

// classKeyword picks the rendered keyword for a class-like node type, per
// §4.2's static map.
func classKeyword(nodeType string) string {
	switch nodeType {
	case "interface_declaration":
		return "interface"
	case "enum_declaration":
		return "enum"
	case "internal_module":
		return "namespace"
	case "abstract_class_declaration":
		return "abstract class"
	default:
		return "class"
	}
}

// RenderClassHeader slices from the declaration's name to its body field
// (or to the node's end if bodyless), which covers the name, generics and
// any heritage clause (extends/implements) without needing to strip the
// declaration keyword back off by hand.
func (a *Adapter) RenderClassHeader(def *adapter.Definition, prefix string) string {
	node := def.Node
	keyword := classKeyword(node.Kind())

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
	b.WriteString(keyword)
	b.WriteString(" ")
	b.WriteString(rest)
	b.WriteString(" {")
	return b.String()
}

// GetVisibilityPrefix inspects a modifier-bearing node's parent (for
// export/default) and its direct children (for modifier keywords and
// accessibility_modifier), per §4.2's bullet. For a captured arrow/
// function-expression variable_declarator, the modifiers and the
// const/let/var keyword sit on the enclosing lexical_declaration instead,
// so that is the node actually scanned. The class keyword table already
// renders "abstract class" for an abstract_class_declaration, so the raw
// "abstract" token child is skipped for class-like definitions to avoid
// doubling it.
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
		if hasChildOfKind(*parent, "default") {
			parts = append(parts, "default")
		}
	}

	skipAbstract := def.Kind == profile.ClassLike
	for i := uint(0); i < scanNode.ChildCount(); i++ {
		child := scanNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "accessibility_modifier":
			parts = append(parts, strings.TrimSpace(child.Utf8Text(def.Source)))
		case "abstract":
			if !skipAbstract {
				parts = append(parts, "abstract")
			}
		case "declare", "static", "readonly", "async", "const", "let", "var":
			parts = append(parts, child.Kind())
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func hasChildOfKind(node ts.Node, kind string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if c := node.Child(i); c != nil && c.Kind() == kind {
			return true
		}
	}
	return false
}

// functionKeyword and leading-token detection drive RenderFunctionDeclaration.
func functionKeyword(nodeType string, isGenerator bool) string {
	if nodeType == "generator_function_declaration" {
		return "function*"
	}
	if isGenerator {
		return "function*"
	}
	return "function"
}

// RenderFunctionDeclaration covers every function-like shape named in
// §4.2: arrow assignments, named/generator functions, methods,
// constructors, getters/setters, and construct signatures. For every shape
// but an arrow function, the end marker (body placeholder, bare ";", or
// nothing) is computed here from fn.Def's node via endMarkerFor.
func (a *Adapter) RenderFunctionDeclaration(fn *adapter.FunctionInfo) string {
	def := fn.Def
	node := def.Node

	if node.Kind() == "arrow_function" {
		return jsfamily.RenderArrow(fn.Prefix, def.SimpleName, fn.TypeParams, fn.Params, fn.ReturnType, fn.IsAsync)
	}

	keyword := ""
	name := def.SimpleName
	end := endMarkerFor(node)

	switch node.Kind() {
	case "method_definition", "method_signature", "abstract_method_signature":
		if node.Kind() == "method_definition" && def.SimpleName == "constructor" {
			keyword = "constructor"
			name = ""
		} else if kw, ok := jsfamily.IsGetterSetter(node); ok {
			keyword = kw
		}
	case "construct_signature":
		keyword = "new"
		name = ""
	case "function_declaration", "generator_function_declaration", "function_signature", "function_expression":
		if inNamespaceContext(node) && node.Kind() == "function_signature" {
			keyword = ""
		} else {
			keyword = functionKeyword(node.Kind(), jsfamily.HasStarToken(node))
		}
	}

	body := end
	if node.ChildByFieldName(a.profile.BodyFieldName) != nil {
		body = a.BodyPlaceholder()
	}

	return jsfamily.RenderFunctionLike(fn.Prefix, keyword, name, fn.TypeParams, fn.Params, fn.ReturnType, body)
}

// endMarkerFor resolves the bare end-of-signature marker (";" or "") for a
// body-less declaration per §4.2's ambient-context table. Declarations
// with a body ignore this; RenderFunctionDeclaration substitutes the body
// placeholder instead once it sees a body field present.
func endMarkerFor(node ts.Node) string {
	switch node.Kind() {
	case "method_signature", "abstract_method_signature", "construct_signature":
		return ""
	case "function_signature":
		if inNamespaceContext(node) {
			return ""
		}
		return ";"
	default:
		return ";"
	}
}

// FormatFieldSignature strips a trailing ";" for ordinary fields, aliases
// and top-level variables — matching S1/S2's bare "x: number" / "name:
// string" lines — and emits a trailing "," instead for direct children of
// an enum body. The very last member of an enum's comma gets stripped
// again in CleanupSkeletonLines, where the full sibling list is visible.
func (a *Adapter) FormatFieldSignature(def *adapter.Definition, prefix string) string {
	node := def.Node
	text := strings.TrimSpace(node.Utf8Text(def.Source))
	text = jsfamily.TrimTrailingSemicolon(text)

	if !strings.HasPrefix(text, prefix) {
		text = prefix + text
	}

	if parent := node.Parent(); parent != nil && parent.Kind() == "enum_body" {
		return text + ","
	}
	return text
}
