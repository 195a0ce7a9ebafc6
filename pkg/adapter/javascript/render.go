package javascript

import (
	"strings"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/adapter/jsfamily"
)

// BuildFunctionSkeleton handles the one shape JavaScript's query captures
// differently from its own node: a const/let/var bound to an arrow
// function or a function expression is captured as the variable_declarator
// wrapper, not the function node itself, mirroring TypeScript's lexical-arrow
// special case (§4.2.1).
func (a *Adapter) BuildFunctionSkeleton(def *adapter.Definition, generic adapter.FunctionInfo) string {
	if def.Node.Kind() != "variable_declarator" {
		return a.RenderFunctionDeclaration(&generic)
	}

	value := def.Node.ChildByFieldName("value")
	if value == nil {
		return ""
	}

	innerDef := *def
	innerDef.Node = *value
	info := adapter.FunctionInfo{Def: &innerDef, Prefix: generic.Prefix}

	if paramsNode := value.ChildByFieldName(a.profile.ParametersFieldName); paramsNode != nil {
		info.Params = stripParens(paramsNode.Utf8Text(def.Source))
	}
	info.IsAsync = jsfamily.HasModifierKeyword(value.Utf8Text(def.Source), "async")

	return a.RenderFunctionDeclaration(&info)
}

// RenderFunctionDeclaration covers function_declaration,
// generator_function_declaration, method_definition (including
// constructors and get/set accessors), arrow_function and
// function_expression. No type annotations, no construct signatures, no
// ambient context — those are TypeScript-only.
func (a *Adapter) RenderFunctionDeclaration(fn *adapter.FunctionInfo) string {
	def := fn.Def
	node := def.Node

	switch node.Kind() {
	case "arrow_function":
		return jsfamily.RenderArrow(fn.Prefix, def.SimpleName, "", fn.Params, "", fn.IsAsync)
	case "function_expression":
		return jsfamily.RenderFunctionExpressionAssignment(fn.Prefix, def.SimpleName, fn.Params, jsfamily.HasStarToken(node))
	}

	keyword := ""
	name := def.SimpleName

	switch node.Kind() {
	case "method_definition":
		if def.SimpleName == "constructor" {
			keyword = "constructor"
			name = ""
		} else if kw, ok := jsfamily.IsGetterSetter(node); ok {
			keyword = kw
		}
	case "function_declaration", "generator_function_declaration":
		keyword = "function"
		if jsfamily.HasStarToken(node) || node.Kind() == "generator_function_declaration" {
			keyword = "function*"
		}
	}

	return jsfamily.RenderFunctionLike(fn.Prefix, keyword, name, "", fn.Params, "", a.BodyPlaceholder())
}

func stripParens(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
