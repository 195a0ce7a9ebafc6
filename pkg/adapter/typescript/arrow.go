package typescript

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/skelforge/skelforge/pkg/adapter"
)

// BuildFunctionSkeleton implements §4.2.1's two buildFunctionSkeleton
// special cases. Every other function-like shape renders straight off the
// engine's generic FunctionInfo (built by reading Profile's field names
// directly off def.Node), so this only intercepts the one case where the
// captured node's own fields don't carry the function's shape: a
// lexical-declaration arrow function, captured as the variable_declarator
// rather than the arrow_function itself. Construct signatures already
// read their return type from "type" via ReturnTypeFieldName, so the
// generic path covers them without help here.
func (a *Adapter) BuildFunctionSkeleton(def *adapter.Definition, generic adapter.FunctionInfo) string {
	if def.Node.Kind() == "variable_declarator" {
		if arrow := def.Node.ChildByFieldName("value"); arrow != nil && arrow.Kind() == "arrow_function" {
			info := a.arrowFunctionInfo(def, *arrow, generic.Prefix)
			return a.RenderFunctionDeclaration(&info)
		}
		return ""
	}
	return a.RenderFunctionDeclaration(&generic)
}

// arrowFunctionInfo rebuilds FunctionInfo from the real arrow_function
// node rather than the captured variable_declarator wrapper, reading
// params/return type/type params off it directly and detecting "async" by
// textual prefix per §4.2.1's bullet (the arrow_function node's async
// token isn't exposed through Profile.AsyncKeywordNodeType's first-child
// check the way a function_declaration's is).
func (a *Adapter) arrowFunctionInfo(def *adapter.Definition, arrowNode ts.Node, prefix string) adapter.FunctionInfo {
	innerDef := *def
	innerDef.Node = arrowNode

	info := adapter.FunctionInfo{Def: &innerDef, Prefix: prefix}

	if paramsNode := arrowNode.ChildByFieldName(a.profile.ParametersFieldName); paramsNode != nil {
		info.Params = stripParens(paramsNode.Utf8Text(def.Source))
	} else if single := arrowNode.ChildByFieldName("parameter"); single != nil {
		info.Params = strings.TrimSpace(single.Utf8Text(def.Source))
	}

	if retNode := arrowNode.ChildByFieldName(a.profile.ReturnTypeFieldName); retNode != nil {
		info.ReturnType = a.FormatReturnType(retNode.Utf8Text(def.Source))
	}

	if tpNode := arrowNode.ChildByFieldName(a.profile.TypeParametersFieldName); tpNode != nil {
		info.TypeParams = tpNode.Utf8Text(def.Source)
	}

	info.IsAsync = strings.HasPrefix(strings.TrimSpace(arrowNode.Utf8Text(def.Source)), "async")

	return info
}

// stripParens removes one leading '(' and trailing ')', mirroring the
// engine's stripOuterDelimiters for the one case (lexical-arrow params)
// the adapter has to recompute itself rather than receive pre-stripped.
func stripParens(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
