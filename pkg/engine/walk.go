package engine

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/profile"
)

// classChain walks node's ancestors and joins the simple name of every
// class-like ancestor outer-to-inner with "$", per spec §4.1.1 step 6b.
func classChain(node ts.Node, prof *profile.Profile, src []byte) string {
	var names []string
	cur := node.Parent()
	for cur != nil {
		if prof.IsClassLike(cur.Kind()) {
			name := identifierOf(*cur, prof, src)
			if name != "" {
				names = append(names, name)
			}
		}
		cur = cur.Parent()
	}
	// names were collected innermost-ancestor-first; reverse to outer-to-inner.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "$")
}

// identifierOf reads a node's name via the profile's identifier field,
// the default fallback used whenever no query ".name" capture applies
// (ancestor nodes walked for classChain are never directly captured).
func identifierOf(node ts.Node, prof *profile.Profile, src []byte) string {
	nameNode := node.ChildByFieldName(prof.IdentifierFieldName)
	if nameNode == nil {
		return ""
	}
	return nameNode.Utf8Text(src)
}

// collectDecorators walks backward over node's preceding siblings while
// their type is in the profile's decorator node set, then reverses the
// result into source order, per spec §4.1.2 step 2.
func collectDecorators(node ts.Node, prof *profile.Profile, src []byte) []string {
	var decorators []string
	cur := node.PrevSibling()
	for cur != nil && prof.IsDecorator(cur.Kind()) {
		decorators = append(decorators, strings.TrimSpace(cur.Utf8Text(src)))
		cur = cur.PrevSibling()
	}
	for i, j := 0, len(decorators)-1; i < j; i, j = i+1, j-1 {
		decorators[i], decorators[j] = decorators[j], decorators[i]
	}
	return decorators
}

// genericFunctionInfo builds the engine's best-effort FunctionInfo by
// reading the profile's field names directly off node, per spec §4.1.2
// step 4's function-like bullet. Adapters whose grammar shapes a
// definition differently (arrow functions nested in a variable_declarator,
// TypeScript construct signatures) recompute this themselves in
// BuildFunctionSkeleton; this is only the default most node shapes use
// unmodified.
func genericFunctionInfo(def *adapter.Definition, prof *profile.Profile, ad adapter.Adapter) adapter.FunctionInfo {
	node := def.Node
	info := adapter.FunctionInfo{Def: def}

	if paramsNode := node.ChildByFieldName(prof.ParametersFieldName); paramsNode != nil {
		info.Params = stripOuterDelimiters(paramsNode.Utf8Text(def.Source))
	}

	retFieldName := ad.ReturnTypeFieldName(node.Kind())
	if retFieldName == "" {
		retFieldName = prof.ReturnTypeFieldName
	}
	if retFieldName != "" {
		if retNode := node.ChildByFieldName(retFieldName); retNode != nil {
			info.ReturnType = ad.FormatReturnType(retNode.Utf8Text(def.Source))
		}
	}

	if prof.TypeParametersFieldName != "" {
		if tpNode := node.ChildByFieldName(prof.TypeParametersFieldName); tpNode != nil {
			info.TypeParams = tpNode.Utf8Text(def.Source)
		}
	}

	if prof.AsyncKeywordNodeType != "" {
		if first := node.Child(0); first != nil && first.Kind() == prof.AsyncKeywordNodeType {
			info.IsAsync = true
		}
	}

	return info
}

// stripOuterDelimiters removes a single leading '(' and trailing ')' (or
// '<'/'>') if both are present, turning a raw parameter-list node's text
// like "(a: number, b: number)" into "a: number, b: number" for the
// adapter's renderers, which add their own delimiters back.
func stripOuterDelimiters(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '(' && last == ')') || (first == '<' && last == '>') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
