// Package jsfamily holds the rendering helpers shared by the TypeScript and
// JavaScript adapters: arrow/named-function assembly, field formatting, and
// the handful of string-cleanup routines both grammars need identically.
// Anything TypeScript-only (ambient context, construct signatures, the
// class-keyword table) stays in pkg/adapter/typescript.
package jsfamily

import (
	"path/filepath"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// BodyPlaceholder is the elided-body text both adapters use.
const BodyPlaceholder = "{ ... }"

// IndentString is the per-level indent both adapters use.
const IndentString = "  "

// TrimTrailingSemicolon removes one trailing ';' after trimming whitespace.
func TrimTrailingSemicolon(s string) string {
	s = strings.TrimRight(s, " \t\n\r")
	return strings.TrimSuffix(s, ";")
}

// StripLeadingColon removes a leading ": " or ":" convention from a
// return-type annotation's raw text.
func StripLeadingColon(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, ":")
	return strings.TrimSpace(raw)
}

// RenderArrow assembles an arrow-function assignment skeleton line:
// "<prefix><name><generics> = [async] (<params>)<returnType> => { ... }".
func RenderArrow(prefix, name, typeParams, params, returnType string, isAsync bool) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(name)
	b.WriteString(typeParams)
	b.WriteString(" = ")
	if isAsync {
		b.WriteString("async ")
	}
	b.WriteString("(")
	b.WriteString(params)
	b.WriteString(")")
	if returnType != "" {
		b.WriteString(": ")
		b.WriteString(returnType)
	}
	b.WriteString(" => ")
	b.WriteString(BodyPlaceholder)
	return b.String()
}

// RenderFunctionLike assembles "<prefix><keyword> <name><generics>(<params>)<returnType> <end>"
// where end is either the body placeholder or a bare end marker (";" or "").
func RenderFunctionLike(prefix, keyword, name, typeParams, params, returnType, end string) string {
	var b strings.Builder
	b.WriteString(prefix)
	if keyword != "" {
		b.WriteString(keyword)
		b.WriteString(" ")
	}
	b.WriteString(name)
	b.WriteString(typeParams)
	b.WriteString("(")
	b.WriteString(params)
	b.WriteString(")")
	if returnType != "" {
		b.WriteString(": ")
		b.WriteString(returnType)
	}
	if end != "" {
		b.WriteString(" ")
		b.WriteString(end)
	}
	return strings.TrimRight(b.String(), " ")
}

// DirectoryPackageName is the default package-name convention both
// adapters use: the file's directory path relative to its nearest
// enclosing source root, with separators turned into ".", empty for a
// file at that root. Neither grammar has its own package declaration, so
// the engine's package name is always this filesystem convention.
func DirectoryPackageName(file string) string {
	dir := filepath.ToSlash(filepath.Dir(file))
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return ""
	}
	return strings.ReplaceAll(dir, "/", ".")
}

// HasModifierKeyword reports whether text (as sliced from a node) begins
// with keyword followed by a word boundary.
func HasModifierKeyword(text, keyword string) bool {
	if !strings.HasPrefix(text, keyword) {
		return false
	}
	if len(text) == len(keyword) {
		return true
	}
	next := text[len(keyword)]
	return next == ' ' || next == '\t' || next == '\n'
}

// IsGetterSetter reports whether a method-like node's leading token,
// before its name field, is the literal "get"/"set" accessor keyword —
// shared between TypeScript's method_definition/method_signature and
// JavaScript's method_definition.
func IsGetterSetter(node ts.Node) (keyword string, ok bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return "", false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.StartByte() >= nameNode.StartByte() {
			break
		}
		switch child.Kind() {
		case "get":
			return "get", true
		case "set":
			return "set", true
		}
	}
	return "", false
}

// HasStarToken reports whether node has a literal "*" child, marking a
// generator function/method.
func HasStarToken(node ts.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if c := node.Child(i); c != nil && c.Kind() == "*" {
			return true
		}
	}
	return false
}

// RenderFunctionExpressionAssignment assembles
// "<prefix><name> = function<generator>(<params>) { ... }" for a
// function_expression assigned to a const/let/var, JavaScript's
// non-arrow counterpart to RenderArrow.
func RenderFunctionExpressionAssignment(prefix, name, params string, isGenerator bool) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(name)
	b.WriteString(" = function")
	if isGenerator {
		b.WriteString("*")
	}
	b.WriteString("(")
	b.WriteString(params)
	b.WriteString(") ")
	b.WriteString(BodyPlaceholder)
	return b.String()
}
