// Package adapter declares the Language Adapter contract (C6): the set of
// per-language hooks the generic Extraction Engine (pkg/engine) calls to go
// from a raw captured definition node to a Code Unit and a rendered
// signature line, without ever special-casing a language by name itself.
package adapter

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/profile"
	"github.com/skelforge/skelforge/pkg/unit"
)

// Definition is everything the engine has gathered about one matched
// `<kind>.definition` capture by the time it asks the adapter to turn it
// into a Code Unit and signature line.
type Definition struct {
	Node        ts.Node
	CaptureName string // the "<kind>" in "<kind>.definition", e.g. "class", "method", "arrow"
	SimpleName  string
	Source      []byte
	File        string
	PackageName string
	ClassChain  string
	Kind        profile.SkeletonKind
}

// Text returns the definition node's raw source text.
func (d *Definition) Text() string {
	return d.Node.Utf8Text(d.Source)
}

// FunctionInfo carries the pieces the engine extracted for a function-like
// definition, ready for the adapter's declaration renderer.
type FunctionInfo struct {
	Def        *Definition
	Params     string
	ReturnType string
	TypeParams string
	IsAsync    bool
	Prefix     string // visibility/export prefix, already space-terminated or empty
}

// Adapter is the per-language rendering and identity layer. pkg/adapter/typescript
// is the reference implementation; pkg/adapter/javascript and
// pkg/adapter/golang are siblings built the same way.
type Adapter interface {
	// Language identifies which grammar this adapter serves.
	Language() language.Language

	// Profile returns the declarative Syntax Profile driving the engine's
	// generic tree walk for this language.
	Profile() *profile.Profile

	// DeterminePackageName computes the package name for a file. The
	// default convention is the filesystem-relative directory path with
	// separators turned into ".", empty for files at the project root;
	// adapters may override (Go reads the package_clause instead).
	DeterminePackageName(file string) string

	// ExtractSimpleName is the fallback used when a definition's
	// companion ".name" capture is absent or blank. The default behavior
	// reads the node's Profile.IdentifierFieldName child; adapters may
	// override per node type (TypeScript returns "new" for a construct
	// signature).
	ExtractSimpleName(def *Definition) string

	// CreateCodeUnit selects a Kind and applies the "$" (class-like) vs
	// "." (function/field/alias) joining convention and the "_module_."
	// top-level prefix rule. Returning ok=false legally skips the
	// definition.
	CreateCodeUnit(def *Definition) (unit.CodeUnit, bool)

	// RenderClassHeader renders a class-like definition's signature line,
	// e.g. "export class Point {".
	RenderClassHeader(def *Definition, prefix string) string

	// RenderFunctionDeclaration renders a function-like definition's
	// signature line from an already-resolved FunctionInfo.
	RenderFunctionDeclaration(fn *FunctionInfo) string

	// BuildFunctionSkeleton is the entry point the engine calls for every
	// function-like or arrow-like definition. generic is the engine's
	// best-effort FunctionInfo, built by reading Profile's field names
	// directly off def.Node; most node shapes (function_declaration,
	// method_definition, method_signature, construct_signature node text
	// aside) can render straight from it via RenderFunctionDeclaration.
	// Adapters whose grammar shapes a definition differently from its
	// captured node — TypeScript's lexical-declaration-wrapped arrow
	// function and its construct signature's "type" field return type —
	// recompute FunctionInfo from the real node shape before rendering
	// (spec's "buildFunctionSkeleton override"). Returns the fully
	// rendered line, decorators not included (the engine prepends those).
	BuildFunctionSkeleton(def *Definition, generic FunctionInfo) string

	// FormatFieldSignature renders a field-like or alias-like
	// definition's signature line.
	FormatFieldSignature(def *Definition, prefix string) string

	// GetVisibilityPrefix computes the space-terminated visibility/export
	// prefix for a definition (e.g. "export ", "public static ", "").
	GetVisibilityPrefix(def *Definition) string

	// BodyPlaceholder is the text substituted for an elided body.
	BodyPlaceholder() string

	// Closer returns the language-specific closing line for a unit, "}"
	// for class-like units and "" otherwise.
	Closer(u unit.CodeUnit) string

	// IgnoredCaptures names capture categories used only for contextual
	// binding within a match, never dispatched as definitions themselves.
	IgnoredCaptures() map[string]bool

	// FormatReturnType cleans raw return-type annotation text (TypeScript
	// strips a leading ":").
	FormatReturnType(raw string) string

	// ReturnTypeFieldName returns the field-by-name key used to find a
	// definition node's return type; usually Profile.ReturnTypeFieldName,
	// but TypeScript construct signatures read "type" instead.
	ReturnTypeFieldName(nodeType string) string

	// IndentString is the per-level indent used by the reconstructor,
	// two spaces by default.
	IndentString() string

	// DedupeFieldArrows drops field-kind units that duplicate a
	// function-kind arrow capture of the same basename (§4.4 rule 1).
	// Adapters that don't opt into cleanup return fileResult unchanged.
	DedupeFieldArrows(fileResult *FileResult)

	// CleanupSkeletonLines applies any remaining per-file textual cleanup
	// (§4.4 rules 2-5: nested-arrow filtering, trailing punctuation,
	// line dedup, default-export preference) to one unit's already
	// rendered signature lines. Adapters that don't opt in return lines
	// unchanged.
	CleanupSkeletonLines(lines []string, source []byte) []string
}

// FileResult is the adapter-visible view of one file's in-progress
// analysis, passed to DedupeFieldArrows before the engine merges it into
// the global maps.
type FileResult struct {
	TopLevel   []unit.CodeUnit
	Children   map[unit.CodeUnit][]unit.CodeUnit
	Signatures map[unit.CodeUnit][]string
	Ranges     map[unit.CodeUnit][]unit.ByteRange
}

// DefaultCreateCodeUnit implements the kind-selection and joining
// convention of §4.2's CreateCodeUnit bullet generically from the
// definition's SkeletonKind: class-like definitions get a "$"-joined
// Class unit, function-like definitions get a "."-joined Function unit,
// field-like and alias-like definitions get a Field unit with the
// "_module_." top-level prefix. TypeScript and JavaScript use this
// verbatim; Go's CreateCodeUnit first sets the class chain of method
// declarations (from the receiver) and struct fields (from the enclosing
// type) and then delegates here.
func DefaultCreateCodeUnit(def *Definition) (unit.CodeUnit, bool) {
	switch def.Kind {
	case profile.ClassLike:
		return unit.CodeUnit{Kind: unit.Class, File: def.File, PackageName: def.PackageName, ShortName: unit.ClassChild(def.ClassChain, def.SimpleName)}, true
	case profile.FunctionLike:
		return unit.CodeUnit{Kind: unit.Function, File: def.File, PackageName: def.PackageName, ShortName: unit.FunctionChild(def.ClassChain, def.SimpleName)}, true
	case profile.FieldLike, profile.AliasLike:
		return unit.CodeUnit{Kind: unit.Field, File: def.File, PackageName: def.PackageName, ShortName: unit.FieldChild(def.ClassChain, def.SimpleName)}, true
	default:
		return unit.CodeUnit{}, false
	}
}

// DefaultExtractSimpleName implements the fallback name-resolution rule
// shared by every adapter: read the node's identifier via the profile's
// IdentifierFieldName. TypeScript overrides this only for construct
// signatures, which have no name field at all.
func DefaultExtractSimpleName(def *Definition, prof *profile.Profile) string {
	nameNode := def.Node.ChildByFieldName(prof.IdentifierFieldName)
	if nameNode == nil {
		return ""
	}
	return nameNode.Utf8Text(def.Source)
}
