// Package typescript is the reference Language Adapter (C6) implementation
// for TypeScript and TSX, worked through in full per spec §4.2: class
// header rendering, every function-declaration shape (arrow, named,
// generator, method, constructor, getter/setter, construct signature),
// field/alias rendering, the ambient-context rule, and the §4.4
// cleanup/dedup pass.
package typescript

import (
	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/adapter/jsfamily"
	"github.com/skelforge/skelforge/pkg/language"
	"github.com/skelforge/skelforge/pkg/profile"
	"github.com/skelforge/skelforge/pkg/unit"
)

// Adapter is the TypeScript/TSX Language Adapter.
type Adapter struct {
	profile *profile.Profile
}

// New builds the TypeScript adapter.
func New() *Adapter {
	return &Adapter{profile: buildProfile()}
}

var _ adapter.Adapter = (*Adapter)(nil)

func buildProfile() *profile.Profile {
	return &profile.Profile{
		ClassLikeNodeTypes: profile.NodeSet(
			"class_declaration", "abstract_class_declaration",
			"interface_declaration", "enum_declaration", "internal_module",
		),
		FunctionLikeNodeTypes: profile.NodeSet(
			"function_declaration", "generator_function_declaration", "function_signature",
			"method_definition", "method_signature", "abstract_method_signature",
			"construct_signature", "function_expression", "arrow_function",
		),
		FieldLikeNodeTypes: profile.NodeSet(
			"public_field_definition", "property_signature", "lexical_declaration",
		),
		DecoratorNodeTypes:      profile.NodeSet("decorator"),
		ModifierNodeTypes:       profile.NodeSet("accessibility_modifier"),
		IdentifierFieldName:     "name",
		BodyFieldName:           "body",
		ParametersFieldName:     "parameters",
		ReturnTypeFieldName:     "return_type",
		TypeParametersFieldName: "type_parameters",
		AsyncKeywordNodeType:    "async",
		CaptureConfiguration: map[string]profile.SkeletonKind{
			"class":     profile.ClassLike,
			"interface": profile.ClassLike,
			"enum":      profile.ClassLike,
			"namespace": profile.ClassLike,
			"function":  profile.FunctionLike,
			"method":    profile.FunctionLike,
			"arrow":     profile.FunctionLike,
			"variable":  profile.FieldLike,
			"type":      profile.AliasLike,
		},
	}
}

func (a *Adapter) Language() language.Language { return language.TypeScript }
func (a *Adapter) Profile() *profile.Profile   { return a.profile }

// DeterminePackageName uses the default filesystem-relative directory
// convention; TypeScript has no separate package declaration to read.
func (a *Adapter) DeterminePackageName(file string) string {
	return jsfamily.DirectoryPackageName(file)
}

// ExtractSimpleName overrides the default identifier-field lookup only for
// construct signatures, which carry no name field at all — per §4.2's
// bullet, a construct signature's simple name is always the literal "new".
func (a *Adapter) ExtractSimpleName(def *adapter.Definition) string {
	if def.Node.Kind() == "construct_signature" {
		return "new"
	}
	return adapter.DefaultExtractSimpleName(def, a.profile)
}

func (a *Adapter) CreateCodeUnit(def *adapter.Definition) (unit.CodeUnit, bool) {
	return adapter.DefaultCreateCodeUnit(def)
}

func (a *Adapter) BodyPlaceholder() string { return jsfamily.BodyPlaceholder }
func (a *Adapter) IndentString() string    { return jsfamily.IndentString }

func (a *Adapter) Closer(u unit.CodeUnit) string {
	if u.Kind == unit.Class {
		return "}"
	}
	return ""
}

// IgnoredCaptures names capture categories used only for contextual
// binding within a match, never dispatched as their own definitions. The
// TypeScript query never emits such auxiliary captures (every capture
// category maps to a real skeleton kind or to "module"), so this is empty;
// the hook exists for adapters whose query needs it.
func (a *Adapter) IgnoredCaptures() map[string]bool {
	return map[string]bool{}
}

// ReturnTypeFieldName reads the profile's default "return_type" field
// except for construct signatures, which the TypeScript grammar gives a
// "type" field instead (per §4.2.1's buildFunctionSkeleton override).
func (a *Adapter) ReturnTypeFieldName(nodeType string) string {
	if nodeType == "construct_signature" {
		return "type"
	}
	return a.profile.ReturnTypeFieldName
}

func (a *Adapter) FormatReturnType(raw string) string {
	return jsfamily.StripLeadingColon(raw)
}
