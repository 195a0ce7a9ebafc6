// Package profile declares the Syntax Profile: the per-language record of
// node types, field names, and capture-to-kind mappings the extraction
// engine needs to walk a parse tree generically, without a per-language
// switch statement in the engine itself.
package profile

// SkeletonKind classifies what a captured definition renders as.
type SkeletonKind int

const (
	ClassLike SkeletonKind = iota
	FunctionLike
	FieldLike
	AliasLike
	ModuleStatement
	Unsupported
)

func (k SkeletonKind) String() string {
	switch k {
	case ClassLike:
		return "class-like"
	case FunctionLike:
		return "function-like"
	case FieldLike:
		return "field-like"
	case AliasLike:
		return "alias-like"
	case ModuleStatement:
		return "module-statement"
	default:
		return "unsupported"
	}
}

// Profile is the declarative record driving the generic extraction engine
// for one language. The engine never special-cases a language by name; it
// only ever consults the Profile an Adapter exposes.
type Profile struct {
	// ClassLikeNodeTypes are node types that drive parent-chain walking and
	// isClass checks (class/interface/enum/namespace, a Go named
	// struct/interface type declaration, etc).
	ClassLikeNodeTypes map[string]bool
	// FunctionLikeNodeTypes are node types treated as function-like.
	FunctionLikeNodeTypes map[string]bool
	// FieldLikeNodeTypes are node types treated as field-like.
	FieldLikeNodeTypes map[string]bool
	// DecoratorNodeTypes are node types whose preceding-sibling occurrence
	// is decoration rather than a sibling declaration.
	DecoratorNodeTypes map[string]bool
	// ModifierNodeTypes are node types an adapter may scan among a
	// declaration's children to gather modifiers (public/private/static/...).
	ModifierNodeTypes map[string]bool

	// IdentifierFieldName is the child-by-field-name key for a
	// declaration's name, used when no companion ".name" capture exists.
	IdentifierFieldName string
	// BodyFieldName is the child-by-field-name key for the body.
	BodyFieldName string
	// ParametersFieldName is the child-by-field-name key for the parameter
	// list.
	ParametersFieldName string
	// ReturnTypeFieldName is the child-by-field-name key for the return
	// type annotation (possibly absent on a given node).
	ReturnTypeFieldName string
	// TypeParametersFieldName is the child-by-field-name key for generic
	// type parameters (possibly absent).
	TypeParametersFieldName string

	// AsyncKeywordNodeType is the node type whose text is the async
	// keyword, checked against a declaration's first child. Empty string
	// for languages with no async keyword.
	AsyncKeywordNodeType string

	// CaptureConfiguration maps a query capture name (the `<kind>` in
	// `<kind>.definition`) to the SkeletonKind it should render as.
	CaptureConfiguration map[string]SkeletonKind
}

// KindFor looks up the SkeletonKind for a capture name, defaulting to
// Unsupported when the profile has no entry for it.
func (p *Profile) KindFor(captureName string) SkeletonKind {
	if k, ok := p.CaptureConfiguration[captureName]; ok {
		return k
	}
	return Unsupported
}

// IsClassLike reports whether nodeType drives the parent class chain.
func (p *Profile) IsClassLike(nodeType string) bool {
	return p.ClassLikeNodeTypes[nodeType]
}

// IsFunctionLike reports whether nodeType is function-like.
func (p *Profile) IsFunctionLike(nodeType string) bool {
	return p.FunctionLikeNodeTypes[nodeType]
}

// IsFieldLike reports whether nodeType is field-like.
func (p *Profile) IsFieldLike(nodeType string) bool {
	return p.FieldLikeNodeTypes[nodeType]
}

// IsDecorator reports whether nodeType is a decorator occurrence.
func (p *Profile) IsDecorator(nodeType string) bool {
	return p.DecoratorNodeTypes[nodeType]
}

// NodeSet builds a lookup set from a variadic list of node type names; a
// small convenience for constructing Profile literals in adapter packages.
func NodeSet(types ...string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}
