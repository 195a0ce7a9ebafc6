// Package unit defines the Code Unit identity model: the stable
// (kind, file, package, shortName) tuple every extracted declaration is
// keyed by, and the fully-qualified-name conventions built on top of it.
package unit

import "strings"

// Kind identifies what a Code Unit represents.
type Kind int

const (
	// Class covers classes, interfaces, enums, namespaces and any other
	// class-like grouping construct in a given language.
	Class Kind = iota
	Function
	Field
	// Module is the synthetic per-file unit carrying the import block.
	Module
)

func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case Function:
		return "function"
	case Field:
		return "field"
	case Module:
		return "module"
	default:
		return "unknown"
	}
}

// ModuleShortName is the literal short name of the synthetic per-file
// Module unit.
const ModuleShortName = "_module_"

// ModulePrefix is prepended to the short name of top-level fields and type
// aliases so they never collide with class short names in the same file.
const ModulePrefix = ModuleShortName + "."

// CodeUnit is the immutable identity of one declaration. Two units are
// equal iff Kind, File, PackageName and ShortName all match; overloaded
// functions therefore collapse onto a single CodeUnit and accumulate
// multiple signatures/ranges under it.
type CodeUnit struct {
	Kind        Kind
	File        string
	PackageName string
	ShortName   string
}

// FQName returns packageName + "." + shortName, or just shortName when the
// package is empty.
func (u CodeUnit) FQName() string {
	if u.PackageName == "" {
		return u.ShortName
	}
	return u.PackageName + "." + u.ShortName
}

// Key returns the CodeUnit itself; CodeUnit is comparable and can be used
// directly as a map key. Key exists so call sites can be explicit about
// intent without a redundant copy.
func (u CodeUnit) Key() CodeUnit { return u }

// JoinClassChain joins a chain of class-like names outer-to-inner with the
// "$" separator used for nested class-like short names (e.g. "Outer$Inner").
func JoinClassChain(names ...string) string {
	return strings.Join(names, "$")
}

// ClassChild builds the short name for a class-like unit nested inside the
// given class chain: "Outer$Inner" for a class-like child, as opposed to
// FunctionChild's and FieldChild's dotted join.
func ClassChild(classChain, name string) string {
	if classChain == "" {
		return name
	}
	return classChain + "$" + name
}

// FieldChild builds the short name for a field or alias nested inside
// classChain using the "." join convention, or the "_module_." prefix when
// classChain is empty (top-level) so it never collides with a class name.
func FieldChild(classChain, name string) string {
	if classChain == "" {
		return ModulePrefix + name
	}
	return classChain + "." + name
}

// FunctionChild builds the short name for a function nested inside
// classChain using the "." join convention, or the bare name when
// classChain is empty (top-level functions are never module-prefixed).
func FunctionChild(classChain, name string) string {
	if classChain == "" {
		return name
	}
	return classChain + "." + name
}

// LastSegment returns the last dotted/dollar-chain segment of a short name,
// i.e. the unqualified symbol name used by GetSymbols.
func LastSegment(shortName string) string {
	cut := -1
	for i := len(shortName) - 1; i >= 0; i-- {
		if shortName[i] == '.' || shortName[i] == '$' {
			cut = i
			break
		}
	}
	if cut == -1 {
		return shortName
	}
	return shortName[cut+1:]
}

// ByteRange is a half-open byte interval with matching 1-based line numbers,
// recorded once per signature occurrence of a unit.
type ByteRange struct {
	StartByte uint32
	EndByte   uint32
	StartLine uint32
	EndLine   uint32
}
