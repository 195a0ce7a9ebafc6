// Package reconstruct implements the Skeleton Reconstructor (C7): walking
// the parent → children tree for one top-level unit and assembling the
// final indented textual skeleton, per spec §4.3.
package reconstruct

import (
	"strings"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/unit"
)

// ChildrenLookup resolves a unit's ordered children; SignatureLookup
// resolves a unit's ordered signature strings. Both are satisfied
// directly by *engine.State, kept as narrow interfaces here so
// pkg/reconstruct never imports pkg/engine.
type ChildrenLookup interface {
	Children(parent unit.CodeUnit) []unit.CodeUnit
}

type SignatureLookup interface {
	Signatures(u unit.CodeUnit) []string
}

// Reconstruct walks u depth-first and returns its complete skeleton text,
// starting at the given indent depth (0 for a true top-level unit). Per
// §4.3: each signature line is emitted at the current indent, children
// are recursed into at depth+1, and — for class-like units only — the
// adapter's closer is emitted at the current indent after children.
//
// The reconstructor never revisits a unit: the parent-child map is
// acyclic by construction (parents are always created before their
// children in source order), so no cycle detection is needed.
func Reconstruct(u unit.CodeUnit, children ChildrenLookup, sigs SignatureLookup, ad adapter.Adapter, depth int) string {
	var b strings.Builder
	indent := strings.Repeat(ad.IndentString(), depth)

	for _, sig := range sigs.Signatures(u) {
		for _, line := range strings.Split(sig, "\n") {
			b.WriteString(indent)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	for _, child := range children.Children(u) {
		b.WriteString(Reconstruct(child, children, sigs, ad, depth+1))
	}

	if u.Kind == unit.Class {
		if closer := ad.Closer(u); closer != "" {
			b.WriteString(indent)
			b.WriteString(closer)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Header returns the skeleton's first non-empty line, per §6's
// GetSkeletonHeader contract.
func Header(skeleton string) string {
	for _, line := range strings.Split(skeleton, "\n") {
		if trimmed := strings.TrimRight(line, " \t"); strings.TrimSpace(trimmed) != "" {
			return trimmed
		}
	}
	return ""
}
