package engine

import "github.com/skelforge/skelforge/pkg/unit"

// FileAnalysis is one worker's private per-file result, built entirely
// without touching shared state, ready to be merged into a State via
// Merge. Every list inside is already deduped and ordered per spec §3 —
// Merge never needs to re-sort or re-dedup, only union.
type FileAnalysis struct {
	File       string
	TopLevel   []unit.CodeUnit
	Children   map[unit.CodeUnit][]unit.CodeUnit
	Signatures map[unit.CodeUnit][]string
	Ranges     map[unit.CodeUnit][]unit.ByteRange
	Imports    []string
}

func newFileAnalysis(file string) *FileAnalysis {
	return &FileAnalysis{
		File:       file,
		Children:   make(map[unit.CodeUnit][]unit.CodeUnit),
		Signatures: make(map[unit.CodeUnit][]string),
		Ranges:     make(map[unit.CodeUnit][]unit.ByteRange),
	}
}

// addSignature appends sig to u's signature list unless it's already
// present (spec invariant 5: no duplicate signature string per unit) or
// blank (invariant 3).
func (fa *FileAnalysis) addSignature(u unit.CodeUnit, sig string) {
	if sig == "" {
		return
	}
	for _, existing := range fa.Signatures[u] {
		if existing == sig {
			return
		}
	}
	fa.Signatures[u] = append(fa.Signatures[u], sig)
}

func (fa *FileAnalysis) addRange(u unit.CodeUnit, r unit.ByteRange) {
	fa.Ranges[u] = append(fa.Ranges[u], r)
}

// addChild appends child to parent's child list unless already present,
// preserving insertion (source) order.
func (fa *FileAnalysis) addChild(parent, child unit.CodeUnit) {
	for _, existing := range fa.Children[parent] {
		if existing == child {
			return
		}
	}
	fa.Children[parent] = append(fa.Children[parent], child)
}

// registered reports whether u already has at least one signature
// recorded in this file's analysis. AnalyzeFile does not call it.
func (fa *FileAnalysis) registered(u unit.CodeUnit) bool {
	_, ok := fa.Signatures[u]
	return ok
}
