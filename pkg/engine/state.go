package engine

import (
	"sync"

	"github.com/skelforge/skelforge/pkg/unit"
)

// State holds the four global maps described in spec §3, merged from
// per-file FileAnalysis results with the compute-and-swap, immutable-
// snapshot semantics of §9: every merge replaces a key's whole list rather
// than mutating it in place, so a concurrent reader never observes a
// partially-built list.
type State struct {
	mu sync.RWMutex

	topLevel   map[string][]unit.CodeUnit            // file -> ordered top-level units (module unit first)
	children   map[unit.CodeUnit][]unit.CodeUnit      // parent -> ordered, deduped children
	signatures map[unit.CodeUnit][]string             // unit -> ordered, deduped signature strings
	ranges     map[unit.CodeUnit][]unit.ByteRange      // unit -> ordered source ranges, one per definition occurrence
	fileOf     map[unit.CodeUnit]string
}

// NewState builds an empty State.
func NewState() *State {
	return &State{
		topLevel:   make(map[string][]unit.CodeUnit),
		children:   make(map[unit.CodeUnit][]unit.CodeUnit),
		signatures: make(map[unit.CodeUnit][]string),
		ranges:     make(map[unit.CodeUnit][]unit.ByteRange),
		fileOf:     make(map[unit.CodeUnit]string),
	}
}

// TopLevelDeclarations returns the ordered top-level units for file.
func (s *State) TopLevelDeclarations(file string) []unit.CodeUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]unit.CodeUnit(nil), s.topLevel[file]...)
}

// Children returns parent's ordered children.
func (s *State) Children(parent unit.CodeUnit) []unit.CodeUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]unit.CodeUnit(nil), s.children[parent]...)
}

// Signatures returns u's ordered signature strings.
func (s *State) Signatures(u unit.CodeUnit) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.signatures[u]...)
}

// Ranges returns u's ordered source byte ranges.
func (s *State) Ranges(u unit.CodeUnit) []unit.ByteRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]unit.ByteRange(nil), s.ranges[u]...)
}

// Lookup reports whether u has at least one recorded signature.
func (s *State) Lookup(u unit.CodeUnit) (unit.CodeUnit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.signatures[u]; ok {
		return u, true
	}
	return unit.CodeUnit{}, false
}

// Files returns every merged file, including files with no top-level
// declaration.
func (s *State) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]string, 0, len(s.topLevel))
	for f := range s.topLevel {
		files = append(files, f)
	}
	return files
}

// AllUnits returns every unit with at least one recorded signature.
func (s *State) AllUnits() []unit.CodeUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	units := make([]unit.CodeUnit, 0, len(s.signatures))
	for u := range s.signatures {
		units = append(units, u)
	}
	return units
}
