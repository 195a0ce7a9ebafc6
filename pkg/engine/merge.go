package engine

import "github.com/skelforge/skelforge/pkg/unit"

// Merge folds one worker's FileAnalysis into the shared State, applying
// the compute-and-swap rules of spec §5/§9:
//   - top-level lists are written per file, so there is never a
//     conflicting writer;
//   - children lists merge with de-dup, preserving insertion order, and
//     skip the write entirely when the merged result is unchanged;
//   - signature lists append the worker's new entries (already internally
//     deduped by FileAnalysis.addSignature);
//   - source-range lists append unchanged.
//
// Every replaced list is a freshly allocated slice so concurrent readers
// holding an older snapshot never observe a partial write.
func (s *State) Merge(fa *FileAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.topLevel[fa.File] = append([]unit.CodeUnit(nil), fa.TopLevel...)

	for u := range fa.Signatures {
		s.fileOf[u] = fa.File
	}

	for parent, kids := range fa.Children {
		merged := mergeUnitLists(s.children[parent], kids)
		if !unitListsEqual(s.children[parent], merged) {
			s.children[parent] = merged
		}
	}

	for u, sigs := range fa.Signatures {
		existing := s.signatures[u]
		merged := existing
		for _, sig := range sigs {
			if !containsString(merged, sig) {
				merged = append(merged, sig)
			}
		}
		if len(merged) != len(existing) {
			fresh := make([]string, len(merged))
			copy(fresh, merged)
			s.signatures[u] = fresh
		} else if existing == nil {
			s.signatures[u] = append([]string(nil), sigs...)
		}
	}

	for u, rs := range fa.Ranges {
		s.ranges[u] = append(append([]unit.ByteRange(nil), s.ranges[u]...), rs...)
	}
}

// FileFor returns the file a unit was recorded in, if any.
func (s *State) FileFor(u unit.CodeUnit) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fileOf[u]
	return f, ok
}

func mergeUnitLists(existing, incoming []unit.CodeUnit) []unit.CodeUnit {
	merged := append([]unit.CodeUnit(nil), existing...)
	for _, u := range incoming {
		found := false
		for _, e := range merged {
			if e == u {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, u)
		}
	}
	return merged
}

func unitListsEqual(a, b []unit.CodeUnit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
