package javascript

import (
	"strings"

	"github.com/skelforge/skelforge/pkg/adapter"
	"github.com/skelforge/skelforge/pkg/unit"
)

// DedupeFieldArrows mirrors the TypeScript adapter's §4.4 rule 1: a
// module-level const bound to an arrow function or function expression is
// captured both as a function-kind unit and, via the query's
// lexical_declaration pattern, as a field-kind "_module_." duplicate.
func (a *Adapter) DedupeFieldArrows(fileResult *adapter.FileResult) {
	funcBasenames := make(map[string]bool)
	for u := range fileResult.Signatures {
		if u.Kind == unit.Function && u.ShortName == unit.LastSegment(u.ShortName) {
			funcBasenames[u.ShortName] = true
		}
	}
	if len(funcBasenames) == 0 {
		return
	}

	var drop []unit.CodeUnit
	for u := range fileResult.Signatures {
		if u.Kind != unit.Field || !strings.HasPrefix(u.ShortName, unit.ModulePrefix) {
			continue
		}
		if funcBasenames[strings.TrimPrefix(u.ShortName, unit.ModulePrefix)] {
			drop = append(drop, u)
		}
	}

	for _, u := range drop {
		delete(fileResult.Signatures, u)
		delete(fileResult.Ranges, u)
		delete(fileResult.Children, u)
		out := fileResult.TopLevel[:0:0]
		for _, existing := range fileResult.TopLevel {
			if existing != u {
				out = append(out, existing)
			}
		}
		fileResult.TopLevel = out
	}
}

// CleanupSkeletonLines opts into the line-dedup and default-export
// preference subset of §4.4 (rules 4 and 5) but not the nested-arrow filter (rule 2 —
// JavaScript's simpler query set never captures an arrow nested in
// another function's body as a top-level or class-level declaration the
// way TypeScript's can) or the enum-comma rule (rule 3 — no enums).
func (a *Adapter) CleanupSkeletonLines(lines []string, source []byte) []string {
	lines = dedupeLines(lines)
	lines = preferDefaultExport(lines)
	return lines
}

func dedupeLines(lines []string) []string {
	working := append([]string(nil), lines...)
	seen := make(map[string]int, len(working))
	out := make([]string, 0, len(working))

	for _, line := range working {
		key := dedupeKey(line)
		if idx, ok := seen[key]; ok {
			if betterDedupeVariant(line, out[idx]) {
				out[idx] = line
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, line)
	}
	return out
}

func dedupeKey(line string) string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "export default ")
	t = strings.TrimPrefix(t, "export ")
	if idx := strings.Index(t, "=>"); idx != -1 {
		t = strings.TrimSpace(t[:idx])
	}
	return t
}

func betterDedupeVariant(candidate, existing string) bool {
	candExport := strings.HasPrefix(strings.TrimSpace(candidate), "export ")
	exisExport := strings.HasPrefix(strings.TrimSpace(existing), "export ")
	if candExport != exisExport {
		return candExport
	}
	candBody := strings.Contains(candidate, "{ ... }")
	exisBody := strings.Contains(existing, "{ ... }")
	return candBody && !exisBody
}

func preferDefaultExport(lines []string) []string {
	hasDefault := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "export default") {
			hasDefault = true
			break
		}
	}
	if !hasDefault {
		return lines
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "export default") || !strings.HasPrefix(trimmed, "export ") {
			out = append(out, line)
		}
	}
	return out
}
