// Package language identifies which grammar a source file should be parsed
// with and carries the small per-language facts (extensions, JSX/TSX
// variants) the rest of the pipeline needs without importing tree-sitter
// itself.
package language

import (
	"path/filepath"
	"strings"
)

// Language is one of the grammars the extraction engine supports.
type Language int

const (
	// TypeScript covers .ts, .mts, .cts and .tsx (the latter via the TSX
	// grammar variant, selected separately through IsTSXFile).
	TypeScript Language = iota
	// JavaScript covers .js, .jsx, .mjs, .cjs.
	JavaScript
	// Go covers .go.
	Go
	// Unknown is returned for extensions with no registered adapter.
	Unknown
)

func (l Language) String() string {
	switch l {
	case TypeScript:
		return "typescript"
	case JavaScript:
		return "javascript"
	case Go:
		return "go"
	default:
		return "unknown"
	}
}

// Detect maps a file path's extension to a Language. Returns Unknown for
// extensions with no registered adapter.
func Detect(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts", ".tsx":
		return TypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript
	case ".go":
		return Go
	default:
		return Unknown
	}
}

// IsTSXFile reports whether filePath should be parsed with the TSX grammar
// variant rather than plain TypeScript.
func IsTSXFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".tsx"
}

// IsJSXFile reports whether filePath is a .jsx file.
func IsJSXFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".jsx"
}

// Parse converts a language name (as used in .skelforge.yaml or CLI flags)
// to a Language. Returns Unknown for unrecognized names.
func Parse(name string) Language {
	switch strings.ToLower(name) {
	case "typescript", "ts", "tsx":
		return TypeScript
	case "javascript", "js", "jsx":
		return JavaScript
	case "go", "golang":
		return Go
	default:
		return Unknown
	}
}

// Supported returns every language the engine can extract skeletons from.
func Supported() []Language {
	return []Language{TypeScript, JavaScript, Go}
}

// Extensions returns the file extensions routed to l, in the order Detect
// prefers them.
func Extensions(l Language) []string {
	switch l {
	case TypeScript:
		return []string{".ts", ".tsx", ".mts", ".cts"}
	case JavaScript:
		return []string{".js", ".jsx", ".mjs", ".cjs"}
	case Go:
		return []string{".go"}
	default:
		return nil
	}
}
