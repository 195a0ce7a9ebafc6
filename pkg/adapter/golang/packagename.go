package golang

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/skelforge/skelforge/pkg/buffer"
)

// packageNameFromPath reads file's package_clause directly, independent of
// the engine's own parse of the same file: DeterminePackageName's contract
// only takes a path, not the already-parsed tree, so Go's override (the
// one adapter that can't use the directory-path convention) does its own
// minimal read. A line-scan for the leading "package <name>" keyword is
// enough — gofmt'd source always states it on its own line before any
// other declaration — so this never needs a second tree-sitter parse.
func packageNameFromPath(file string) string {
	buf, err := buffer.Load(file)
	if err != nil {
		return ""
	}

	scanner := bufio.NewScanner(bytes.NewReader(buf.Src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "package ") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(line, "package "))
		if idx := strings.IndexAny(name, " \t/"); idx != -1 {
			name = name[:idx]
		}
		return name
	}
	return ""
}
