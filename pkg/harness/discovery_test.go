package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"main.go":                 "package main\n",
		"main_test.go":            "package main\n",
		"src/app.ts":              "export const x = 1;\n",
		"src/app.test.ts":         "test('x', () => {});\n",
		"node_modules/dep/lib.js": "module.exports = {};\n",
		"README.md":               "# hi\n",
	}
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

func TestDiscoverFiles_DefaultConfig(t *testing.T) {
	dir := writeTestTree(t)

	files, err := DiscoverFiles(dir, DefaultScanConfig())
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}

	assert.Contains(t, rels, "main.go")
	assert.Contains(t, rels, "src/app.ts")
	assert.NotContains(t, rels, "main_test.go")
	assert.NotContains(t, rels, "src/app.test.ts")
	assert.NotContains(t, rels, "node_modules/dep/lib.js")
	assert.NotContains(t, rels, "README.md")
}

func TestDiscoverFiles_CustomInclude(t *testing.T) {
	dir := writeTestTree(t)

	files, err := DiscoverFiles(dir, ScanConfig{Include: []string{"**/*.go"}})
	require.NoError(t, err)
	require.Len(t, files, 2) // main.go and main_test.go, no exclude set
}

func TestDiscoverFiles_InvalidPattern(t *testing.T) {
	_, err := DiscoverFiles(t.TempDir(), ScanConfig{Include: []string{"["}})
	assert.Error(t, err)
}

func TestDiscoverFiles_SkelforgeIgnore(t *testing.T) {
	dir := writeTestTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".skelforgeignore"), []byte("src/\n"), 0o644))

	files, err := DiscoverFiles(dir, DefaultScanConfig())
	require.NoError(t, err)

	for _, f := range files {
		rel, _ := filepath.Rel(dir, f)
		assert.NotContains(t, filepath.ToSlash(rel), "src/")
	}
}
