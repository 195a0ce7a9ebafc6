package harness_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelforge/skelforge/pkg/adapter/golang"
	"github.com/skelforge/skelforge/pkg/harness"
)

func TestRun_MergesGoFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package sample\n\nfunc A() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package sample\n\nfunc B() {}\n"), 0o644))

	_, qmanager, eng := harness.NewEngineStack(nil)
	adapters := harness.DefaultAdapters(golang.New(qmanager), nil, nil)

	var progressed []int
	result, err := harness.Run(context.Background(), eng, adapters, harness.Options{
		RootDir:    dir,
		ScanConfig: harness.DefaultScanConfig(),
		Progress:   func(done, total int) { progressed = append(progressed, done) },
	})
	require.NoError(t, err)

	assert.Empty(t, result.Skipped)
	assert.Len(t, result.Files, 2)
	assert.NotEmpty(t, progressed)

	units := result.State.AllUnits()
	var names []string
	for _, u := range units {
		names = append(names, u.FQName())
	}
	assert.Contains(t, names, "sample.A")
	assert.Contains(t, names, "sample.B")
}

func TestRun_SkipsUnknownLanguage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes\n"), 0o644))

	_, qmanager, eng := harness.NewEngineStack(nil)
	adapters := harness.DefaultAdapters(golang.New(qmanager), nil, nil)

	result, err := harness.Run(context.Background(), eng, adapters, harness.Options{
		RootDir:    dir,
		ScanConfig: harness.ScanConfig{Include: []string{"**/*.go", "**/*.md"}},
	})
	require.NoError(t, err)
	assert.Len(t, result.Files, 1)
}
