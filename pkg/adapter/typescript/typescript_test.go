package typescript_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelforge/skelforge/pkg/adapter/typescript"
	"github.com/skelforge/skelforge/pkg/analyzer"
	"github.com/skelforge/skelforge/pkg/harness"
)

const samplePoint = `export class Point {
  x: number;

  constructor(x: number) {
    this.x = x;
  }

  distance(p: Point): number {
    return Math.abs(this.x - p.x);
  }
}

export const add = (a: number, b: number): number => {
  return a + b;
};
`

func setupTSAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.ts"), []byte(samplePoint), 0o644))

	_, _, eng := harness.NewEngineStack(nil)
	ad := typescript.New()
	adapters := harness.DefaultAdapters(nil, nil, ad)

	result, err := harness.Run(context.Background(), eng, adapters, harness.Options{
		RootDir:    dir,
		ScanConfig: harness.DefaultScanConfig(),
	})
	require.NoError(t, err)
	require.Empty(t, result.Skipped)

	az, err := analyzer.New(result.State, analyzer.Adapters(adapters), analyzer.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { az.Close() })

	return az
}

// TestGetSkeleton_ExportedClassWithMethod grounds S1: an exported class
// with a field and two methods reconstructs with its header, its field,
// and both methods nested inside, each with a body placeholder.
func TestGetSkeleton_ExportedClassWithMethod(t *testing.T) {
	az := setupTSAnalyzer(t)

	skeleton, ok := az.GetSkeleton("Point")
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(skeleton, "export class Point {"))
	assert.Contains(t, skeleton, "x: number")
	assert.Contains(t, skeleton, "constructor(x: number)")
	assert.Contains(t, skeleton, "distance(p: Point): number")
	assert.True(t, strings.HasSuffix(skeleton, "}"))

	members := az.GetMembersInClass("Point")
	var names []string
	for _, m := range members {
		names = append(names, m.FQName())
	}
	assert.Contains(t, names, "Point.constructor")
	assert.Contains(t, names, "Point.distance")
}

// TestGetSkeleton_ExportedArrowFunction grounds S3: an exported arrow
// function renders as a single const declaration with no duplicate
// "_module_.add" field unit left over from DedupeFieldArrows.
func TestGetSkeleton_ExportedArrowFunction(t *testing.T) {
	az := setupTSAnalyzer(t)

	skeleton, ok := az.GetSkeleton("add")
	require.True(t, ok)
	assert.Contains(t, skeleton, "export const add = (a: number, b: number): number =>")

	matches := az.SearchDefinitions("add")
	var shortNames []string
	for _, m := range matches {
		shortNames = append(shortNames, m.ShortName)
	}
	assert.Contains(t, shortNames, "add")
	assert.NotContains(t, shortNames, "_module_.add", "the field-kind duplicate must be dropped by DedupeFieldArrows")
}
