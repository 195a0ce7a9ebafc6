package analyzer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelforge/skelforge/pkg/adapter/golang"
	"github.com/skelforge/skelforge/pkg/analyzer"
	"github.com/skelforge/skelforge/pkg/harness"
)

const sampleGo = `package sample

// Greeter says hello.
type Greeter struct {
	Name string
}

func (g *Greeter) Greet() string {
	return "hello " + g.Name
}

func NewGreeter(name string) *Greeter {
	return &Greeter{Name: name}
}
`

func setupAnalyzer(t *testing.T) (*analyzer.Analyzer, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greeter.go"), []byte(sampleGo), 0o644))

	_, qmanager, eng := harness.NewEngineStack(nil)
	adapters := harness.DefaultAdapters(golang.New(qmanager), nil, nil)

	result, err := harness.Run(context.Background(), eng, adapters, harness.Options{
		RootDir:    dir,
		ScanConfig: harness.DefaultScanConfig(),
	})
	require.NoError(t, err)
	require.Empty(t, result.Skipped)

	az, err := analyzer.New(result.State, analyzer.Adapters(adapters), analyzer.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { az.Close() })

	return az, dir
}

func TestAnalyzer_GetAllDeclarations(t *testing.T) {
	az, _ := setupAnalyzer(t)

	decls := az.GetAllDeclarations()
	require.NotEmpty(t, decls)

	for _, d := range decls {
		assert.Equal(t, "class", d.Kind.String(), "GetAllDeclarations must only return class-kind units")
	}

	names := make(map[string]bool)
	for _, d := range decls {
		names[d.FQName()] = true
	}
	assert.True(t, names["sample.Greeter"], "expected sample.Greeter in %v", names)
}

func TestAnalyzer_GetSkeleton(t *testing.T) {
	az, _ := setupAnalyzer(t)

	skeleton, ok := az.GetSkeleton("sample.Greeter")
	require.True(t, ok)
	assert.Contains(t, skeleton, "Greeter")

	header, ok := az.GetSkeletonHeader("sample.Greeter")
	require.True(t, ok)
	assert.NotEmpty(t, header)
}

func TestAnalyzer_SearchDefinitions(t *testing.T) {
	az, _ := setupAnalyzer(t)

	matches := az.SearchDefinitions("Greet")
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.Contains(t, m.FQName(), "Greet")
	}
}

func TestAnalyzer_GetDeclarationsInFile(t *testing.T) {
	az, dir := setupAnalyzer(t)

	decls := az.GetDeclarationsInFile(filepath.Join(dir, "greeter.go"))
	assert.NotEmpty(t, decls)
}

// TestAnalyzer_GoMethodNestsUnderReceiver guards the §3 classChain/parent
// invariant for Go: a method_declaration's receiver type must resolve it
// as a child of its receiver struct, not merely give it a matching FQN
// prefix while sitting at the top level.
func TestAnalyzer_GoMethodNestsUnderReceiver(t *testing.T) {
	az, _ := setupAnalyzer(t)

	members := az.GetMembersInClass("sample.Greeter")
	require.NotEmpty(t, members, "Greeter should have at least one member")

	var names []string
	for _, m := range members {
		names = append(names, m.FQName())
	}
	assert.Contains(t, names, "sample.Greeter.Greet")
}

func TestAnalyzer_GetClassSource_NotFound(t *testing.T) {
	az, _ := setupAnalyzer(t)

	_, err := az.GetClassSource("sample.DoesNotExist")
	assert.ErrorIs(t, err, analyzer.ErrSymbolNotFound)
}

func TestEstimateTokens(t *testing.T) {
	n := analyzer.EstimateTokens("func Greet() string { return \"hi\" }")
	assert.Greater(t, n, 0)
}
