package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelforge/skelforge/pkg/adapter/golang"
	"github.com/skelforge/skelforge/pkg/engine"
	"github.com/skelforge/skelforge/pkg/queries"
	"github.com/skelforge/skelforge/pkg/tsparser"
)

const sampleServer = `package sample

type Server struct {
	addr string
}

func (s *Server) Handle() {
}

func New() *Server {
	return &Server{}
}
`

func setupEngine(t *testing.T) (*engine.Engine, *queries.Manager, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "server.go")
	require.NoError(t, os.WriteFile(path, []byte(sampleServer), 0o644))

	parsers := tsparser.NewManager(nil)
	qmanager := queries.NewManager(parsers, nil)
	return engine.New(parsers, qmanager, nil), qmanager, path
}

// TestAnalyzeFile_GoMethodIsChildOfReceiver guards the classChain/parent
// invariant for Go: a method_declaration's receiver must resolve it as a
// recorded child of its receiver struct's Code Unit, not a sibling
// top-level declaration that merely shares an FQN prefix.
func TestAnalyzeFile_GoMethodIsChildOfReceiver(t *testing.T) {
	eng, qmanager, path := setupEngine(t)
	ad := golang.New(qmanager)

	fa, err := eng.AnalyzeFile(context.Background(), path, ad)
	require.NoError(t, err)

	var foundServer, foundHandle bool
	for u := range fa.Signatures {
		if u.FQName() == "sample.Server" {
			foundServer = true
		}
		if u.FQName() == "sample.Server.Handle" {
			foundHandle = true
		}
	}
	require.True(t, foundServer, "expected sample.Server in signatures")
	require.True(t, foundHandle, "expected sample.Server.Handle in signatures")

	for _, top := range fa.TopLevel {
		assert.NotEqual(t, "sample.Server.Handle", top.FQName(),
			"Handle must not be recorded as a top-level declaration")
	}

	var nested bool
	for parent, children := range fa.Children {
		if parent.FQName() != "sample.Server" {
			continue
		}
		for _, c := range children {
			if c.FQName() == "sample.Server.Handle" {
				nested = true
			}
		}
	}
	assert.True(t, nested, "Handle must be recorded as a child of Server")
}
