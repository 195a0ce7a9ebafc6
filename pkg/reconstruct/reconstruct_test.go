package reconstruct_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skelforge/skelforge/pkg/adapter/golang"
	"github.com/skelforge/skelforge/pkg/reconstruct"
	"github.com/skelforge/skelforge/pkg/unit"
)

type fakeTree struct {
	children map[unit.CodeUnit][]unit.CodeUnit
	sigs     map[unit.CodeUnit][]string
}

func (f fakeTree) Children(u unit.CodeUnit) []unit.CodeUnit { return f.children[u] }
func (f fakeTree) Signatures(u unit.CodeUnit) []string      { return f.sigs[u] }

func TestReconstruct_ClassWithChild(t *testing.T) {
	parent := unit.CodeUnit{Kind: unit.Class, File: "f.go", PackageName: "sample", ShortName: "Greeter"}
	child := unit.CodeUnit{Kind: unit.Function, File: "f.go", PackageName: "sample", ShortName: "Greeter.Greet"}

	tree := fakeTree{
		children: map[unit.CodeUnit][]unit.CodeUnit{parent: {child}},
		sigs: map[unit.CodeUnit][]string{
			parent: {"type Greeter struct {"},
			child:  {"func (g *Greeter) Greet() string {"},
		},
	}

	ad := golang.New(nil)
	out := reconstruct.Reconstruct(parent, tree, tree, ad, 0)

	assert.Contains(t, out, "type Greeter struct {")
	assert.Contains(t, out, "  func (g *Greeter) Greet() string {")
	assert.Contains(t, out, "}")
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "type Greeter struct {", reconstruct.Header("\n  \ntype Greeter struct {\n  field int\n"))
	assert.Equal(t, "", reconstruct.Header("\n  \n"))
}
