package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFQName(t *testing.T) {
	assert.Equal(t, "pkg.Foo", CodeUnit{PackageName: "pkg", ShortName: "Foo"}.FQName())
	assert.Equal(t, "Foo", CodeUnit{ShortName: "Foo"}.FQName())
}

func TestClassChild(t *testing.T) {
	assert.Equal(t, "Outer$Inner", ClassChild("Outer", "Inner"))
	assert.Equal(t, "Outer", ClassChild("", "Outer"))
}

func TestFieldChild(t *testing.T) {
	assert.Equal(t, "Outer.field", FieldChild("Outer", "field"))
	assert.Equal(t, ModulePrefix+"field", FieldChild("", "field"))
}

func TestFunctionChild(t *testing.T) {
	assert.Equal(t, "Outer.method", FunctionChild("Outer", "method"))
	assert.Equal(t, "topLevel", FunctionChild("", "topLevel"))
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "Inner", LastSegment("Outer$Inner"))
	assert.Equal(t, "method", LastSegment("Outer.method"))
	assert.Equal(t, "Foo", LastSegment("Foo"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "class", Class.String())
	assert.Equal(t, "function", Function.String())
	assert.Equal(t, "field", Field.String())
	assert.Equal(t, "module", Module.String())
}
