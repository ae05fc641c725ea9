package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagl/interpreter-go/pkg/ast"
	"tagl/interpreter-go/pkg/diag"
)

func TestEnvironmentDefineShadowsOnlyCurrentScope(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("x", StringValue{Val: "outer"})
	child := root.Extend()
	child.Define("x", StringValue{Val: "inner"})

	v, err := child.Get("x")
	require.NoError(t, err)
	assert.Equal(t, StringValue{Val: "inner"}, v)

	v, err = root.Get("x")
	require.NoError(t, err)
	assert.Equal(t, StringValue{Val: "outer"}, v)
}

func TestEnvironmentAssignWalksUp(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("x", IntegerValue{Val: 1})
	child := root.Extend().Extend()

	require.NoError(t, child.Assign("x", IntegerValue{Val: 2}))
	v, ok := root.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, IntegerValue{Val: 2}, v)
	assert.Empty(t, child.Keys())

	err := child.Assign("missing", NullValue{})
	if assert.Error(t, err) {
		assert.Equal(t, "Undefined variable 'missing'", err.Error())
		assert.True(t, diag.Is(err, diag.CodeUndefinedVariable))
	}
}

func TestEnvironmentGetMissing(t *testing.T) {
	_, err := NewEnvironment(nil).Get("nope")
	if assert.Error(t, err) {
		stage, ok := diag.StageOf(err)
		assert.True(t, ok)
		assert.Equal(t, diag.StageRuntime, stage)
	}
}

func TestEnvironmentKeysAndSnapshot(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", NullValue{})
	env.Define("a", BoolValue{Val: true})
	assert.Equal(t, []string{"a", "b"}, env.Keys())

	snap := env.Snapshot()
	env.Define("c", NullValue{})
	env.Define("a", BoolValue{Val: false})
	assert.Len(t, snap, 2)

	env.Restore(snap)
	assert.Equal(t, []string{"a", "b"}, env.Keys())
	v, ok := env.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, BoolValue{Val: true}, v)

	// later definitions do not leak into the snapshot
	env.Define("d", NullValue{})
	assert.Len(t, snap, 2)
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{BoolValue{Val: true}, true},
		{BoolValue{Val: false}, false},
		{NullValue{}, false},
		{IntegerValue{Val: 0}, false},
		{IntegerValue{Val: -3}, true},
		{StringValue{Val: ""}, false},
		{StringValue{Val: "x"}, true},
		{FunctionValue{Name: "f"}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Truthy(tc.value), "%#v", tc.value)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(StringValue{Val: "a"}, StringValue{Val: "a"}))
	assert.False(t, Equal(StringValue{Val: "a"}, StringValue{Val: "b"}))
	assert.True(t, Equal(IntegerValue{Val: 5}, IntegerValue{Val: 5}))
	assert.True(t, Equal(BoolValue{Val: false}, BoolValue{Val: false}))
	assert.True(t, Equal(NullValue{}, NullValue{}))
	assert.False(t, Equal(StringValue{Val: "1"}, IntegerValue{Val: 1}))
	assert.False(t, Equal(NullValue{}, BoolValue{Val: false}))
	assert.False(t, Equal(FunctionValue{Name: "f"}, FunctionValue{Name: "f"}))
}

func TestNewFunctionValueCopiesDeclaration(t *testing.T) {
	decl := ast.Fn("f", ast.Params(ast.Param("x", "String")), ast.Call("print", ast.ID("x")))
	fn := NewFunctionValue(decl)
	decl.Body[0] = ast.Note("changed")

	assert.Equal(t, "f", fn.Name)
	assert.Len(t, fn.Params, 1)
	_, stillCall := fn.Body[0].(*ast.FunctionCall)
	assert.True(t, stillCall)
	assert.Equal(t, KindFunction, fn.Kind())
	assert.Equal(t, "function", fn.Kind().String())
}
