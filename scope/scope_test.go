package scope

import (
	"testing"

	"github.com/arjunmenon/ecmalite/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_LookupWalksParentChain(t *testing.T) {
	global := NewGlobal()
	global.DeclareLoopBinding("outer", parser.DeclLet, 1)

	fn := global.NewChild(Function)
	block := fn.NewChild(Block)

	v, err := block.Get("outer")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestEnvironment_ShadowingDoesNotMutateParent(t *testing.T) {
	global := NewGlobal()
	global.DeclareLoopBinding("x", parser.DeclLet, "outer")

	block := global.NewChild(Block)
	_, err := block.DeclareTDZ("x", parser.DeclLet)
	require.NoError(t, err)
	b, _, _ := block.Lookup("x")
	block.Initialize(b, "inner")

	innerVal, _ := block.Get("x")
	outerVal, _ := global.Get("x")
	assert.Equal(t, "inner", innerVal)
	assert.Equal(t, "outer", outerVal)
}

func TestEnvironment_VarHoistsToFunctionScope(t *testing.T) {
	global := NewGlobal()
	fn := global.NewChild(Function)
	block := fn.NewChild(Block)

	b := block.DeclareVar("v")
	assert.Same(t, b, fn.names["v"])
	_, ok := block.own("v")
	assert.False(t, ok, "var must not be declared in the block itself")
}

func TestEnvironment_VarRedeclarationKeepsSameBinding(t *testing.T) {
	fn := NewGlobal().NewChild(Function)
	first := fn.DeclareVar("v")
	fn.Assign("v", 5)
	second := fn.DeclareVar("v")
	assert.Same(t, first, second)
	val, _ := fn.Get("v")
	assert.Equal(t, 5, val)
}

func TestEnvironment_TDZBeforeInitializationThrows(t *testing.T) {
	block := NewGlobal().NewChild(Block)
	_, err := block.DeclareTDZ("x", parser.DeclLet)
	require.NoError(t, err)

	_, err = block.Get("x")
	var tdz *TDZError
	assert.ErrorAs(t, err, &tdz)

	b, _, _ := block.Lookup("x")
	block.Initialize(b, 42)
	v, err := block.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestEnvironment_RedeclarationInSameBlockErrors(t *testing.T) {
	block := NewGlobal().NewChild(Block)
	_, err := block.DeclareTDZ("x", parser.DeclLet)
	require.NoError(t, err)
	_, err = block.DeclareTDZ("x", parser.DeclLet)
	var redecl *RedeclarationError
	assert.ErrorAs(t, err, &redecl)
}

func TestEnvironment_ConstReassignmentErrors(t *testing.T) {
	block := NewGlobal().NewChild(Block)
	b, err := block.DeclareTDZ("c", parser.DeclConst)
	require.NoError(t, err)
	block.Initialize(b, 1)

	err = block.Assign("c", 2)
	var constErr *ConstReassignError
	assert.ErrorAs(t, err, &constErr)
}

func TestEnvironment_AssignToUndeclaredCreatesImplicitGlobal(t *testing.T) {
	global := NewGlobal()
	block := global.NewChild(Block)

	err := block.Assign("g", 7)
	require.NoError(t, err)

	_, ok := global.own("g")
	assert.True(t, ok)
	v, _ := global.Get("g")
	assert.Equal(t, 7, v)
}

// TestEnvironment_PerIterationLoopBindingsAreDistinctCells simulates what
// the evaluator does for "for (let i = 0; i < 3; i++) { closures.push(() => i) }":
// each iteration body gets a fresh Binding cell, so captured closures observe
// the value as of their own iteration rather than the final one.
func TestEnvironment_PerIterationLoopBindingsAreDistinctCells(t *testing.T) {
	global := NewGlobal()
	loopInit := global.NewChild(LoopInit)
	loopInit.DeclareLoopBinding("i", parser.DeclLet, 0)

	var captured []*Binding
	for iter := 0; iter < 3; iter++ {
		body := loopInit.NewChild(LoopBody)
		b := body.DeclareLoopBinding("i", parser.DeclLet, iter)
		captured = append(captured, b)
	}

	for i, b := range captured {
		assert.Equal(t, i, b.Value)
	}
	assert.NotSame(t, captured[0], captured[1])
	assert.NotSame(t, captured[1], captured[2])
}
