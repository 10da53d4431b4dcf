package sandbox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmjit-omr/winter/internal/sandbox"
)

func TestInternReturnsSamePointerForEqualSignatures(t *testing.T) {
	var interner sandbox.TypeInterner

	sig := sandbox.FuncSig{Params: []sandbox.ValueType{sandbox.I32()}, Results: []sandbox.ValueType{sandbox.I64()}}
	a := interner.Intern(sig)
	b := interner.Intern(sandbox.FuncSig{Params: []sandbox.ValueType{sandbox.I32()}, Results: []sandbox.ValueType{sandbox.I64()}})

	assert.Same(t, a, b)
	assert.Equal(t, 1, interner.Len())
}

func TestInternReturnsDistinctPointersForDifferentSignatures(t *testing.T) {
	var interner sandbox.TypeInterner

	a := interner.Intern(sandbox.FuncSig{Params: []sandbox.ValueType{sandbox.I32()}})
	b := interner.Intern(sandbox.FuncSig{Params: []sandbox.ValueType{sandbox.I64()}})

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, interner.Len())
}

func TestFuncRefAssignability(t *testing.T) {
	var interner sandbox.TypeInterner
	sig := interner.Intern(sandbox.FuncSig{Params: []sandbox.ValueType{sandbox.I32()}})
	otherSig := interner.Intern(sandbox.FuncSig{Params: []sandbox.ValueType{sandbox.I64()}})

	require.True(t, sandbox.IsAssignableTo(sandbox.FuncRef(nil), sandbox.FuncRef(sig)))
	require.True(t, sandbox.IsAssignableTo(sandbox.FuncRef(sig), sandbox.FuncRef(sig)))
	require.False(t, sandbox.IsAssignableTo(sandbox.FuncRef(sig), sandbox.FuncRef(otherSig)))
	require.False(t, sandbox.IsAssignableTo(sandbox.FuncRef(nil), sandbox.I32()))
}

func TestPrimitiveAssignability(t *testing.T) {
	assert.True(t, sandbox.IsAssignableTo(sandbox.I32(), sandbox.I32()))
	assert.False(t, sandbox.IsAssignableTo(sandbox.I32(), sandbox.I64()))
	assert.False(t, sandbox.IsAssignableTo(sandbox.F32(), sandbox.F64()))
}

func TestMaxSandboxesCeilingIsEnforced(t *testing.T) {
	sandbox.SetMaxSandboxes(1)
	defer sandbox.SetMaxSandboxes(0)

	sb := sandbox.New()
	defer sb.Close()

	assert.Panics(t, func() { sandbox.New() })
}

func TestMaxSandboxesCeilingReleasesOnClose(t *testing.T) {
	sandbox.SetMaxSandboxes(1)
	defer sandbox.SetMaxSandboxes(0)

	sb := sandbox.New()
	require.NoError(t, sb.Close())

	assert.NotPanics(t, func() { sandbox.New() })
}
