package linker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmjit-omr/winter/internal/linker"
	"github.com/wasmjit-omr/winter/internal/memory"
	"github.com/wasmjit-omr/winter/internal/sandbox"
	"github.com/wasmjit-omr/winter/internal/sandboxtest"
	"github.com/wasmjit-omr/winter/internal/wasmmodule"
)

func TestCompositeImportModuleFirstHitWins(t *testing.T) {
	sb := sandbox.New()
	sig := sb.Types().Intern(sandbox.FuncSig{})

	first := linker.NewMockLinkedFunc(sig)
	second := linker.NewMockLinkedFunc(sig)

	composite := &linker.CompositeImportModule{
		Modules: []linker.ImportModule{
			sandboxtest.ForFunc("func", first),
			sandboxtest.ForFunc("func", second),
		},
	}

	imp := wasmmodule.ImportDescriptor{Module: "mod", Name: "func", Kind: wasmmodule.KindFunc, Index: 0}
	found, err := composite.FindFunc(imp)
	require.NoError(t, err)
	assert.Same(t, first, found)
}

func TestCompositeImportModuleFallsThroughOnMiss(t *testing.T) {
	mem := memory.NewUnshared(1, 2)
	composite := &linker.CompositeImportModule{
		Modules: []linker.ImportModule{
			sandboxtest.Empty(),
			sandboxtest.ForMemory("mem", mem),
		},
	}

	imp := wasmmodule.ImportDescriptor{Module: "mod", Name: "mem", Kind: wasmmodule.KindMemory, Index: 0}
	found, err := composite.FindMemory(imp)
	require.NoError(t, err)
	assert.Same(t, mem, found)
}

func TestCompositeImportModuleNoMatch(t *testing.T) {
	composite := &linker.CompositeImportModule{
		Modules: []linker.ImportModule{sandboxtest.Empty(), sandboxtest.Empty()},
	}

	imp := wasmmodule.ImportDescriptor{Module: "mod", Name: "func", Kind: wasmmodule.KindFunc, Index: 0}
	found, err := composite.FindFunc(imp)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCompositeImportModulePropagatesWrongKindError(t *testing.T) {
	sb := sandbox.New()
	decoded := &wasmmodule.DecodedModule{
		Exports:  []wasmmodule.ExportDescriptor{{Name: "thing", Kind: wasmmodule.KindMemory, Index: 0}},
		Memories: []wasmmodule.MemoryDescriptor{{InitialPages: 1, MaxPages: 1}},
	}
	mod := linker.Instantiate(decoded, sb)
	inst, err := linker.New(mod, linker.NewEnvironment())
	require.NoError(t, err)

	composite := &linker.CompositeImportModule{Modules: []linker.ImportModule{inst}}

	imp := wasmmodule.ImportDescriptor{Module: "mod", Name: "thing", Kind: wasmmodule.KindFunc, Index: 0}
	_, err = composite.FindFunc(imp)
	require.Error(t, err)
	le, ok := err.(*linker.LinkError)
	require.True(t, ok)
	assert.Equal(t, linker.WrongExportKind, le.Kind)
}
