package linker

import (
	"github.com/wasmjit-omr/winter/internal/memory"
	"github.com/wasmjit-omr/winter/internal/sandbox"
	"github.com/wasmjit-omr/winter/internal/wasmassert"
	"github.com/wasmjit-omr/winter/internal/wasmmodule"
)

// Module is a partially instantiated module: a decoded module bound to a
// sandbox, with shared artifacts (shared memories, unlinked functions)
// already constructed so that compilation and shared-backing allocation can
// be amortized across every Instance built from it.
type Module struct {
	sandbox *sandbox.Sandbox

	imports  []wasmmodule.ImportDescriptor
	exports  []wasmmodule.ExportDescriptor
	memories []wasmmodule.MemoryDescriptor

	sharedMemories []*memory.Memory // nil except for defined-shared slots
	importFuncSigs []*sandbox.FuncSig // nil except for import slots
	funcs          []*UnlinkedFunc    // nil except for defined slots
}

// Instantiate partially instantiates decoded within sb: interning import
// signatures, constructing unlinked functions for defined functions, and
// preallocating shared memories for defined-shared slots.
func Instantiate(decoded *wasmmodule.DecodedModule, sb *sandbox.Sandbox) *Module {
	m := &Module{
		sandbox:  sb,
		imports:  append([]wasmmodule.ImportDescriptor(nil), decoded.Imports...),
		exports:  append([]wasmmodule.ExportDescriptor(nil), decoded.Exports...),
		memories: append([]wasmmodule.MemoryDescriptor(nil), decoded.Memories...),
	}

	m.importFuncSigs = make([]*sandbox.FuncSig, len(decoded.Funcs))
	m.funcs = make([]*UnlinkedFunc, len(decoded.Funcs))
	for i, fd := range decoded.Funcs {
		if fd.IsImport {
			m.importFuncSigs[i] = sb.Types().Intern(fd.Sig)
		} else {
			sig := sb.Types().Intern(fd.Sig)
			f := instantiateUnlinkedFunc(fd, sig)
			f.sandboxID = sb.ID()
			m.funcs[i] = f
		}
	}

	m.sharedMemories = make([]*memory.Memory, len(decoded.Memories))
	for i, md := range decoded.Memories {
		if md.Shared && !md.IsImport {
			mem := memory.NewShared(memory.NumPages(md.InitialPages), memory.NumPages(md.MaxPages))
			mem.SetSandboxID(sb.ID())
			m.sharedMemories[i] = mem
		}
	}

	return m
}

// Sandbox returns the sandbox this module was instantiated within.
func (m *Module) Sandbox() *sandbox.Sandbox { return m.sandbox }

// Imports returns the module's import descriptors.
func (m *Module) Imports() []wasmmodule.ImportDescriptor { return m.imports }

// Exports returns the module's export descriptors.
func (m *Module) Exports() []wasmmodule.ExportDescriptor { return m.exports }

// Funcs returns the module's function slots; import slots are nil.
func (m *Module) Funcs() []*UnlinkedFunc { return m.funcs }

func (m *Module) requireValidFuncSlot(idx int) {
	wasmassert.Require(idx >= 0 && idx < len(m.funcs), "import to out-of-bounds function index")
}

func (m *Module) requireValidMemorySlot(idx int) {
	wasmassert.Require(idx >= 0 && idx < len(m.memories), "import to out-of-bounds memory index")
}
