package linker

import (
	"github.com/google/uuid"

	"github.com/wasmjit-omr/winter/internal/memory"
	"github.com/wasmjit-omr/winter/internal/sandbox"
	"github.com/wasmjit-omr/winter/internal/wasmassert"
	"github.com/wasmjit-omr/winter/internal/wasmmodule"
)

// ModuleInstanceInternal is the address-stable record for an Instance:
// parallel arrays of memory-internal and linked-function-internal pointers,
// indexed identically to the instance's logical memory/function tables.
type ModuleInstanceInternal struct {
	MemoryTable []*memory.Internal
	FuncTable   []*LinkedFuncInternal

	Container *Instance
}

// Instance is a fully linked, runnable module instance.
type Instance struct {
	internal ModuleInstanceInternal

	sandbox *sandbox.Sandbox
	exports []wasmmodule.ExportDescriptor

	funcs       []*LinkedFunc
	ownedFuncs  []*LinkedFunc
	memories    []*memory.Memory
	ownMemories []bool // true where this instance exclusively owns an unshared memory

	closed bool
}

// Internal returns the address-stable internal record for this instance.
func (i *Instance) Internal() *ModuleInstanceInternal { return &i.internal }

// Sandbox returns the sandbox this instance belongs to.
func (i *Instance) Sandbox() *sandbox.Sandbox { return i.sandbox }

// Exports returns this instance's export list.
func (i *Instance) Exports() []wasmmodule.ExportDescriptor { return i.exports }

// Funcs returns this instance's function table (imports and defined funcs).
func (i *Instance) Funcs() []*LinkedFunc { return i.funcs }

// Memories returns this instance's memory table (imports and defined
// memories).
func (i *Instance) Memories() []*memory.Memory { return i.memories }

// findExport returns the export descriptor whose name matches imp.Name, by
// design never consulting imp.Module.
func (i *Instance) findExport(imp wasmmodule.ImportDescriptor) *wasmmodule.ExportDescriptor {
	for idx := range i.exports {
		if i.exports[idx].Name == imp.Name {
			return &i.exports[idx]
		}
	}
	return nil
}

func (i *Instance) FindFunc(imp wasmmodule.ImportDescriptor) (*LinkedFunc, error) {
	e := i.findExport(imp)
	if e == nil {
		return nil, nil
	}
	if e.Kind != wasmmodule.KindFunc {
		return nil, newLinkError(WrongExportKind, imp,
			"imported %s.%s has wrong type: expected function, but found %s", imp.Module, imp.Name, e.Kind)
	}
	return i.funcs[e.Index], nil
}

func (i *Instance) FindMemory(imp wasmmodule.ImportDescriptor) (*memory.Memory, error) {
	e := i.findExport(imp)
	if e == nil {
		return nil, nil
	}
	if e.Kind != wasmmodule.KindMemory {
		return nil, newLinkError(WrongExportKind, imp,
			"imported %s.%s has wrong type: expected memory, but found %s", imp.Module, imp.Name, e.Kind)
	}
	return i.memories[e.Index], nil
}

// New fully instantiates and links module against imports. All modules
// reachable through imports must belong to the same sandbox as module; it is
// the caller's responsibility to destroy instances in the reverse of the
// order in which they were created.
func New(module *Module, imports *Environment) (*Instance, error) {
	inst := &Instance{
		sandbox: module.sandbox,
		exports: append([]wasmmodule.ExportDescriptor(nil), module.exports...),
	}
	inst.internal.Container = inst
	inst.internal.MemoryTable = make([]*memory.Internal, len(module.memories))
	inst.internal.FuncTable = make([]*LinkedFuncInternal, len(module.funcs))
	inst.funcs = make([]*LinkedFunc, len(module.funcs))
	inst.memories = make([]*memory.Memory, len(module.memories))
	inst.ownMemories = make([]bool, len(module.memories))

	// Phase 2 — resolve imports, in declaration order.
	for _, imp := range module.imports {
		switch imp.Kind {
		case wasmmodule.KindFunc:
			if err := resolveFuncImport(module, inst, imp, imports); err != nil {
				return nil, err
			}
		case wasmmodule.KindMemory:
			if err := resolveMemoryImport(module, inst, imp, imports); err != nil {
				return nil, err
			}
		default:
			wasmassert.Require(false, "unhandled import kind %s", imp.Kind)
		}
	}

	// Phase 3 — materialize defined items.
	for idx, fn := range module.funcs {
		if fn != nil {
			wasmassert.Require(inst.funcs[idx] == nil, "import overwrote defined function")

			linked := instantiateLinkedFunc(fn, inst)
			inst.internal.FuncTable[idx] = linked.Internal()
			inst.funcs[idx] = linked
			inst.ownedFuncs = append(inst.ownedFuncs, linked)
		} else {
			wasmassert.Require(inst.funcs[idx] != nil, "missing import for function")
		}
	}

	for idx, md := range module.memories {
		if !md.IsImport {
			wasmassert.Require(inst.memories[idx] == nil, "import overwrote defined memory")

			if md.Shared {
				wasmassert.Require(module.sharedMemories[idx] != nil, "shared memory not created before instantiation time")
				inst.internal.MemoryTable[idx] = module.sharedMemories[idx].Internal()
				inst.memories[idx] = module.sharedMemories[idx]
			} else {
				wasmassert.Require(module.sharedMemories[idx] == nil, "unshared memory created before instantiation time")
				mem := memory.NewUnshared(memory.NumPages(md.InitialPages), memory.NumPages(md.MaxPages))
				mem.SetSandboxID(module.sandbox.ID())
				inst.internal.MemoryTable[idx] = mem.Internal()
				inst.memories[idx] = mem
				inst.ownMemories[idx] = true
			}
		} else {
			wasmassert.Require(inst.memories[idx] != nil, "missing import for memory")
		}
	}

	// Phase 4 — final invariants.
	for idx := range inst.funcs {
		wasmassert.Require(inst.funcs[idx] != nil, "function slot %d left unfilled after instantiation", idx)
	}
	for idx := range inst.memories {
		wasmassert.Require(inst.memories[idx] != nil, "memory slot %d left unfilled after instantiation", idx)
	}

	module.sandbox.Track(inst)
	return inst, nil
}

func resolveFuncImport(module *Module, inst *Instance, imp wasmmodule.ImportDescriptor, imports *Environment) error {
	module.requireValidFuncSlot(imp.Index)
	wasmassert.Require(inst.funcs[imp.Index] == nil, "multiple imports to same function slot")

	fn, err := imports.FindFunc(imp)
	if err != nil {
		return err
	}
	if fn == nil {
		return newLinkError(NotFound, imp, "imported function %s.%s not found", imp.Module, imp.Name)
	}
	if id := fn.Unlinked().SandboxID(); id != (uuid.UUID{}) && id != module.sandbox.ID() {
		return newLinkError(CrossSandboxReference, imp,
			"imported function %s.%s was created in a different sandbox", imp.Module, imp.Name)
	}
	if fn.Unlinked().Signature() != module.importFuncSigs[imp.Index] {
		return newLinkError(SignatureMismatch, imp, "imported function %s.%s has wrong signature", imp.Module, imp.Name)
	}

	inst.internal.FuncTable[imp.Index] = fn.Internal()
	inst.funcs[imp.Index] = fn
	return nil
}

func resolveMemoryImport(module *Module, inst *Instance, imp wasmmodule.ImportDescriptor, imports *Environment) error {
	module.requireValidMemorySlot(imp.Index)
	wasmassert.Require(inst.memories[imp.Index] == nil, "multiple imports to same memory slot")

	want := module.memories[imp.Index]

	mem, err := imports.FindMemory(imp)
	if err != nil {
		return err
	}
	if mem == nil {
		return newLinkError(NotFound, imp, "imported memory %s.%s not found", imp.Module, imp.Name)
	}

	if mem.SandboxID() != (uuid.UUID{}) && mem.SandboxID() != module.sandbox.ID() {
		return newLinkError(CrossSandboxReference, imp,
			"imported memory %s.%s was created in a different sandbox", imp.Module, imp.Name)
	}

	if mem.IsShared() != want.Shared {
		if mem.IsShared() {
			return newLinkError(MemorySharingMismatch, imp,
				"imported memory %s.%s was shared, but was imported as unshared", imp.Module, imp.Name)
		}
		return newLinkError(MemorySharingMismatch, imp,
			"imported memory %s.%s was unshared, but was imported as shared", imp.Module, imp.Name)
	}

	if uint64(mem.InitialSizePages()) < want.InitialPages {
		return newLinkError(MemoryTooSmall, imp,
			"imported memory %s.%s is smaller than the import's minimum size (%d pages < %d pages)",
			imp.Module, imp.Name, mem.InitialSizePages(), want.InitialPages)
	}

	if uint64(mem.MaxCapacityPages()) > want.MaxPages {
		if mem.MaxCapacityPages() == memory.UnlimitedPages {
			return newLinkError(MemoryMaxTooLarge, imp,
				"imported memory %s.%s has a larger max size than the import's maximum size (unlimited pages > %d pages)",
				imp.Module, imp.Name, want.MaxPages)
		}
		return newLinkError(MemoryMaxTooLarge, imp,
			"imported memory %s.%s has a larger max size than the import's maximum size (%d pages > %d pages)",
			imp.Module, imp.Name, mem.MaxCapacityPages(), want.MaxPages)
	}

	inst.internal.MemoryTable[imp.Index] = mem.Internal()
	inst.memories[imp.Index] = mem
	return nil
}

// Close releases this instance's exclusively owned (unshared, defined)
// memories. It is idempotent and satisfies io.Closer so the instance can be
// tracked by its owning sandbox.
func (i *Instance) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true

	for idx, owned := range i.ownMemories {
		if owned {
			i.memories[idx].Release()
		}
	}
	return nil
}
