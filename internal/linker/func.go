package linker

import (
	"github.com/google/uuid"

	"github.com/wasmjit-omr/winter/internal/sandbox"
	"github.com/wasmjit-omr/winter/internal/wasmmodule"
)

// JitFunction is the entry-point signature a JIT compiler installs into an
// UnlinkedFuncInternal: takes a pointer to the linked-function record,
// returns a 32-bit status code.
type JitFunction func(*LinkedFuncInternal) uint32

// UnlinkedFuncInternal is the address-stable record for an UnlinkedFunc. Per
// the JIT layout contract, it begins with a nullable JIT entry pointer
// followed by the canonical signature pointer.
type UnlinkedFuncInternal struct {
	JitFn JitFunction
	Sig   *sandbox.FuncSig

	Container *UnlinkedFunc
}

// UnlinkedFunc is a per-sandbox representation of a defined function: shared
// by identity across every instance of the same Module.
type UnlinkedFunc struct {
	internal  UnlinkedFuncInternal
	debugName string
	instrs    *wasmmodule.InstructionStream
	sandboxID uuid.UUID // zero value means "not bound to a sandbox" (e.g. a test double)
}

// SandboxID returns the sandbox this function was defined in, or the zero
// UUID for a test double never bound to one.
func (f *UnlinkedFunc) SandboxID() uuid.UUID { return f.sandboxID }

// Internal returns the address-stable internal record for this function.
func (f *UnlinkedFunc) Internal() *UnlinkedFuncInternal { return &f.internal }

// Signature returns the canonical signature used to call this function.
func (f *UnlinkedFunc) Signature() *sandbox.FuncSig { return f.internal.Sig }

// DebugName returns the debug name provided at definition, or "".
func (f *UnlinkedFunc) DebugName() string { return f.debugName }

// Instrs returns the instruction stream for this function's body.
func (f *UnlinkedFunc) Instrs() *wasmmodule.InstructionStream { return f.instrs }

func instantiateUnlinkedFunc(desc wasmmodule.FuncDescriptor, sig *sandbox.FuncSig) *UnlinkedFunc {
	f := &UnlinkedFunc{debugName: desc.DebugName, instrs: desc.Instrs}
	f.internal.Sig = sig
	f.internal.Container = f
	return f
}

// NewMockUnlinkedFunc creates an UnlinkedFunc with no instructions and no
// debug name, useful as a test double standing in for a function imported
// from elsewhere.
func NewMockUnlinkedFunc(sig *sandbox.FuncSig) *UnlinkedFunc {
	f := &UnlinkedFunc{}
	f.internal.Sig = sig
	f.internal.Container = f
	return f
}

// LinkedFuncInternal is the address-stable record for a LinkedFunc. Per the
// JIT layout contract, its first field is a pointer to the unlinked-function
// record.
type LinkedFuncInternal struct {
	Unlinked *UnlinkedFuncInternal
	Module   *ModuleInstanceInternal

	Container *LinkedFunc
}

// LinkedFunc is an instance-bound binding of an UnlinkedFunc.
type LinkedFunc struct {
	internal LinkedFuncInternal
	unlinked *UnlinkedFunc
	instance *Instance
}

// Internal returns the address-stable internal record for this function.
func (f *LinkedFunc) Internal() *LinkedFuncInternal { return &f.internal }

// Unlinked returns the UnlinkedFunc this LinkedFunc was created from.
func (f *LinkedFunc) Unlinked() *UnlinkedFunc { return f.unlinked }

// Instance returns the module instance this function is part of.
func (f *LinkedFunc) Instance() *Instance { return f.instance }

func instantiateLinkedFunc(unlinked *UnlinkedFunc, instance *Instance) *LinkedFunc {
	f := &LinkedFunc{unlinked: unlinked, instance: instance}
	f.internal.Unlinked = unlinked.Internal()
	if instance != nil {
		f.internal.Module = instance.Internal()
	}
	f.internal.Container = f
	return f
}

// NewMockLinkedFunc creates a LinkedFunc standing in for a function that
// would otherwise be supplied by another, already-instantiated module; it
// has no owning instance. Used to populate an import environment in tests.
func NewMockLinkedFunc(sig *sandbox.FuncSig) *LinkedFunc {
	return instantiateLinkedFunc(NewMockUnlinkedFunc(sig), nil)
}
