// Package wasmmodule defines the decoded-module container: the plain,
// passive handoff format between a WASM binary decoder (out of scope for
// this core) and the partial instantiator in internal/linker.
package wasmmodule

import "github.com/wasmjit-omr/winter/internal/sandbox"

// Kind classifies an import or export. Only Func and Memory are resolved by
// this core; Table and Global are recognized but rejected at link time.
type Kind uint8

const (
	KindFunc Kind = iota
	KindTable
	KindMemory
	KindGlobal
)

func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "function"
	case KindTable:
		return "table"
	case KindMemory:
		return "memory"
	case KindGlobal:
		return "global"
	default:
		return "???"
	}
}

// ImportDescriptor names an import slot: the module and export name to
// resolve against the import environment, the kind expected, and the index
// of the local table slot it fills.
type ImportDescriptor struct {
	Module string
	Name   string
	Kind   Kind
	Index  int
}

// ExportDescriptor names a local slot exported under Name.
type ExportDescriptor struct {
	Name  string
	Kind  Kind
	Index int
}

// MemoryDescriptor describes a memory slot: either imported (IsImport) or
// defined locally, with the shared/initial/max attributes that
// internal/memory.Descriptor also carries.
type MemoryDescriptor struct {
	IsImport     bool
	Shared       bool
	InitialPages uint64
	MaxPages     uint64 // use memory.UnlimitedPages's numeric value for "no max"
}

// FuncDescriptor describes a function slot: either imported (carries only a
// signature) or defined (carries a signature, debug name, and instruction
// stream). Imported descriptors have an empty debug name; the eventual name
// is adopted from whatever satisfies the import.
type FuncDescriptor struct {
	IsImport  bool
	DebugName string
	Instrs    *InstructionStream
	Sig       sandbox.FuncSig
}

// DecodedModule is a plain aggregate of four lists produced by a binary
// decoder. No invariant is enforced here beyond what the caller upholds;
// index fields in Imports/Exports must be within the corresponding local
// table. This component is deliberately passive.
type DecodedModule struct {
	Imports  []ImportDescriptor
	Exports  []ExportDescriptor
	Memories []MemoryDescriptor
	Funcs    []FuncDescriptor
}
