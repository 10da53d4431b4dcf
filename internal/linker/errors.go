package linker

import (
	"fmt"

	"github.com/wasmjit-omr/winter/internal/wasmmodule"
)

// LinkErrorKind classifies a recoverable link failure.
type LinkErrorKind int

const (
	// NotFound means no export matching the import exists in the
	// environment.
	NotFound LinkErrorKind = iota
	// WrongExportKind means an export with the requested name exists but
	// is not of the requested kind.
	WrongExportKind
	// SignatureMismatch means a supplied function's signature identity
	// differs from what the import requires.
	SignatureMismatch
	// MemorySharingMismatch means the supplied memory's shared flag
	// disagrees with the import's.
	MemorySharingMismatch
	// MemoryTooSmall means the supplied memory's initial size is below
	// the import's required minimum.
	MemoryTooSmall
	// MemoryMaxTooLarge means the supplied memory's max capacity exceeds
	// the import's declared maximum, including the unlimited-on-supplier
	// case.
	MemoryMaxTooLarge
	// CrossSandboxReference means the supplied artifact was created in a
	// different sandbox than the instantiating module.
	CrossSandboxReference
)

func (k LinkErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case WrongExportKind:
		return "WrongExportKind"
	case SignatureMismatch:
		return "SignatureMismatch"
	case MemorySharingMismatch:
		return "MemorySharingMismatch"
	case MemoryTooSmall:
		return "MemoryTooSmall"
	case MemoryMaxTooLarge:
		return "MemoryMaxTooLarge"
	case CrossSandboxReference:
		return "CrossSandboxReference"
	default:
		return "???"
	}
}

// LinkError is a recoverable failure to satisfy an import during
// instantiation. It carries the offending import descriptor so the embedder
// can report a precise diagnostic.
type LinkError struct {
	Kind   LinkErrorKind
	Import wasmmodule.ImportDescriptor
	msg    string
}

func newLinkError(kind LinkErrorKind, imp wasmmodule.ImportDescriptor, format string, args ...interface{}) *LinkError {
	return &LinkError{Kind: kind, Import: imp, msg: fmt.Sprintf(format, args...)}
}

func (e *LinkError) Error() string { return e.msg }
