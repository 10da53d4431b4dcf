// Package memory implements the bounded, growable linear memory described by
// the host core: allocation, growth, sharing, and bounds-checked access,
// with an address-stable internal record for JIT consumption.
package memory

import (
	"math"
	"unsafe"

	"github.com/google/uuid"
	"github.com/wasmjit-omr/winter/internal/wasmassert"
)

const (
	// PageShift is log2(PageSize).
	PageShift = 16
	// PageSize is the fixed WASM page size, 64 KiB.
	PageSize = 1 << PageShift
)

// NumPages is a domain-typed page count, preventing accidental mixing of
// page counts and byte counts.
type NumPages uint64

// Bytes converts a page count to a byte count. Callers must only call this
// on values known not to be the sentinel.
func (n NumPages) Bytes() uint64 { return uint64(n) << PageShift }

const (
	// UnlimitedPages is the sentinel meaning "no declared maximum"; valid
	// only for unshared memories. It shares its numeric value with
	// GrowFailure: the two are disambiguated only by context, exactly as in
	// the system this core is modeled on.
	UnlimitedPages NumPages = math.MaxUint64
	// GrowFailure is returned by Grow when the requested growth could not
	// be satisfied.
	GrowFailure NumPages = math.MaxUint64
)

// Descriptor describes a linear memory that has not yet been created.
type Descriptor struct {
	Shared       bool
	InitialPages NumPages
	MaxPages     NumPages
}

// Internal is the address-stable, standard-layout record describing a
// Memory, intended for direct reference by JIT-generated code. Per the
// layout contract, the first three fields are flags, base pointer, and
// logical size in bytes, in that order; this ordering must not change
// without a coordinated change to the code generator.
type Internal struct {
	Flags uint32
	Base  unsafe.Pointer
	Size  uint64

	CurrentCapacityPages NumPages
	MaxCapacityPages     NumPages

	Container *Memory
}

const flagShared uint32 = 1 << 0

// Memory is a WASM linear memory.
//
// For unshared memories, most operations are undefined behaviour if called
// while a WASM agent that can see the memory is concurrently executing,
// except from within a host call on that agent. Only shared memories are
// safe to access while WASM code runs, and this core does not implement
// growing them.
type Memory struct {
	internal     Internal
	initialPages NumPages
	buf          []byte
	sandboxID    uuid.UUID // zero value means "not bound to a sandbox" (e.g. a test double)
}

// SandboxID returns the sandbox this memory was created in, or the zero
// UUID if it was never bound to one (as with a test double).
func (m *Memory) SandboxID() uuid.UUID { return m.sandboxID }

// SetSandboxID records the sandbox this memory belongs to. It is called by
// internal/linker when a memory is created as part of instantiating a
// module, so that cross-sandbox imports can be rejected at link time.
func (m *Memory) SetSandboxID(id uuid.UUID) { m.sandboxID = id }

// NewShared creates a new shared linear memory, preallocated at max so its
// backing store never moves. max must not be UnlimitedPages.
func NewShared(initial, max NumPages) *Memory {
	wasmassert.Require(max != UnlimitedPages, "shared memories cannot have unlimited capacity")
	return newMemory(Descriptor{Shared: true, InitialPages: initial, MaxPages: max})
}

// NewUnshared creates a new unshared linear memory. If max is finite, the
// backing is allocated at max up front so growth never reallocates; if max
// is UnlimitedPages, the backing starts at initial and may reallocate on
// growth.
func NewUnshared(initial, max NumPages) *Memory {
	return newMemory(Descriptor{Shared: false, InitialPages: initial, MaxPages: max})
}

// New creates a linear memory from a Descriptor. Descriptors produced for
// import slots (AbstractMemory::for_import in the original runtime) must
// never reach this constructor; the caller resolves those against the
// import environment instead.
func New(d Descriptor) *Memory {
	return newMemory(d)
}

func newMemory(d Descriptor) *Memory {
	wasmassert.Require(!d.Shared || d.MaxPages != UnlimitedPages, "shared memories cannot have unlimited capacity")

	m := &Memory{initialPages: d.InitialPages}
	m.internal.Container = m
	m.internal.MaxCapacityPages = d.MaxPages

	if d.MaxPages != UnlimitedPages {
		m.allocExactly(d.MaxPages)
	} else {
		m.allocAtLeast(d.InitialPages)
	}

	if d.Shared {
		m.internal.Flags |= flagShared
	}

	m.internal.Size = d.InitialPages.Bytes()
	return m
}

// allocExactly resizes the backing buffer to exactly numPages pages. It
// never shrinks and never exceeds MaxCapacityPages.
func (m *Memory) allocExactly(numPages NumPages) {
	wasmassert.Require(!m.IsShared(), "shared WASM memory cannot be grown")
	wasmassert.Require(numPages >= m.internal.CurrentCapacityPages, "WASM memory cannot be shrunk")
	wasmassert.Require(numPages <= m.internal.MaxCapacityPages, "WASM memory cannot grow beyond its max capacity")

	if numPages == m.internal.CurrentCapacityPages || numPages == 0 {
		return
	}

	newSize := numPages.Bytes()
	newBuf := make([]byte, newSize)
	copy(newBuf, m.buf)
	m.buf = newBuf
	if len(newBuf) > 0 {
		m.internal.Base = unsafe.Pointer(&newBuf[0])
	} else {
		m.internal.Base = nil
	}
	m.internal.CurrentCapacityPages = numPages
}

func (m *Memory) allocAtLeast(numPages NumPages) {
	if numPages <= m.internal.CurrentCapacityPages {
		return
	}
	wasmassert.Require(numPages <= m.internal.MaxCapacityPages, "requested capacity exceeds max capacity")
	m.allocExactly(numPages)
}

// Internal returns a pointer to the address-stable internal record for this
// memory.
func (m *Memory) Internal() *Internal { return &m.internal }

// SizeBytes returns the current logical size of this memory, in bytes.
func (m *Memory) SizeBytes() uint64 { return m.internal.Size }

// SizePages returns the current logical size of this memory, in pages.
func (m *Memory) SizePages() NumPages { return NumPages(m.internal.Size >> PageShift) }

// InitialSizePages returns the size this memory was constructed with.
func (m *Memory) InitialSizePages() NumPages { return m.initialPages }

// CurrentCapacityPages returns the size of the current backing allocation,
// in pages; growth within this capacity never reallocates.
func (m *Memory) CurrentCapacityPages() NumPages { return m.internal.CurrentCapacityPages }

// MaxCapacityPages returns the declared maximum capacity of this memory.
func (m *Memory) MaxCapacityPages() NumPages { return m.internal.MaxCapacityPages }

// IsAtMaxCapacity reports whether this memory's backing allocation will
// never need to grow further.
func (m *Memory) IsAtMaxCapacity() bool {
	return m.CurrentCapacityPages() == m.MaxCapacityPages()
}

// IsShared reports whether this memory may be shared between instances.
func (m *Memory) IsShared() bool { return m.internal.Flags&flagShared != 0 }

// Grow increases this memory's logical size by deltaPages WASM pages,
// returning the previous size in pages, or GrowFailure.
//
// Growing a shared memory is an explicit non-goal of this core and is a
// fatal invariant violation, matching the deferred shared-growth algorithm
// in the system this core is modeled on.
func (m *Memory) Grow(deltaPages NumPages) NumPages {
	oldSizePages := m.SizePages()
	if deltaPages == 0 {
		return oldSizePages
	}

	wasmassert.Require(!m.IsShared(), "growing shared memory is not implemented")

	newSizePages := oldSizePages + deltaPages
	if newSizePages < oldSizePages || newSizePages > m.MaxCapacityPages() {
		return GrowFailure
	}

	if newSizePages > m.CurrentCapacityPages() {
		// Refuse capacities whose byte size would not fit in an int.
		if uint64(newSizePages) > uint64(math.MaxInt)>>PageShift {
			return GrowFailure
		}
		m.allocAtLeast(newSizePages)
	}

	m.internal.Size = newSizePages.Bytes()
	return oldSizePages
}

// IsValidAddress reports whether a load or store of length bytes starting
// at addr would be within bounds, without overflow.
func (m *Memory) IsValidAddress(addr uint32, length uint64) bool {
	a := uint64(addr)
	end := a + length
	return end >= a && end <= m.SizeBytes()
}

// Data returns the backing buffer. The returned slice is invalidated by any
// Grow call that reallocates.
func (m *Memory) Data() []byte { return m.buf }

// Release drops this memory's backing buffer. It must only be called on an
// unshared memory exclusively owned by the instance tearing it down; shared
// memories outlive any single instance.
func (m *Memory) Release() {
	wasmassert.Require(!m.IsShared(), "shared memory cannot be released by a single instance")
	m.buf = nil
	m.internal.Base = nil
	m.internal.Size = 0
	m.internal.CurrentCapacityPages = 0
}

// Load copies length bytes starting at addr into buf, returning false if
// the access would be out of bounds.
func (m *Memory) Load(buf []byte, addr uint32, length int) bool {
	if !m.IsValidAddress(addr, uint64(length)) {
		return false
	}
	copy(buf, m.buf[addr:uint64(addr)+uint64(length)])
	return true
}

// Store copies buf into this memory starting at addr, returning false if
// the access would be out of bounds.
func (m *Memory) Store(buf []byte, addr uint32) bool {
	length := uint64(len(buf))
	if !m.IsValidAddress(addr, length) {
		return false
	}
	copy(m.buf[addr:uint64(addr)+length], buf)
	return true
}
