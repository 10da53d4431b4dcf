package wasmmodule

import "github.com/wasmjit-omr/winter/internal/wasmassert"

// InstructionStream is an opaque, immutable byte sequence representing a
// function body. The byte encoding itself is never re-examined by this
// core; it is only addressed through an InstructionCursor for bounds-checked
// reads and relative jumps.
type InstructionStream struct {
	bytes []byte
}

// NewInstructionStream wraps a decoded function body.
func NewInstructionStream(b []byte) *InstructionStream {
	return &InstructionStream{bytes: b}
}

// Size returns the length of this instruction stream, in bytes.
func (s *InstructionStream) Size() int { return len(s.bytes) }

// InstructionCursor reads from an InstructionStream with bounds checks.
type InstructionCursor struct {
	stream *InstructionStream
	offset int
}

// NewInstructionCursor creates a cursor positioned at off bytes into stream.
func NewInstructionCursor(stream *InstructionStream, off int) *InstructionCursor {
	wasmassert.Require(off >= 0 && off <= stream.Size(), "instruction cursor out-of-bounds")
	return &InstructionCursor{stream: stream, offset: off}
}

// Offset returns the cursor's current byte offset.
func (c *InstructionCursor) Offset() int { return c.offset }

// JumpRelative moves the cursor by off bytes, forward or backward.
func (c *InstructionCursor) JumpRelative(off int) {
	newOffset := c.offset + off
	wasmassert.Require(newOffset >= 0 && newOffset <= c.stream.Size(), "instruction cursor out-of-bounds")
	c.offset = newOffset
}

// ReadU8 reads the byte at the cursor and advances it by one.
func (c *InstructionCursor) ReadU8() uint8 {
	wasmassert.Require(c.offset != c.stream.Size(), "instruction cursor out-of-bounds")
	b := c.stream.bytes[c.offset]
	c.offset++
	return b
}
