package memory

import (
	"encoding/binary"
	"math"
)

// Typed load/store for the fixed-layout scalar numeric types WASM code can
// write to linear memory in a single instruction. Values are always encoded
// little-endian via encoding/binary, whatever the host's byte order.

func (m *Memory) LoadByte(addr uint32) (byte, bool) {
	if !m.IsValidAddress(addr, 1) {
		return 0, false
	}
	return m.buf[addr], true
}

func (m *Memory) StoreByte(addr uint32, v byte) bool {
	if !m.IsValidAddress(addr, 1) {
		return false
	}
	m.buf[addr] = v
	return true
}

func (m *Memory) LoadUint32(addr uint32) (uint32, bool) {
	if !m.IsValidAddress(addr, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.buf[addr:]), true
}

func (m *Memory) StoreUint32(addr uint32, v uint32) bool {
	if !m.IsValidAddress(addr, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(m.buf[addr:], v)
	return true
}

func (m *Memory) LoadUint64(addr uint32) (uint64, bool) {
	if !m.IsValidAddress(addr, 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(m.buf[addr:]), true
}

func (m *Memory) StoreUint64(addr uint32, v uint64) bool {
	if !m.IsValidAddress(addr, 8) {
		return false
	}
	binary.LittleEndian.PutUint64(m.buf[addr:], v)
	return true
}

func (m *Memory) LoadFloat32(addr uint32) (float32, bool) {
	v, ok := m.LoadUint32(addr)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(v), true
}

func (m *Memory) StoreFloat32(addr uint32, v float32) bool {
	return m.StoreUint32(addr, math.Float32bits(v))
}

func (m *Memory) LoadFloat64(addr uint32) (float64, bool) {
	v, ok := m.LoadUint64(addr)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(v), true
}

func (m *Memory) StoreFloat64(addr uint32, v float64) bool {
	return m.StoreUint64(addr, math.Float64bits(v))
}
