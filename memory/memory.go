// Package memory implements WebAssembly linear memory: a page-granular
// byte buffer with elastic growth and bounds-checked typed access.
package memory

import (
	"encoding/binary"
	"fmt"
)

// PageSize is the fixed granularity of linear memory growth.
const PageSize = 65536

// MaxPages is the absolute cap on a memory's page count when the module
// does not declare an explicit maximum.
const MaxPages = 0x10000

// OutOfRangeError reports an out-of-bounds linear memory access.
type OutOfRangeError struct {
	Address uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("memory: access out of range at address %#x", e.Address)
}

// Limits mirrors a Wasm resizable-limits pair.
type Limits struct {
	Initial    uint32
	Maximum    uint32 // valid only if HasMaximum
	HasMaximum bool
}

// Memory is one instance's linear memory.
type Memory struct {
	data   []byte
	limits Limits
}

// New allocates a memory with the given limits, zero-initialised to
// limits.Initial pages.
func New(limits Limits) *Memory {
	return &Memory{
		data:   make([]byte, uint64(limits.Initial)*PageSize),
		limits: limits,
	}
}

// PageCount reports the current number of pages.
func (m *Memory) PageCount() uint32 {
	return uint32(len(m.data) / PageSize)
}

// Data returns the raw backing buffer. Callers must not retain it across a
// Grow, which may reallocate.
func (m *Memory) Data() []byte { return m.data }

// Restore replaces the buffer wholesale with data, rounding its declared
// page count up to match (a snapshot is always a whole number of pages,
// but a defensive round protects against a hand-edited image). Used to
// reinstate a memory snapshot taken by the snapshot package.
func (m *Memory) Restore(data []byte) {
	m.data = append([]byte(nil), data...)
	if rem := len(m.data) % PageSize; rem != 0 {
		m.data = append(m.data, make([]byte, PageSize-rem)...)
	}
}

// Grow attempts to grow memory by delta pages. It returns the previous page
// count on success, or -1 if growth would exceed the declared maximum (or
// the absolute cap when no maximum is declared), leaving memory unchanged.
func (m *Memory) Grow(delta uint32) int32 {
	pageCount := m.PageCount()
	target := uint64(pageCount) + uint64(delta)
	if m.limits.HasMaximum {
		if target > uint64(m.limits.Maximum) {
			return -1
		}
	} else if target > MaxPages {
		return -1
	}
	grown := make([]byte, target*PageSize)
	copy(grown, m.data)
	m.data = grown
	return int32(pageCount)
}

// growTo ensures the buffer is at least n bytes, rounding up to whole
// pages, without touching the declared limits. Used only during data-init.
func (m *Memory) growTo(n int) {
	if n <= len(m.data) {
		return
	}
	pages := (n + PageSize - 1) / PageSize
	grown := make([]byte, pages*PageSize)
	copy(grown, m.data)
	m.data = grown
}

// InitData bulk-copies a data segment's bytes at the given byte offset,
// growing the buffer (to a whole number of pages) if needed.
func (m *Memory) InitData(offset uint32, bytes []byte) {
	end := int(offset) + len(bytes)
	m.growTo(end)
	copy(m.data[offset:end], bytes)
}

func (m *Memory) bounds(address uint32, size int) ([]byte, error) {
	start := int(address)
	end := start + size
	if end > len(m.data) || start < 0 {
		return nil, &OutOfRangeError{Address: uint32(end)}
	}
	return m.data[start:end], nil
}

// LoadU8/LoadU16/LoadU32/LoadU64 load a little-endian unsigned value of the
// named width at address and bounds-check the access; sign or zero
// extension into a stack type is left to the caller.

func (m *Memory) LoadU8(address uint32) (uint8, error) {
	b, err := m.bounds(address, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *Memory) LoadU16(address uint32) (uint16, error) {
	b, err := m.bounds(address, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (m *Memory) LoadU32(address uint32) (uint32, error) {
	b, err := m.bounds(address, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (m *Memory) LoadU64(address uint32) (uint64, error) {
	b, err := m.bounds(address, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (m *Memory) StoreU8(address uint32, v uint8) error {
	b, err := m.bounds(address, 1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func (m *Memory) StoreU16(address uint32, v uint16) error {
	b, err := m.bounds(address, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, v)
	return nil
}

func (m *Memory) StoreU32(address uint32, v uint32) error {
	b, err := m.bounds(address, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, v)
	return nil
}

func (m *Memory) StoreU64(address uint32, v uint64) error {
	b, err := m.bounds(address, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, v)
	return nil
}
