package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructUnshared(t *testing.T) {
	m := NewUnshared(1, 3)

	assert.Equal(t, NumPages(1), m.InitialSizePages())
	assert.Equal(t, NumPages(3), m.MaxCapacityPages())
	assert.False(t, m.IsShared())
	assert.NotNil(t, m.Data())
}

func TestConstructShared(t *testing.T) {
	m := NewShared(1, 3)

	assert.Equal(t, NumPages(1), m.InitialSizePages())
	assert.Equal(t, NumPages(3), m.MaxCapacityPages())
	assert.True(t, m.IsShared())
	assert.NotNil(t, m.Data())
}

func TestSize(t *testing.T) {
	m := NewUnshared(1, 3)

	assert.EqualValues(t, PageSize, m.SizeBytes())
	assert.Equal(t, NumPages(1), m.SizePages())
}

func TestLoadZeroed(t *testing.T) {
	m := NewUnshared(1, 1)

	buf := make([]byte, PageSize)
	require.True(t, m.Load(buf, 0, PageSize))

	for _, b := range buf {
		assert.Zero(t, b)
	}
}

func TestLoadStoreUint64Aligned(t *testing.T) {
	m := NewUnshared(1, 1)
	require.True(t, m.StoreUint64(0, 0xdeadbeefcafebabe))

	v, ok := m.LoadUint64(0)
	require.True(t, ok)
	assert.EqualValues(t, uint64(0xdeadbeefcafebabe), v)
}

func TestLoadStoreUint64Unaligned(t *testing.T) {
	m := NewUnshared(1, 1)
	require.True(t, m.StoreUint64(3, 0xdeadbeefcafebabe))

	v, ok := m.LoadUint64(3)
	require.True(t, ok)
	assert.EqualValues(t, uint64(0xdeadbeefcafebabe), v)
}

func TestLoadStoreUint32(t *testing.T) {
	m := NewUnshared(1, 1)
	require.True(t, m.StoreUint32(3, 0xdeadbeef))

	v, ok := m.LoadUint32(3)
	require.True(t, ok)
	assert.EqualValues(t, 0xdeadbeef, v)
}

func TestLoadStoreByte(t *testing.T) {
	m := NewUnshared(1, 1)
	require.True(t, m.StoreByte(0, 0xde))

	v, ok := m.LoadByte(0)
	require.True(t, ok)
	assert.EqualValues(t, 0xde, v)
}

func TestBoundsCheck(t *testing.T) {
	m := NewUnshared(1, 3)

	assert.True(t, m.IsValidAddress(0, 4))
	assert.True(t, m.IsValidAddress(0, PageSize))
	assert.False(t, m.IsValidAddress(0, PageSize+1))
	assert.True(t, m.IsValidAddress(PageSize-4, 4))
	assert.False(t, m.IsValidAddress(PageSize-3, 4))
	assert.True(t, m.IsValidAddress(PageSize, 0))
	assert.False(t, m.IsValidAddress(PageSize+1, 0))
	assert.False(t, m.IsValidAddress(1, ^uint64(0)))
}

func TestGrowUnshared(t *testing.T) {
	m := NewUnshared(1, 3)

	assert.Equal(t, NumPages(1), m.SizePages())
	assert.Equal(t, NumPages(1), m.Grow(0))
	assert.Equal(t, NumPages(1), m.Grow(1))
	assert.Equal(t, NumPages(2), m.SizePages())
	assert.Equal(t, GrowFailure, m.Grow(2))
	assert.Equal(t, NumPages(2), m.SizePages())
	assert.Equal(t, NumPages(2), m.Grow(1))
	assert.Equal(t, NumPages(3), m.SizePages())
	assert.Equal(t, GrowFailure, m.Grow(1))
	assert.Equal(t, NumPages(3), m.Grow(0))

	assert.Equal(t, NumPages(1), m.InitialSizePages())
}

func TestGrowUnsharedVeryLarge(t *testing.T) {
	m := NewUnshared(1, 3)

	assert.Equal(t, NumPages(1), m.SizePages())
	assert.Equal(t, GrowFailure, m.Grow(NumPages(^uint64(0))))
	assert.Equal(t, NumPages(1), m.SizePages())
	assert.Equal(t, GrowFailure, m.Grow(NumPages(1<<63)))
	assert.Equal(t, NumPages(1), m.SizePages())
}

func TestGrowSharedIsFatal(t *testing.T) {
	m := NewShared(1, 3)

	assert.Panics(t, func() {
		m.Grow(1)
	})
}
