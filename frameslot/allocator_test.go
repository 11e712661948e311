package frameslot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeapAllocator(t *testing.T) {
	t.Run("unlimited", func(t *testing.T) {
		a := NewHeapAllocator(0)
		buf, err := a.Allocate(1 << 20)
		require.NoError(t, err)
		require.Len(t, buf, 1<<20)
		a.Release(buf)
		require.Equal(t, AllocatorStats{Allocations: 1, Releases: 1}, a.GetStats())
	})

	t.Run("limit", func(t *testing.T) {
		a := NewHeapAllocator(100)
		_, err := a.Allocate(100)
		require.NoError(t, err)
		_, err = a.Allocate(101)
		require.Error(t, err)
		require.Equal(t, AllocatorStats{Allocations: 1, LiveBytes: 100}, a.GetStats())
	})

	t.Run("non_positive", func(t *testing.T) {
		a := NewHeapAllocator(0)
		_, err := a.Allocate(0)
		require.Error(t, err)
		_, err = a.Allocate(-1)
		require.Error(t, err)
		require.Zero(t, a.GetStats().Allocations)
	})
}
