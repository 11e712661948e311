// allocator.go defines how a Slot obtains and gives back its pixel buffer.

package frameslot

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/atomic"
)

// Allocator provides the single pixel buffer owned by a Slot.
//
// Allocate must return a buffer of exactly size bytes. Release is called
// exactly once for every buffer the Slot stops owning.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Release(buf []byte)
}

// HeapAllocator allocates buffers on the Go heap and keeps counters of what
// it handed out.
type HeapAllocator struct {
	// MaxBytes caps the size of a single buffer; zero means no limit.
	MaxBytes int

	allocations atomic.Uint64
	releases    atomic.Uint64
	liveBytes   atomic.Int64
}

var _ Allocator = (*HeapAllocator)(nil)

func NewHeapAllocator(maxBytes int) *HeapAllocator {
	return &HeapAllocator{
		MaxBytes: maxBytes,
	}
}

func (a *HeapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid buffer size %d", size)
	}
	if a.MaxBytes > 0 && size > a.MaxBytes {
		return nil, fmt.Errorf(
			"requested %s exceeds the limit of %s",
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(a.MaxBytes)),
		)
	}
	buf := make([]byte, size)
	a.allocations.Add(1)
	a.liveBytes.Add(int64(size))
	return buf, nil
}

func (a *HeapAllocator) Release(buf []byte) {
	a.releases.Add(1)
	a.liveBytes.Sub(int64(len(buf)))
}

type AllocatorStats struct {
	Allocations uint64
	Releases    uint64
	LiveBytes   int64
}

func (a *HeapAllocator) GetStats() AllocatorStats {
	return AllocatorStats{
		Allocations: a.allocations.Load(),
		Releases:    a.releases.Load(),
		LiveBytes:   a.liveBytes.Load(),
	}
}
