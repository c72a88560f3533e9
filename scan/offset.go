package scan

import "sync/atomic"

// Range is a nominal [Start, End) byte range of the input. It is not yet
// aligned to line boundaries.
type Range struct {
	Start int64
	End   int64
}

func (r Range) Len() int64 {
	return r.End - r.Start
}

// Layout describes how an input of Size bytes is cut into Chunks nominal
// ranges of ChunkSize bytes each. The last range absorbs the remainder
// left over by integer division.
type Layout struct {
	Size      int64
	ChunkSize int64
	Chunks    int64
}

// NewLayout splits size bytes into one range per worker, or into ranges of
// chunkSize bytes when chunkSize is positive.
func NewLayout(size int64, workers int, chunkSize int64) Layout {
	if size < 0 || workers < 1 {
		panic("scan: invalid layout")
	}
	if size == 0 {
		return Layout{}
	}

	if chunkSize > 0 {
		chunkSize = min(chunkSize, size)
		return Layout{
			Size:      size,
			ChunkSize: chunkSize,
			Chunks:    (size + chunkSize - 1) / chunkSize,
		}
	}

	step := max(size/int64(workers), 1)
	return Layout{
		Size:      size,
		ChunkSize: step,
		Chunks:    min(int64(workers), size/step),
	}
}

// Range returns the i-th nominal range.
func (l Layout) Range(i int64) (Range, bool) {
	if i < 0 || i >= l.Chunks {
		return Range{}, false
	}
	start := i * l.ChunkSize
	end := start + l.ChunkSize
	if i == l.Chunks-1 {
		end = l.Size
	}
	return Range{Start: start, End: end}, true
}

// Allocator hands out nominal ranges to workers. Every range is returned
// exactly once across all callers.
type Allocator interface {
	Next() (Range, bool)
}

// AtomicAllocator claims ranges with a single fetch-and-add on a shared
// cursor, so concurrent callers never see overlapping ranges.
type AtomicAllocator struct {
	layout Layout
	cursor atomic.Int64
}

func NewAtomicAllocator(l Layout) *AtomicAllocator {
	return &AtomicAllocator{layout: l}
}

func (a *AtomicAllocator) Next() (Range, bool) {
	if a.layout.Chunks == 0 {
		return Range{}, false
	}
	start := a.cursor.Add(a.layout.ChunkSize) - a.layout.ChunkSize
	if start < 0 || start >= a.layout.Size {
		return Range{}, false
	}
	return a.layout.Range(start / a.layout.ChunkSize)
}

// ChannelAllocator is preloaded with every range of a layout.
type ChannelAllocator struct {
	ranges chan Range
}

func NewChannelAllocator(l Layout) *ChannelAllocator {
	ranges := make(chan Range, l.Chunks)
	for i := range l.Chunks {
		r, _ := l.Range(i)
		ranges <- r
	}
	close(ranges)
	return &ChannelAllocator{ranges: ranges}
}

func (a *ChannelAllocator) Next() (Range, bool) {
	r, ok := <-a.ranges
	return r, ok
}
