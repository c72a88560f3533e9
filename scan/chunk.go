package scan

import (
	"bytes"
	"fmt"
	"io"
)

const (
	DEFAULT_WINDOW = 64
	// Upper bound for a single backward read when the window adapts.
	MAX_WINDOW = 1024 * 1024
)

// Chunk is a line-aligned piece of the input starting at byte Start.
type Chunk struct {
	Start int64
	Data  []byte
}

// Resolver aligns nominal ranges to line boundaries. Both ends of a range
// are resolved with the same boundary function, so two neighbouring ranges
// always agree on where one stops and the next begins.
//
// Lines, including their newline, are assumed to fit in Window bytes. When
// they don't, Resolve fails with ErrNoLineBoundary unless Adaptive is set,
// in which case the resolver keeps reading backward until it finds a
// newline.
type Resolver struct {
	Size     int64
	Window   int
	Adaptive bool
}

func (r Resolver) Resolve(ra io.ReaderAt, rng Range) (Chunk, error) {
	end := min(rng.End, r.Size)
	lo := max(rng.Start-int64(r.Window), 0)
	if end <= rng.Start {
		return Chunk{Start: rng.Start}, nil
	}

	buf := make([]byte, end-lo)
	if err := readFull(ra, buf, lo); err != nil {
		return Chunk{}, err
	}

	head, err := r.boundary(ra, buf, lo, rng.Start)
	if err != nil {
		return Chunk{}, fmt.Errorf("unable to resolve chunk head: %w", err)
	}
	tail, err := r.boundary(ra, buf, lo, end)
	if err != nil {
		return Chunk{}, fmt.Errorf("unable to resolve chunk tail: %w", err)
	}

	if tail <= head {
		return Chunk{Start: head}, nil
	}
	if head < lo {
		data := make([]byte, tail-head)
		if err := readFull(ra, data, head); err != nil {
			return Chunk{}, err
		}
		return Chunk{Start: head, Data: data}, nil
	}
	return Chunk{Start: head, Data: buf[head-lo : tail-lo]}, nil
}

// boundary returns the offset of the line in progress at x, which is one
// past the last newline in the window before x. buf holds the input from
// bufStart onwards and must cover that window.
func (r Resolver) boundary(ra io.ReaderAt, buf []byte, bufStart, x int64) (int64, error) {
	if x <= 0 {
		return 0, nil
	}
	if x >= r.Size {
		return r.Size, nil
	}

	lo := max(x-int64(r.Window), 0)
	if i := bytes.LastIndexByte(buf[lo-bufStart:x-bufStart], '\n'); i >= 0 {
		return lo + int64(i) + 1, nil
	}
	if lo == 0 {
		return 0, nil
	}
	if !r.Adaptive {
		return 0, fmt.Errorf("%w: offset %d, window %d", ErrNoLineBoundary, x, r.Window)
	}
	return r.scanBack(ra, lo)
}

// scanBack looks for the last newline before x with a doubling window.
func (r Resolver) scanBack(ra io.ReaderAt, x int64) (int64, error) {
	window := min(int64(r.Window)*2, MAX_WINDOW)
	for x > 0 {
		lo := max(x-window, 0)
		buf := make([]byte, x-lo)
		if err := readFull(ra, buf, lo); err != nil {
			return 0, err
		}
		if i := bytes.LastIndexByte(buf, '\n'); i >= 0 {
			return lo + int64(i) + 1, nil
		}
		x = lo
		window = min(window*2, MAX_WINDOW)
	}
	return 0, nil
}

func readFull(ra io.ReaderAt, buf []byte, off int64) error {
	n, err := ra.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("unable to read %d bytes at %d: %w", len(buf), off, err)
}
