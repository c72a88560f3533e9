package scan

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

type MergeMode int

const (
	// MergeLocked has every worker fold its own table into the shared one.
	MergeLocked MergeMode = iota
	// MergeCollect hands local tables to a single goroutine that does all
	// the merging.
	MergeCollect
)

func (m MergeMode) String() string {
	switch m {
	case MergeLocked:
		return "locked"
	case MergeCollect:
		return "collect"
	}
	return "unknown"
}

type AllocatorKind int

const (
	AtomicAllocation AllocatorKind = iota
	ChannelAllocation
)

func (k AllocatorKind) String() string {
	switch k {
	case AtomicAllocation:
		return "atomic"
	case ChannelAllocation:
		return "channel"
	}
	return "unknown"
}

type Engine struct {
	workers   int
	chunkSize int64
	delim     byte
	window    int
	adaptive  bool
	shards    int
	mergeMode MergeMode
	allocator AllocatorKind
	logger    *slog.Logger
}

type WorkerStats struct {
	ID     int
	Chunks int
	Bytes  int64
	Rows   int
	Keys   int
	Scan   time.Duration
	Merge  time.Duration
}

type Result struct {
	Stats   map[string]Record
	Workers []WorkerStats
	Elapsed time.Duration
}

func New(options ...Option) *Engine {
	e := &Engine{
		workers: runtime.NumCPU(),
		delim:   ';',
		window:  DEFAULT_WINDOW,
		shards:  1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		e = opt(e)
	}
	return e
}

// Run scans src with the engine's workers and returns the merged
// statistics. The first worker error aborts the run and no partial result
// is returned.
func (e *Engine) Run(src Source) (*Result, error) {
	t := time.Now()
	size := src.Size()
	layout := NewLayout(size, e.workers, e.chunkSize)
	alloc := e.newAllocator(layout)
	resolver := Resolver{Size: size, Window: e.window, Adaptive: e.adaptive}
	table := NewSharedTable(e.shards)

	e.logger.Debug(
		"starting scan",
		slog.Int64("size", size),
		slog.Int("workers", e.workers),
		slog.Int64("chunkSize", layout.ChunkSize),
		slog.Int64("chunks", layout.Chunks),
		slog.String("merge", e.mergeMode.String()),
		slog.String("allocator", e.allocator.String()),
	)

	merge := table.Merge
	var collector sync.WaitGroup
	var collected chan *LocalTable
	if e.mergeMode == MergeCollect {
		collected = make(chan *LocalTable, e.workers)
		merge = func(lt *LocalTable) { collected <- lt }

		collector.Add(1)
		go func() {
			defer collector.Done()
			for lt := range collected {
				table.Merge(lt)
			}
		}()
	}

	stats := make([]WorkerStats, e.workers)
	eg := new(errgroup.Group)
	for id := range e.workers {
		stats[id].ID = id
		eg.Go(func() error {
			return e.work(src, alloc, resolver, merge, &stats[id])
		})
	}
	err := eg.Wait()

	if collected != nil {
		close(collected)
		collector.Wait()
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Stats:   table.Snapshot(),
		Workers: stats,
		Elapsed: time.Since(t),
	}
	e.logger.Debug(
		"finished scan",
		slog.Int("keys", len(res.Stats)),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (e *Engine) work(
	ra io.ReaderAt,
	alloc Allocator,
	resolver Resolver,
	merge func(*LocalTable),
	ws *WorkerStats,
) error {
	for {
		rng, ok := alloc.Next()
		if !ok {
			return nil
		}

		t := time.Now()
		chunk, err := resolver.Resolve(ra, rng)
		if err != nil {
			return fmt.Errorf("unable to resolve range %d-%d: %w", rng.Start, rng.End, err)
		}
		local := NewLocalTable()
		rows, err := Aggregate(chunk.Data, e.delim, local)
		if err != nil {
			return fmt.Errorf("unable to aggregate chunk at %d: %w", chunk.Start, err)
		}
		scanned := time.Since(t)

		t = time.Now()
		merge(local)
		merged := time.Since(t)

		ws.Chunks++
		ws.Bytes += int64(len(chunk.Data))
		ws.Rows += rows
		ws.Keys += local.Len()
		ws.Scan += scanned
		ws.Merge += merged

		e.logger.Debug(
			"merged chunk",
			slog.Int("worker", ws.ID),
			slog.Int64("start", chunk.Start),
			slog.Int("bytes", len(chunk.Data)),
			slog.Int("rows", rows),
			slog.Int("keys", local.Len()),
			slog.Duration("scan", scanned),
			slog.Duration("merge", merged),
		)
	}
}

func (e *Engine) newAllocator(l Layout) Allocator {
	if e.allocator == ChannelAllocation {
		return NewChannelAllocator(l)
	}
	return NewAtomicAllocator(l)
}
