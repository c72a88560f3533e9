package scan

import "golang.org/x/exp/slog"

type Option func(*Engine) *Engine

func WithWorkers(n int) Option {
	return func(e *Engine) *Engine {
		if n > 0 {
			e.workers = n
		}
		return e
	}
}

// WithChunkSize forces nominal ranges of n bytes. Workers keep claiming
// ranges until the input is exhausted.
func WithChunkSize(n int64) Option {
	return func(e *Engine) *Engine {
		e.chunkSize = n
		return e
	}
}

func WithDelimiter(d byte) Option {
	return func(e *Engine) *Engine {
		e.delim = d
		return e
	}
}

func WithWindow(n int) Option {
	return func(e *Engine) *Engine {
		if n > 0 {
			e.window = n
		}
		return e
	}
}

// WithAdaptiveWindow lets boundary resolution read past the window instead
// of failing on long lines.
func WithAdaptiveWindow(adaptive bool) Option {
	return func(e *Engine) *Engine {
		e.adaptive = adaptive
		return e
	}
}

func WithShards(n int) Option {
	return func(e *Engine) *Engine {
		if n > 0 {
			e.shards = n
		}
		return e
	}
}

func WithMergeMode(m MergeMode) Option {
	return func(e *Engine) *Engine {
		e.mergeMode = m
		return e
	}
}

func WithAllocator(k AllocatorKind) Option {
	return func(e *Engine) *Engine {
		e.allocator = k
		return e
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) *Engine {
		e.logger = logger
		return e
	}
}
