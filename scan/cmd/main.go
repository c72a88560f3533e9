package main

import (
	"aggscan/scan"
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/andreyvit/diff"
	"github.com/pkg/profile"
	"golang.org/x/exp/slog"
)

var (
	filePath    string
	numWorkers  int
	chunkSize   int64
	delimiter   string
	window      int
	adaptive    bool
	useMmap     bool
	mergeMode   string
	shards      int
	allocator   string
	profileMode string
	verbose     bool
	comparePath string
)

func init() {
	flag.StringVar(&filePath, "filePath", "measurements.txt", "input file")
	flag.IntVar(&numWorkers, "numWorkers", runtime.NumCPU(), "number of workers")
	flag.Int64Var(&chunkSize, "chunkSize", 0, "bytes per chunk (0 splits the file evenly across workers)")
	flag.StringVar(&delimiter, "delimiter", ";", "single byte separating key and value")
	flag.IntVar(&window, "window", scan.DEFAULT_WINDOW, "bytes searched for a line boundary")
	flag.BoolVar(&adaptive, "adaptive", false, "grow the boundary window instead of failing on long lines")
	flag.BoolVar(&useMmap, "mmap", false, "read the input through mmap")
	flag.StringVar(&mergeMode, "merge", "locked", "merge strategy (locked|collect)")
	flag.IntVar(&shards, "shards", 1, "number of locks guarding the shared table")
	flag.StringVar(&allocator, "allocator", "atomic", "range allocator (atomic|channel)")
	flag.StringVar(&profileMode, "profile", "", "profile mode (cpu|mem|trace)")
	flag.BoolVar(&verbose, "verbose", false, "debug logging and a worker summary on stderr")
	flag.StringVar(&comparePath, "compare", "", "expected output to diff the report against")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred profile writers are flushed.
func run() error {
	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode: %s", profileMode)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts, err := engineOptions(logger)
	if err != nil {
		return err
	}

	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := scan.New(opts...).Run(src)
	if err != nil {
		return fmt.Errorf("unable to scan %s: %w", filePath, err)
	}

	var out bytes.Buffer
	if err := scan.WriteReport(&out, res.Stats); err != nil {
		return err
	}
	if _, err := os.Stdout.Write(out.Bytes()); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}

	if verbose {
		scan.PrintSummary(os.Stderr, res)
	}

	if comparePath != "" {
		return compare(out.String())
	}
	return nil
}

func engineOptions(logger *slog.Logger) ([]scan.Option, error) {
	if len(delimiter) != 1 {
		return nil, fmt.Errorf("delimiter must be a single byte, got %q", delimiter)
	}

	opts := []scan.Option{
		scan.WithWorkers(numWorkers),
		scan.WithChunkSize(chunkSize),
		scan.WithDelimiter(delimiter[0]),
		scan.WithWindow(window),
		scan.WithAdaptiveWindow(adaptive),
		scan.WithShards(shards),
		scan.WithLogger(logger),
	}

	switch mergeMode {
	case "locked":
		opts = append(opts, scan.WithMergeMode(scan.MergeLocked))
	case "collect":
		opts = append(opts, scan.WithMergeMode(scan.MergeCollect))
	default:
		return nil, fmt.Errorf("unknown merge mode: %s", mergeMode)
	}

	switch allocator {
	case "atomic":
		opts = append(opts, scan.WithAllocator(scan.AtomicAllocation))
	case "channel":
		opts = append(opts, scan.WithAllocator(scan.ChannelAllocation))
	default:
		return nil, fmt.Errorf("unknown allocator: %s", allocator)
	}

	return opts, nil
}

func openSource() (scan.Source, error) {
	if useMmap {
		src, err := scan.OpenMmap(filePath)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	src, err := scan.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	return src, nil
}

func compare(report string) error {
	expected, err := os.ReadFile(comparePath)
	if err != nil {
		return fmt.Errorf("unable to read expected output: %w", err)
	}

	want := diff.TrimLinesInString(string(expected))
	got := diff.TrimLinesInString(report)
	if want == got {
		return nil
	}
	fmt.Fprintln(os.Stderr, diff.LineDiff(want, got))
	return fmt.Errorf("report differs from %s", comparePath)
}
