package scan

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
	"golang.org/x/exp/slog"
)

// Source is read concurrently at disjoint offsets; implementations must
// support parallel ReadAt calls.
type Source interface {
	io.ReaderAt
	Size() int64
	Close() error
}

type FileSource struct {
	*os.File
	size int64
}

func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", path, err)
	}
	fs, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to stat file %s: %w", path, err)
	}
	if err := adviseSequential(f, fs.Size()); err != nil {
		slog.Debug("unable to advise sequential access", slog.String("file", path), slog.Any("err", err))
	}

	return &FileSource{File: f, size: fs.Size()}, nil
}

func (s *FileSource) Size() int64 {
	return s.size
}

type MmapSource struct {
	*mmap.ReaderAt
}

func OpenMmap(path string) (*MmapSource, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to mmap file %s: %w", path, err)
	}
	return &MmapSource{ReaderAt: r}, nil
}

func (s *MmapSource) Size() int64 {
	return int64(s.Len())
}

// BytesSource serves an in-memory input.
type BytesSource struct {
	*bytes.Reader
}

func NewBytesSource(b []byte) *BytesSource {
	return &BytesSource{Reader: bytes.NewReader(b)}
}

func (s *BytesSource) Close() error {
	return nil
}
