//go:build linux

package scan

import (
	"os"

	"golang.org/x/sys/unix"
)

// Each worker reads its own range front to back.
func adviseSequential(f *os.File, size int64) error {
	return unix.Fadvise(int(f.Fd()), 0, size, unix.FADV_SEQUENTIAL)
}
