//go:build !linux

package scan

import "os"

func adviseSequential(f *os.File, size int64) error {
	return nil
}
