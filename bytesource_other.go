//go:build !unix

package vcfchunk

import "os"

// NewFileByteSource returns the portable ByteSource for reading from f; no
// unix.Read fast path is available on this platform.
func NewFileByteSource(f *os.File, capacity int) *ByteSource {
	return NewByteSource(f, capacity)
}
