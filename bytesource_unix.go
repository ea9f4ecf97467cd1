//go:build unix

package vcfchunk

import (
	"os"

	"golang.org/x/sys/unix"
)

// newUnixByteSource builds a ByteSource that refills directly via
// unix.Read on f's file descriptor, bypassing the extra copy the generic
// io.Reader path goes through for *os.File. Grounded on
// nnnkkk7-go-simdcsv/reader.go's build-tag-gated fast path over a portable
// default (there: goexperiment.simd && amd64; here: unix).
func newUnixByteSource(f *os.File, capacity int) *ByteSource {
	if capacity <= 0 {
		capacity = defaultInputBufferSize
	}
	return &ByteSource{r: &unixFileReader{fd: int(f.Fd())}, buf: make([]byte, capacity)}
}

// unixFileReader adapts unix.Read to io.Reader so ByteSource's refill path
// stays the same regardless of which constructor built it.
type unixFileReader struct {
	fd int
}

func (u *unixFileReader) Read(p []byte) (int, error) {
	n, err := unix.Read(u.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// NewFileByteSource returns the fastest available ByteSource for reading
// from f directly, selecting the unix fast path on unix platforms.
func NewFileByteSource(f *os.File, capacity int) *ByteSource {
	return newUnixByteSource(f, capacity)
}
