//go:build unix

package fs

import (
	"fmt"
	"unsafe"

	"github.com/ncw/directio"
	"golang.org/x/sys/unix"
)

// newAlignedBuffer maps an anonymous region of size bytes. Mappings start on a
// page boundary, which satisfies the alignment of most devices. The buffer
// must be released with releaseAlignedBuffer.
func newAlignedBuffer(size, align int) ([]byte, error) {
	if size <= 0 || align <= 0 {
		return nil, fmt.Errorf("invalid aligned buffer size %d, alignment %d", size, align)
	}
	if directio.AlignSize > 0 && align%directio.AlignSize != 0 {
		return nil, fmt.Errorf("alignment %d is not a multiple of the direct I/O alignment %d", align, directio.AlignSize)
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	if !isAligned(b, align) {
		_ = unix.Munmap(b)
		return nil, fmt.Errorf("buffer at %p is not aligned to %d bytes", unsafe.SliceData(b), align)
	}
	return b, nil
}

func releaseAlignedBuffer(b []byte) error {
	return unix.Munmap(b)
}

func isAligned(b []byte, align int) bool {
	if len(b) == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%uintptr(align) == 0
}
