//go:build unix

package fs

import (
	"context"
	"os"

	"github.com/ncw/directio"
)

// DirectIO exposes the unbuffered file operations used by the reader. Reads go
// through a descriptor opened with O_DIRECT (F_NOCACHE on darwin) and must use
// aligned buffers and transfer lengths.
type DirectIO interface {
	// Open opens a file with the given name and flags bypassing the page cache.
	Open(ctx context.Context, filename string, flag int, permission os.FileMode) (*os.File, error)
	// Read performs exactly one read into block. Short reads are returned as is.
	Read(ctx context.Context, file *os.File, block []byte) (int, error)
	// Close closes the provided file handle.
	Close(file *os.File) error
}

type directIO struct{}

// NewDirectIO returns a DirectIO implementation backed by github.com/ncw/directio.
func NewDirectIO() DirectIO {
	return &directIO{}
}

// Allows unit test to inject a fake or a simulator.
var DirectIOSim DirectIO

func newDirectIO() DirectIO {
	if DirectIOSim != nil {
		return DirectIOSim
	}
	return NewDirectIO()
}

func (dio directIO) Open(ctx context.Context, filename string, flag int, permission os.FileMode) (*os.File, error) {
	return directio.OpenFile(filename, flag, permission)
}

// Read issues a single read. Short reads and errors are returned, never retried.
func (dio directIO) Read(ctx context.Context, file *os.File, block []byte) (int, error) {
	return file.Read(block)
}

func (dio directIO) Close(file *os.File) error {
	return file.Close()
}
