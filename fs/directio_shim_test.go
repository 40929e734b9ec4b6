//go:build unix

package fs

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
)

// stdDirectIO is a DirectIO for tests that opens files through the page cache,
// so reader logic can run on filesystems without O_DIRECT support.
type stdDirectIO struct{}

func (dio stdDirectIO) Open(ctx context.Context, filename string, flag int, permission os.FileMode) (*os.File, error) {
	return os.OpenFile(filename, flag, permission)
}

func (dio stdDirectIO) Read(ctx context.Context, file *os.File, block []byte) (int, error) {
	return file.Read(block)
}

func (dio stdDirectIO) Close(file *os.File) error { return file.Close() }

// useStdDirectIO installs stdDirectIO for the duration of the test.
func useStdDirectIO(t *testing.T) {
	t.Helper()
	DirectIOSim = stdDirectIO{}
	t.Cleanup(func() { DirectIOSim = nil })
}

// skipWithoutDirectIO skips the test when the filesystem backing the test's
// temp dir rejects O_DIRECT.
func skipWithoutDirectIO(t *testing.T, err error) {
	t.Helper()
	if errors.Is(err, syscall.EINVAL) {
		t.Skipf("filesystem does not support direct I/O: %v", err)
	}
}
