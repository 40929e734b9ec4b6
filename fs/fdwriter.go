//go:build unix

package fs

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdWriter writes straight to the descriptor so that EINTR and short writes
// reach WriteAll instead of being absorbed by the runtime.
type fdWriter struct {
	fd int
}

func newFDWriter(f *os.File) Writer {
	return fdWriter{fd: int(f.Fd())}
}

func (w fdWriter) Write(p []byte) (int, error) {
	n, err := unix.Write(w.fd, p)
	if err != nil {
		return 0, os.NewSyscallError("write", err)
	}
	return n, nil
}
