package dioverify

import (
	"errors"
	"fmt"
	"syscall"
)

type ErrorCode int

const (
	Unknown ErrorCode = iota
	// ConfigError is returned when the record size does not divide the page size.
	ConfigError
	// CreationError is returned when the temporary file could not be created.
	CreationError
	// WriteError is returned when populating the temporary file failed.
	WriteError
	// ReadError covers open and read failures, including short reads.
	ReadError
	// VerifyError is returned when a decoded chunk does not match its expected content.
	VerifyError
)

var (
	// ErrLayout reports a record size that does not evenly divide the page size.
	ErrLayout = errors.New("page size doesn't divide evenly into data blocks")
	// ErrShortRead reports an unbuffered read that returned fewer bytes than requested.
	ErrShortRead = errors.New("short read")
)

func (c ErrorCode) String() string {
	switch c {
	case ConfigError:
		return "config"
	case CreationError:
		return "creation"
	case WriteError:
		return "write"
	case ReadError:
		return "read"
	case VerifyError:
		return "verify"
	}
	return "unknown"
}

// Error is the dioverify custom error. UserData typically carries the file path
// or the offset being checked.
type Error struct {
	Code     ErrorCode
	Err      error
	UserData any
}

func (e Error) Error() string {
	if e.UserData == nil {
		return fmt.Sprintf("%s error: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s error: %v, user data: %v", e.Code, e.Err, e.UserData)
}

func (e Error) Unwrap() error {
	return e.Err
}

// Errno returns the platform error number that best describes e. A wrapped
// syscall.Errno wins, otherwise config errors map to EINVAL and the rest to EIO.
func (e Error) Errno() syscall.Errno {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) && errno != 0 {
		return errno
	}
	if e.Code == ConfigError {
		return syscall.EINVAL
	}
	return syscall.EIO
}

// ExitStatus maps err to a process exit status: 0 on success, otherwise the
// errno of the failing stage.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var de Error
	if errors.As(err, &de) {
		return int(de.Errno())
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	return int(syscall.EIO)
}
