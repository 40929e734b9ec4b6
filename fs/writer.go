//go:build unix

package fs

import (
	"context"
	"errors"
	"io"

	"github.com/sharedcode/dioverify"
)

// Writer is the write primitive used by WriteAll. It may write fewer bytes than
// requested and may fail with EINTR.
type Writer interface {
	Write(p []byte) (int, error)
}

var errInvalidWrite = errors.New("invalid write result")

// WriteAll writes the whole of buf to w. Interrupted calls are retried without
// consuming bytes, short writes advance the cursor and the loop continues until
// every byte is transferred. Any other error is returned unchanged.
func WriteAll(ctx context.Context, w Writer, buf []byte) error {
	total := 0
	for total < len(buf) {
		var n int
		if err := dioverify.RetryOnInterrupt(ctx, func(context.Context) error {
			var e error
			n, e = w.Write(buf[total:])
			return e
		}); err != nil {
			return err
		}
		switch {
		case n == 0:
			return io.ErrShortWrite
		case n < 0 || n > len(buf)-total:
			return errInvalidWrite
		}
		total += n
	}
	return nil
}
