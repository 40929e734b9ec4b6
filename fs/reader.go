//go:build unix

package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"os"

	"github.com/sharedcode/dioverify"
	"github.com/sharedcode/dioverify/chunk"
)

// ChunkError identifies the record and the field that failed verification.
type ChunkError struct {
	Offset   uint64
	Mismatch chunk.Mismatch
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk at offset %d: %s", e.Offset, e.Mismatch)
}

// VerifyDirectRead reads one page of path through a cache-bypassing descriptor
// into a page-aligned buffer and checks the first chunk against offset 0. With
// cfg.VerifyAllChunks every chunk in the page is checked.
func VerifyDirectRead(ctx context.Context, cfg dioverify.Config, path string) error {
	return readDirect(ctx, cfg, path, func(page []byte) error {
		return verifyPage(cfg, page)
	})
}

// readDirect does the single aligned read and hands the full page to inspect.
// The buffer is released and the file closed on every path.
func readDirect(ctx context.Context, cfg dioverify.Config, path string, inspect func(page []byte) error) error {
	buf, err := newAlignedBuffer(cfg.PageSize, cfg.PageSize)
	if err != nil {
		log.Error("direct read: aligned allocation failed", "size", cfg.PageSize, "error", err)
		return dioverify.Error{
			Code:     dioverify.ReadError,
			Err:      err,
			UserData: path,
		}
	}
	defer func() {
		if err := releaseAlignedBuffer(buf); err != nil {
			log.Warn("direct read: buffer release failed", "error", err)
		}
	}()

	dio := newDirectIO()
	f, err := dio.Open(ctx, path, os.O_RDONLY, 0)
	if err != nil {
		log.Error("direct read: error opening fd", "file", path, "error", err)
		return dioverify.Error{
			Code:     dioverify.ReadError,
			Err:      err,
			UserData: path,
		}
	}
	defer func() {
		if err := dio.Close(f); err != nil {
			log.Debug("direct read: close failed", "file", path, "error", err)
		}
	}()

	n, err := dio.Read(ctx, f, buf)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Error("direct read: read failed", "file", path, "error", err)
		return dioverify.Error{
			Code:     dioverify.ReadError,
			Err:      err,
			UserData: path,
		}
	}
	if n != len(buf) {
		log.Error("direct read: short read", "file", path, "got", n, "want", len(buf))
		return dioverify.Error{
			Code:     dioverify.ReadError,
			Err:      fmt.Errorf("%w: got %d of %d bytes", dioverify.ErrShortRead, n, len(buf)),
			UserData: path,
		}
	}
	return inspect(buf)
}

func verifyPage(cfg dioverify.Config, page []byte) error {
	count := 1
	if cfg.VerifyAllChunks {
		count = cfg.ChunkCount()
	}
	for i := 0; i < count; i++ {
		start := i * cfg.RecordSize
		offset := uint64(start)
		if m := chunk.Verify(page[start:], offset); m != chunk.Valid {
			ce := &ChunkError{Offset: offset, Mismatch: m}
			log.Error(ce.Error())
			return dioverify.Error{
				Code:     dioverify.VerifyError,
				Err:      ce,
				UserData: offset,
			}
		}
	}
	return nil
}
