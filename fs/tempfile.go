//go:build unix

package fs

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"

	"github.com/sharedcode/dioverify"
	"github.com/sharedcode/dioverify/chunk"
)

// createRetries bounds how many fresh names are tried when a temp name already exists.
const createRetries = 10

// Initialize creates a temporary file of exactly one page holding consecutive
// chunk records and returns its path. On failure no file is left behind.
func Initialize(ctx context.Context, cfg dioverify.Config) (string, error) {
	return initialize(ctx, cfg, newFDWriter)
}

func initialize(ctx context.Context, cfg dioverify.Config, newWriter func(*os.File) Writer) (string, error) {
	if err := cfg.CheckLayout(); err != nil {
		log.Error("temp file setup: page size doesn't divide evenly into data blocks",
			"page_size", cfg.PageSize, "record_size", cfg.RecordSize)
		return "", err
	}
	if cfg.RecordSize != chunk.Size {
		return "", dioverify.Error{
			Code:     dioverify.ConfigError,
			Err:      fmt.Errorf("record size %d, chunk codec writes %d byte records", cfg.RecordSize, chunk.Size),
			UserData: cfg.RecordSize,
		}
	}

	f, err := createTemp(ctx, cfg)
	if err != nil {
		log.Error("temp file setup: create failed", "dir", cfg.Dir, "error", err)
		return "", dioverify.Error{
			Code:     dioverify.CreationError,
			Err:      err,
			UserData: cfg.Dir,
		}
	}
	name := f.Name()

	w := newWriter(f)
	rec := make([]byte, chunk.Size)
	n := cfg.ChunkCount()
	for i := 0; i < n; i++ {
		offset := uint64(i * cfg.RecordSize)
		chunk.EncodeTo(rec, offset)
		if err := WriteAll(ctx, w, rec); err != nil {
			log.Error("temp file setup: write failed", "file", name, "offset", offset, "error", err)
			_ = f.Close()
			if rerr := os.Remove(name); rerr != nil {
				log.Warn("temp file setup: remove of partial file failed", "file", name, "error", rerr)
			}
			return "", dioverify.Error{
				Code:     dioverify.WriteError,
				Err:      err,
				UserData: name,
			}
		}
	}
	if err := f.Close(); err != nil {
		log.Debug("temp file setup: close failed", "file", name, "error", err)
	}
	log.Debug("temp file populated", "file", name, "chunks", n)
	return name, nil
}

// createTemp opens a new file named cfg.Prefix plus a random suffix, write only
// and truncated. A name that already exists is retried with a new suffix.
func createTemp(ctx context.Context, cfg dioverify.Config) (*os.File, error) {
	var f *os.File
	err := dioverify.RetryN(ctx, createRetries, func(context.Context) error {
		name := filepath.Join(cfg.Dir, cfg.Prefix+dioverify.NewUUID())
		var e error
		f, e = os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL|os.O_TRUNC, 0o600)
		return e
	}, func(err error) bool {
		return errors.Is(err, os.ErrExist)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}
