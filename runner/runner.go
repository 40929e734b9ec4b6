//go:build unix

// Package runner sequences the verifier: create and populate the temp file,
// read it back through direct I/O, then remove it whatever the outcome.
package runner

import (
	"context"
	log "log/slog"
	"os"

	"github.com/sharedcode/dioverify"
	"github.com/sharedcode/dioverify/fs"
)

// State is a step of a run.
type State int

const (
	Start State = iota
	Initialized
	Verified
	Failed
	Cleaned
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Initialized:
		return "initialized"
	case Verified:
		return "verified"
	case Failed:
		return "failed"
	case Cleaned:
		return "cleaned"
	}
	return "unknown"
}

// Runner runs one verification pass.
type Runner struct {
	cfg   dioverify.Config
	state State
	path  string

	// afterInitialize, when set, runs between initialization and the direct read.
	afterInitialize func(ctx context.Context, path string) error
}

// New returns a Runner for cfg.
func New(cfg dioverify.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Run is a convenience for New(cfg).Run(ctx).
func Run(ctx context.Context, cfg dioverify.Config) error {
	return New(cfg).Run(ctx)
}

// State returns the state the last Run ended in.
func (r *Runner) State() State {
	return r.state
}

// Run initializes the temp file, verifies it through a direct read and removes
// it. The returned error is the one of the failing stage, nil on success.
func (r *Runner) Run(ctx context.Context) error {
	r.setState(Start)
	log.Info("direct I/O verification starting", "version", dioverify.Version,
		"page_size", r.cfg.PageSize, "record_size", r.cfg.RecordSize, "dir", r.cfg.Dir)

	path, err := fs.Initialize(ctx, r.cfg)
	if err != nil {
		log.Error("temp file setup failed", "error", err, "errno", dioverify.ExitStatus(err))
		r.setState(Failed)
		// The initializer removes its own partial file.
		r.setState(Cleaned)
		return err
	}
	r.path = path
	r.setState(Initialized)
	defer r.cleanup()

	if r.afterInitialize != nil {
		if err := r.afterInitialize(ctx, path); err != nil {
			r.setState(Failed)
			return err
		}
	}

	if err := fs.VerifyDirectRead(ctx, r.cfg, path); err != nil {
		log.Error("direct read verification failed", "error", err, "errno", dioverify.ExitStatus(err))
		r.setState(Failed)
		return err
	}
	r.setState(Verified)
	log.Info("direct I/O verification passed", "file", path, "chunks", r.cfg.ChunkCount())
	return nil
}

// cleanup removes the temp file. Failure is logged and otherwise ignored.
func (r *Runner) cleanup() {
	if err := os.Remove(r.path); err != nil {
		log.Debug("unlink temp file failed", "file", r.path, "error", err)
	}
	r.setState(Cleaned)
}

func (r *Runner) setState(s State) {
	log.Debug("state", "from", r.state, "to", s)
	r.state = s
}
