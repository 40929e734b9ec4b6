//go:build unix

// Command dioverify checks that direct (unbuffered) reads on the filesystem
// holding the working directory return exactly the bytes previously written.
// It exits 0 on success and with the errno of the failing stage otherwise.
package main

import (
	"context"
	log "log/slog"
	"os"

	"github.com/sharedcode/dioverify"
	"github.com/sharedcode/dioverify/runner"
)

func main() {
	dioverify.ConfigureLogging()

	cfg, err := dioverify.LoadConfig()
	if err != nil {
		log.Error("load config failed", "error", err)
		os.Exit(dioverify.ExitStatus(err))
	}

	err = runner.Run(context.Background(), cfg)
	os.Exit(dioverify.ExitStatus(err))
}
