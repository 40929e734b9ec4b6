package dioverify

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionFile string

// Version is the current version of the dioverify tool.
var Version = strings.TrimSpace(versionFile)
