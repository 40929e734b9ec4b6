package dioverify

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

const (
	// DefaultPrefix is the fixed part of the temporary file name.
	DefaultPrefix = "direct_io_temp_file_"
	// DefaultRecordSize is the encoded size of one chunk record.
	DefaultRecordSize = 64
)

// Config holds the values the verifier needs. It is constructed once at start
// and passed down explicitly.
type Config struct {
	// PageSize is the system memory page size. It sizes the temporary file and
	// sizes and aligns the read buffer.
	PageSize int
	// RecordSize is the encoded size of one chunk.
	RecordSize int
	// Dir is the folder the temporary file is created in.
	Dir string
	// Prefix is prepended to the random suffix of the temporary file name.
	Prefix string
	// VerifyAllChunks makes the direct reader check every chunk in the page
	// rather than only the first one.
	VerifyAllChunks bool
}

// DefaultConfig queries the page size and returns a Config for the current
// working directory.
func DefaultConfig() Config {
	return Config{
		PageSize:   unix.Getpagesize(),
		RecordSize: DefaultRecordSize,
		Dir:        ".",
		Prefix:     DefaultPrefix,
	}
}

// LoadConfig returns DefaultConfig with DIOVERIFY_VERIFY_ALL_CHUNKS applied.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv("DIOVERIFY_VERIFY_ALL_CHUNKS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, Error{
				Code:     ConfigError,
				Err:      fmt.Errorf("invalid DIOVERIFY_VERIFY_ALL_CHUNKS value %q: %w", v, err),
				UserData: v,
			}
		}
		cfg.VerifyAllChunks = b
	}
	return cfg, nil
}

// CheckLayout fails with a ConfigError when RecordSize does not evenly divide PageSize.
func (c Config) CheckLayout() error {
	if c.RecordSize <= 0 || c.PageSize <= 0 || c.PageSize%c.RecordSize != 0 {
		return Error{
			Code:     ConfigError,
			Err:      ErrLayout,
			UserData: fmt.Sprintf("page_size=%d record_size=%d", c.PageSize, c.RecordSize),
		}
	}
	return nil
}

// ChunkCount returns the number of records that fill one page.
func (c Config) ChunkCount() int {
	if c.RecordSize <= 0 {
		return 0
	}
	return c.PageSize / c.RecordSize
}
