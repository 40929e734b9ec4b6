package dioverify

import (
	"time"

	"github.com/google/uuid"
)

// NewUUID returns a new random UUID string. It retries on error with a 1ms
// backoff up to 10 times and panics only if all attempts fail.
func NewUUID() string {
	var err error
	for i := 0; i < 10; i++ {
		var id uuid.UUID
		id, err = uuid.NewRandom()
		if err == nil {
			return id.String()
		}
		time.Sleep(time.Millisecond)
	}
	panic(err)
}
