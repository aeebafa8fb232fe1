package reqid

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	prefix string
	reqid  atomic.Uint64
)

func init() {
	hostname, err := os.Hostname()
	if hostname == "" || err != nil {
		hostname = "localhost"
	}
	// a short instance suffix keeps ids unique across restarts on the same host
	instance, _, _ := strings.Cut(uuid.NewString(), "-")
	prefix = hostname + "/" + instance
}

// NextRequestID generates the next request ID in the sequence.
func NextRequestID() string {
	return fmt.Sprintf("%s-%09d", prefix, reqid.Add(1))
}

// Prefix returns the per-process part shared by all generated ids.
func Prefix() string {
	return prefix
}
