package reqid

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextRequestIDUnique(t *testing.T) {
	const n = 200
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NextRequestID()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, seen, n)

	id := NextRequestID()
	require.True(t, strings.HasPrefix(id, Prefix()+"-"))
}
