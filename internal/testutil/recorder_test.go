package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_CapturesFormattedFailures(t *testing.T) {
	r := &Recorder{}
	r.Helper()
	r.Errorf("boom %d", 42)

	assert.True(t, r.Failed())
	assert.Equal(t, []string{"boom 42"}, r.Failures())
}

func TestRecorder_EmptyByDefault(t *testing.T) {
	r := &Recorder{}
	assert.False(t, r.Failed())
	assert.Empty(t, r.Failures())
}

func TestDeterministicClock_Monotonic(t *testing.T) {
	c := NewDeterministicClock()
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}

func TestDeterministicClock_ConcurrentNextIsUnique(t *testing.T) {
	c := NewDeterministicClock()

	const n = 64
	seen := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seen[i] = c.Next()
		}(i)
	}
	wg.Wait()

	unique := make(map[int64]struct{}, n)
	for _, v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, n)
	assert.Equal(t, int64(n), c.Current())
}
