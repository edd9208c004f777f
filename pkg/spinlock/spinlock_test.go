package spinlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockUnlock(t *testing.T) {
	var l Lock
	l.Lock()
	l.Unlock()
	l.Lock()
	l.Unlock()
}

func TestTryLock(t *testing.T) {
	var l Lock
	assert.Equal(t, true, l.TryLock())
	assert.Equal(t, false, l.TryLock(), "second attempt on a held lock must fail")
	l.Unlock()
	assert.Equal(t, true, l.TryLock())
	l.Unlock()
}

func TestMutualExclusion(t *testing.T) {
	const (
		goroutines = 8
		iterations = 5000
	)
	var (
		l       Lock
		counter int
		wg      sync.WaitGroup
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, goroutines*iterations, counter)
}
