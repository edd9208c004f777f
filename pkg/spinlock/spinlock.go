// Package spinlock provides the two-state busy-waiting lock that serializes
// fallback atomic operations.
package spinlock

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	unlocked uint32 = 0
	locked   uint32 = 1
)

// backoffSpins is how many failed acquisition attempts the slow path makes
// before consulting the back-off schedule, when back-off is enabled.
const backoffSpins = 64

// Back-off is opt-in. The default acquisition loop is a pure unbounded
// busy-wait with no yield, sleep, or retry bound, matching the upstream
// design; setting LIBATOMIC_SPIN_BACKOFF=1 trades latency jitter for less
// cache-line traffic under heavy contention.
var backoffEnabled = os.Getenv("LIBATOMIC_SPIN_BACKOFF") == "1"

// Lock is a spinlock. The zero value is an unlocked lock.
//
// Lock is not reentrant. Unlocking a Lock that the caller does not hold is a
// programming error with undefined consequences; it is not checked.
type Lock struct {
	state uint32
}

// Lock acquires l, busy-waiting until the unlocked-to-locked transition
// succeeds. Acquisition under contention is potentially unbounded; there is
// no fairness or starvation guarantee.
func (l *Lock) Lock() {
	if atomic.CompareAndSwapUint32(&l.state, unlocked, locked) {
		return
	}
	l.lockSlow()
}

func (l *Lock) lockSlow() {
	if !backoffEnabled {
		for {
			if atomic.LoadUint32(&l.state) == unlocked &&
				atomic.CompareAndSwapUint32(&l.state, unlocked, locked) {
				return
			}
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Microsecond
	bo.MaxInterval = 100 * time.Microsecond
	bo.MaxElapsedTime = 0
	spins := 0
	for {
		if atomic.LoadUint32(&l.state) == unlocked &&
			atomic.CompareAndSwapUint32(&l.state, unlocked, locked) {
			return
		}
		spins++
		if spins >= backoffSpins {
			time.Sleep(bo.NextBackOff())
		}
	}
}

// TryLock makes a single acquisition attempt and reports whether it took the
// lock.
func (l *Lock) TryLock() bool {
	return atomic.CompareAndSwapUint32(&l.state, unlocked, locked)
}

// Unlock releases l with a plain atomic store. The caller must be the current
// holder.
func (l *Lock) Unlock() {
	atomic.StoreUint32(&l.state, unlocked)
}
