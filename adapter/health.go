// Package adapter bridges the library's lock table and counters into
// external health and telemetry systems.
package adapter

import (
	"fmt"
	"time"

	"github.com/heptiolabs/healthcheck"

	"github.com/srediag/libatomic/internal/logging"
	"github.com/srediag/libatomic/pkg/locktable"
)

// probeInterval is how long the probe waits between attempts on a held slot.
const probeInterval = 50 * time.Microsecond

// LockTableCheck returns a liveness probe over the lock table. It walks
// sample evenly spaced slots; a slot that stays held for the whole timeout
// fails the check, which usually means a fallback critical section is stuck
// or a caller unlocked out of protocol. Healthy slots are released
// immediately after the probe acquires them.
func LockTableCheck(sample int, timeout time.Duration) healthcheck.Check {
	if sample <= 0 || sample > locktable.Size {
		sample = locktable.Size
	}
	stride := uintptr(locktable.Size / sample)
	if stride == 0 {
		stride = 1
	}
	check := func() error {
		deadline := time.Now().Add(timeout)
		for i := uintptr(0); i < locktable.Size; i += stride {
			l := locktable.At(i)
			for !l.TryLock() {
				if time.Now().After(deadline) {
					logging.Default.Errorf("lock table slot %d still held after %s", i, timeout)
					return fmt.Errorf("lock table slot %d still held after %s", i, timeout)
				}
				time.Sleep(probeInterval)
			}
			l.Unlock()
		}
		return nil
	}
	// The outer timeout covers pathological cases where many slots are each
	// held just under the deadline.
	return healthcheck.Timeout(check, 2*timeout)
}
