// Package locktable maps memory addresses onto a fixed, process-wide table of
// spinlocks. It approximates per-object locking for the atomic fallback path
// without per-object storage: every address deterministically selects one of
// Size slots, and all fallback operations on that address serialize on the
// slot's lock.
package locktable

import (
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/srediag/libatomic/pkg/spinlock"
)

// Size is the number of lock slots. It is fixed at build time and must be a
// power of two so that masking can stand in for modulo.
const Size = 1024

// Each slot gets its own cache line so that contention on one atomic object
// does not drag neighboring slots along with it.
type slot struct {
	lock spinlock.Lock
	_    cpu.CacheLinePad
}

var table [Size]slot

// slotOf is the address hash. The shifts are load-bearing: dropping the low
// 4 bits keeps every byte of a 16-byte-aligned object on the same lock (an
// RMW must serialize with loads of any overlapping byte), and folding bit 16
// and up back into the selector spreads objects whose fields sit at small,
// regular offsets across the table instead of piling them onto a few slots.
func slotOf(addr uintptr) uintptr {
	h := addr >> 4
	low := h & (Size - 1)
	return (low ^ (h >> 16)) & (Size - 1)
}

// SlotIndex returns the table slot that p selects.
func SlotIndex(p unsafe.Pointer) uintptr {
	return slotOf(uintptr(p))
}

// ForAddr returns the lock serializing fallback operations on p. Two
// addresses differing only in their low 4 bits always share a lock; unrelated
// addresses may collide, which costs false contention but never correctness.
func ForAddr(p unsafe.Pointer) *spinlock.Lock {
	return &table[slotOf(uintptr(p))].lock
}

// At returns the lock in slot i, modulo Size. It exists for probes that walk
// the table directly, such as the health check.
func At(i uintptr) *spinlock.Lock {
	return &table[i&(Size-1)].lock
}
