package atomics

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/srediag/libatomic/internal/logging"
	"github.com/srediag/libatomic/internal/stats"
	"github.com/srediag/libatomic/pkg/locktable"
	"github.com/srediag/libatomic/pkg/memorder"
	"github.com/srediag/libatomic/pkg/spinlock"
)

// Op selects the read-modify-write kind. The set is closed; dispatching an
// unknown Op panics (a bug in the calling code generator, not a runtime
// condition).
type Op int

const (
	OpExchange Op = iota
	OpAdd
	OpSub
	OpAnd
	OpOr
	OpXor
)

type uinteger interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// nativeWidths is a bitmask with bit w set when width w runs on hardware
// atomics. Zero by default: every width takes the fallback path until the
// hook enables it.
var nativeWidths uint32

// IsLockFree reports whether width-byte objects are served by native hardware
// atomics instead of the lock table.
func IsLockFree(width uintptr) bool {
	return atomic.LoadUint32(&nativeWidths)&(uint32(1)<<width) != 0
}

// EnableNativeWidth turns on the hardware path for the given width. The Go
// runtime exposes hardware atomics at 4 and 8 bytes only; any other width
// panics.
func EnableNativeWidth(width uintptr) {
	if width != 4 && width != 8 {
		panic(fmt.Sprintf("atomics: no native atomic support for width %d", width))
	}
	for {
		cur := atomic.LoadUint32(&nativeWidths)
		if atomic.CompareAndSwapUint32(&nativeWidths, cur, cur|uint32(1)<<width) {
			break
		}
	}
	logging.Default.Infof("native atomics enabled for width %d", width)
}

// DisableNativeWidth reverts width to the fallback path.
func DisableNativeWidth(width uintptr) {
	for {
		cur := atomic.LoadUint32(&nativeWidths)
		if atomic.CompareAndSwapUint32(&nativeWidths, cur, cur&^(uint32(1)<<width)) {
			return
		}
	}
}

// acquire takes the table lock covering p, recording contention when the
// first attempt misses.
func acquire(p unsafe.Pointer) *spinlock.Lock {
	l := locktable.ForAddr(p)
	if !l.TryLock() {
		stats.RecordContention(locktable.SlotIndex(p))
		l.Lock()
	}
	return l
}

// The order arguments are validated at the ABI boundary and, on the fallback
// path, subsumed by the slot lock's own acquire/release; they are threaded
// through so the native path keeps the caller's intent visible.

func loadGeneric[T uinteger](ptr *T, ord memorder.Order) T {
	_ = ord
	width := unsafe.Sizeof(*ptr)
	if IsLockFree(width) {
		return nativeLoad(ptr)
	}
	stats.RecordFallback(stats.OpLoad, width)
	l := acquire(unsafe.Pointer(ptr))
	v := *ptr
	l.Unlock()
	return v
}

func storeGeneric[T uinteger](ptr *T, val T, ord memorder.Order) {
	_ = ord
	width := unsafe.Sizeof(*ptr)
	if IsLockFree(width) {
		nativeStore(ptr, val)
		return
	}
	stats.RecordFallback(stats.OpStore, width)
	l := acquire(unsafe.Pointer(ptr))
	*ptr = val
	l.Unlock()
}

// casGeneric is a strong compare-exchange: on success the target takes
// desired and *expected is untouched; on failure the target is untouched and
// *expected is refreshed with the observed value so callers can retry.
func casGeneric[T uinteger](ptr *T, expected *T, desired T, succ, fail memorder.Order) bool {
	_, _ = succ, fail
	width := unsafe.Sizeof(*ptr)
	if IsLockFree(width) {
		return nativeCompareExchange(ptr, expected, desired)
	}
	stats.RecordFallback(stats.OpCompareExchange, width)
	l := acquire(unsafe.Pointer(ptr))
	cur := *ptr
	if cur == *expected {
		*ptr = desired
		l.Unlock()
		return true
	}
	l.Unlock()
	*expected = cur
	return false
}

func rmwGeneric[T uinteger](ptr *T, op Op, val T, ord memorder.Order) T {
	_ = ord
	width := unsafe.Sizeof(*ptr)
	if IsLockFree(width) {
		return nativeRMW(ptr, op, val)
	}
	stats.RecordFallback(statsOp(op), width)
	l := acquire(unsafe.Pointer(ptr))
	prev := *ptr
	*ptr = applyOp(op, prev, val)
	l.Unlock()
	return prev
}

// applyOp computes the stored value for one RMW step. Add and Sub use the
// width's natural wraparound arithmetic.
func applyOp[T uinteger](op Op, prev, val T) T {
	switch op {
	case OpExchange:
		return val
	case OpAdd:
		return prev + val
	case OpSub:
		return prev - val
	case OpAnd:
		return prev & val
	case OpOr:
		return prev | val
	case OpXor:
		return prev ^ val
	}
	panic(fmt.Sprintf("atomics: unknown rmw op %d", op))
}

func statsOp(op Op) int {
	switch op {
	case OpExchange:
		return stats.OpExchange
	case OpAdd:
		return stats.OpAdd
	case OpSub:
		return stats.OpSub
	case OpAnd:
		return stats.OpAnd
	case OpOr:
		return stats.OpOr
	case OpXor:
		return stats.OpXor
	}
	panic(fmt.Sprintf("atomics: unknown rmw op %d", op))
}
