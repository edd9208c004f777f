package atomics

import (
	"math/bits"
	"unsafe"

	"github.com/srediag/libatomic/internal/stats"
)

// Uint128 is a 16-byte value, low limb first. No current target offers a
// 16-byte hardware atomic here, so the 16-byte entry points always take the
// fallback path; IsLockFree(16) stays false and the hook rejects the width.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Add returns u+v with wraparound at 2^128.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Lo: lo, Hi: hi}
}

// Sub returns u-v with wraparound at 2^128.
func (u Uint128) Sub(v Uint128) Uint128 {
	lo, borrow := bits.Sub64(u.Lo, v.Lo, 0)
	hi, _ := bits.Sub64(u.Hi, v.Hi, borrow)
	return Uint128{Lo: lo, Hi: hi}
}

func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Lo: u.Lo & v.Lo, Hi: u.Hi & v.Hi}
}

func (u Uint128) Or(v Uint128) Uint128 {
	return Uint128{Lo: u.Lo | v.Lo, Hi: u.Hi | v.Hi}
}

func (u Uint128) Xor(v Uint128) Uint128 {
	return Uint128{Lo: u.Lo ^ v.Lo, Hi: u.Hi ^ v.Hi}
}

const width16 = unsafe.Sizeof(Uint128{})

func load16(ptr *Uint128) Uint128 {
	stats.RecordFallback(stats.OpLoad, width16)
	l := acquire(unsafe.Pointer(ptr))
	v := *ptr
	l.Unlock()
	return v
}

func store16(ptr *Uint128, val Uint128) {
	stats.RecordFallback(stats.OpStore, width16)
	l := acquire(unsafe.Pointer(ptr))
	*ptr = val
	l.Unlock()
}

func cas16(ptr *Uint128, expected *Uint128, desired Uint128) bool {
	stats.RecordFallback(stats.OpCompareExchange, width16)
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

func rmw16(ptr *Uint128, op Op, val Uint128) Uint128 {
	stats.RecordFallback(statsOp(op), width16)
	l := acquire(unsafe.Pointer(ptr))
	prev := *ptr
	*ptr = apply16(op, prev, val)
	l.Unlock()
	return prev
}

func apply16(op Op, prev, val Uint128) Uint128 {
	switch op {
	case OpExchange:
		return val
	case OpAdd:
		return prev.Add(val)
	case OpSub:
		return prev.Sub(val)
	case OpAnd:
		return prev.And(val)
	case OpOr:
		return prev.Or(val)
	case OpXor:
		return prev.Xor(val)
	}
	panic("atomics: unknown rmw op")
}
