package atomics

import (
	"sync/atomic"
	"unsafe"
)

// Native paths. Only widths 4 and 8 ever reach these: EnableNativeWidth
// rejects everything else. Go's runtime atomics are sequentially consistent,
// which is at least as strong as any ordering a caller can request.

func nativeLoad[T uinteger](ptr *T) T {
	switch unsafe.Sizeof(*ptr) {
	case 4:
		return T(atomic.LoadUint32((*uint32)(unsafe.Pointer(ptr))))
	case 8:
		return T(atomic.LoadUint64((*uint64)(unsafe.Pointer(ptr))))
	}
	panic("atomics: native load on unsupported width")
}

func nativeStore[T uinteger](ptr *T, val T) {
	switch unsafe.Sizeof(*ptr) {
	case 4:
		atomic.StoreUint32((*uint32)(unsafe.Pointer(ptr)), uint32(val))
	case 8:
		atomic.StoreUint64((*uint64)(unsafe.Pointer(ptr)), uint64(val))
	default:
		panic("atomics: native store on unsupported width")
	}
}

func nativeCompareExchange[T uinteger](ptr *T, expected *T, desired T) bool {
	switch unsafe.Sizeof(*ptr) {
	case 4:
		p := (*uint32)(unsafe.Pointer(ptr))
		old := uint32(*expected)
		for {
			cur := atomic.LoadUint32(p)
			if cur != old {
				*expected = T(cur)
				return false
			}
			if atomic.CompareAndSwapUint32(p, old, uint32(desired)) {
				return true
			}
		}
	case 8:
		p := (*uint64)(unsafe.Pointer(ptr))
		old := uint64(*expected)
		for {
			cur := atomic.LoadUint64(p)
			if cur != old {
				*expected = T(cur)
				return false
			}
			if atomic.CompareAndSwapUint64(p, old, uint64(desired)) {
				return true
			}
		}
	}
	panic("atomics: native compare-exchange on unsupported width")
}

func nativeRMW[T uinteger](ptr *T, op Op, val T) T {
	switch unsafe.Sizeof(*ptr) {
	case 4:
		p := (*uint32)(unsafe.Pointer(ptr))
		v := uint32(val)
		switch op {
		case OpExchange:
			return T(atomic.SwapUint32(p, v))
		case OpAdd:
			return T(atomic.AddUint32(p, v) - v)
		case OpSub:
			return T(atomic.AddUint32(p, -v) + v)
		case OpAnd:
			return T(atomic.AndUint32(p, v))
		case OpOr:
			return T(atomic.OrUint32(p, v))
		case OpXor:
			for {
				old := atomic.LoadUint32(p)
				if atomic.CompareAndSwapUint32(p, old, old^v) {
					return T(old)
				}
			}
		}
	case 8:
		p := (*uint64)(unsafe.Pointer(ptr))
		v := uint64(val)
		switch op {
		case OpExchange:
			return T(atomic.SwapUint64(p, v))
		case OpAdd:
			return T(atomic.AddUint64(p, v) - v)
		case OpSub:
			return T(atomic.AddUint64(p, -v) + v)
		case OpAnd:
			return T(atomic.AndUint64(p, v))
		case OpOr:
			return T(atomic.OrUint64(p, v))
		case OpXor:
			for {
				old := atomic.LoadUint64(p)
				if atomic.CompareAndSwapUint64(p, old, old^v) {
					return T(old)
				}
			}
		}
	}
	panic("atomics: native rmw on unsupported width")
}
