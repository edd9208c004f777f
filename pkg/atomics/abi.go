package atomics

import "github.com/srediag/libatomic/pkg/memorder"

// Width-specialized ABI entry points, one family per width class. Width is
// selected by which entry point is invoked, never by a runtime parameter.
// Order arguments are plain codes in [0,5]; out-of-range codes panic in
// memorder.FromCode. CompareExchange* returns the success bit as a bool.

// 1-byte family.

func Load1(ptr *uint8, order int32) uint8 {
	return loadGeneric(ptr, memorder.FromCode(order))
}

func Store1(ptr *uint8, val uint8, order int32) {
	storeGeneric(ptr, val, memorder.FromCode(order))
}

func CompareExchange1(ptr, expected *uint8, desired uint8, successOrder, failureOrder int32) bool {
	return casGeneric(ptr, expected, desired, memorder.FromCode(successOrder), memorder.FromCode(failureOrder))
}

func Exchange1(ptr *uint8, val uint8, order int32) uint8 {
	return rmwGeneric(ptr, OpExchange, val, memorder.FromCode(order))
}

func Add1(ptr *uint8, val uint8, order int32) uint8 {
	return rmwGeneric(ptr, OpAdd, val, memorder.FromCode(order))
}

func Sub1(ptr *uint8, val uint8, order int32) uint8 {
	return rmwGeneric(ptr, OpSub, val, memorder.FromCode(order))
}

func And1(ptr *uint8, val uint8, order int32) uint8 {
	return rmwGeneric(ptr, OpAnd, val, memorder.FromCode(order))
}

func Or1(ptr *uint8, val uint8, order int32) uint8 {
	return rmwGeneric(ptr, OpOr, val, memorder.FromCode(order))
}

func Xor1(ptr *uint8, val uint8, order int32) uint8 {
	return rmwGeneric(ptr, OpXor, val, memorder.FromCode(order))
}

// 2-byte family.

func Load2(ptr *uint16, order int32) uint16 {
	return loadGeneric(ptr, memorder.FromCode(order))
}

func Store2(ptr *uint16, val uint16, order int32) {
	storeGeneric(ptr, val, memorder.FromCode(order))
}

func CompareExchange2(ptr, expected *uint16, desired uint16, successOrder, failureOrder int32) bool {
	return casGeneric(ptr, expected, desired, memorder.FromCode(successOrder), memorder.FromCode(failureOrder))
}

func Exchange2(ptr *uint16, val uint16, order int32) uint16 {
	return rmwGeneric(ptr, OpExchange, val, memorder.FromCode(order))
}

func Add2(ptr *uint16, val uint16, order int32) uint16 {
	return rmwGeneric(ptr, OpAdd, val, memorder.FromCode(order))
}

func Sub2(ptr *uint16, val uint16, order int32) uint16 {
	return rmwGeneric(ptr, OpSub, val, memorder.FromCode(order))
}

func And2(ptr *uint16, val uint16, order int32) uint16 {
	return rmwGeneric(ptr, OpAnd, val, memorder.FromCode(order))
}

func Or2(ptr *uint16, val uint16, order int32) uint16 {
	return rmwGeneric(ptr, OpOr, val, memorder.FromCode(order))
}

func Xor2(ptr *uint16, val uint16, order int32) uint16 {
	return rmwGeneric(ptr, OpXor, val, memorder.FromCode(order))
}

// 4-byte family.

func Load4(ptr *uint32, order int32) uint32 {
	return loadGeneric(ptr, memorder.FromCode(order))
}

func Store4(ptr *uint32, val uint32, order int32) {
	storeGeneric(ptr, val, memorder.FromCode(order))
}

func CompareExchange4(ptr, expected *uint32, desired uint32, successOrder, failureOrder int32) bool {
	return casGeneric(ptr, expected, desired, memorder.FromCode(successOrder), memorder.FromCode(failureOrder))
}

func Exchange4(ptr *uint32, val uint32, order int32) uint32 {
	return rmwGeneric(ptr, OpExchange, val, memorder.FromCode(order))
}

func Add4(ptr *uint32, val uint32, order int32) uint32 {
	return rmwGeneric(ptr, OpAdd, val, memorder.FromCode(order))
}

func Sub4(ptr *uint32, val uint32, order int32) uint32 {
	return rmwGeneric(ptr, OpSub, val, memorder.FromCode(order))
}

func And4(ptr *uint32, val uint32, order int32) uint32 {
	return rmwGeneric(ptr, OpAnd, val, memorder.FromCode(order))
}

func Or4(ptr *uint32, val uint32, order int32) uint32 {
	return rmwGeneric(ptr, OpOr, val, memorder.FromCode(order))
}

func Xor4(ptr *uint32, val uint32, order int32) uint32 {
	return rmwGeneric(ptr, OpXor, val, memorder.FromCode(order))
}

// 8-byte family.

func Load8(ptr *uint64, order int32) uint64 {
	return loadGeneric(ptr, memorder.FromCode(order))
}

func Store8(ptr *uint64, val uint64, order int32) {
	storeGeneric(ptr, val, memorder.FromCode(order))
}

func CompareExchange8(ptr, expected *uint64, desired uint64, successOrder, failureOrder int32) bool {
	return casGeneric(ptr, expected, desired, memorder.FromCode(successOrder), memorder.FromCode(failureOrder))
}

func Exchange8(ptr *uint64, val uint64, order int32) uint64 {
	return rmwGeneric(ptr, OpExchange, val, memorder.FromCode(order))
}

func Add8(ptr *uint64, val uint64, order int32) uint64 {
	return rmwGeneric(ptr, OpAdd, val, memorder.FromCode(order))
}

func Sub8(ptr *uint64, val uint64, order int32) uint64 {
	return rmwGeneric(ptr, OpSub, val, memorder.FromCode(order))
}

func And8(ptr *uint64, val uint64, order int32) uint64 {
	return rmwGeneric(ptr, OpAnd, val, memorder.FromCode(order))
}

func Or8(ptr *uint64, val uint64, order int32) uint64 {
	return rmwGeneric(ptr, OpOr, val, memorder.FromCode(order))
}

func Xor8(ptr *uint64, val uint64, order int32) uint64 {
	return rmwGeneric(ptr, OpXor, val, memorder.FromCode(order))
}

// 16-byte family. Always the fallback path; see Uint128.

func Load16(ptr *Uint128, order int32) Uint128 {
	memorder.FromCode(order)
	return load16(ptr)
}

func Store16(ptr *Uint128, val Uint128, order int32) {
	memorder.FromCode(order)
	store16(ptr, val)
}

func CompareExchange16(ptr, expected *Uint128, desired Uint128, successOrder, failureOrder int32) bool {
	memorder.FromCode(successOrder)
	memorder.FromCode(failureOrder)
	return cas16(ptr, expected, desired)
}

func Exchange16(ptr *Uint128, val Uint128, order int32) Uint128 {
	memorder.FromCode(order)
	return rmw16(ptr, OpExchange, val)
}

func Add16(ptr *Uint128, val Uint128, order int32) Uint128 {
	memorder.FromCode(order)
	return rmw16(ptr, OpAdd, val)
}

func Sub16(ptr *Uint128, val Uint128, order int32) Uint128 {
	memorder.FromCode(order)
	return rmw16(ptr, OpSub, val)
}

func And16(ptr *Uint128, val Uint128, order int32) Uint128 {
	memorder.FromCode(order)
	return rmw16(ptr, OpAnd, val)
}

func Or16(ptr *Uint128, val Uint128, order int32) Uint128 {
	memorder.FromCode(order)
	return rmw16(ptr, OpOr, val)
}

func Xor16(ptr *Uint128, val Uint128, order int32) Uint128 {
	memorder.FromCode(order)
	return rmw16(ptr, OpXor, val)
}
