// Package memorder maps the ABI-level memory-order codes used by generated
// callers onto typed ordering constraints.
//
// The numeric values mirror the external ABI contract (LLVM's atomic ordering
// enumeration) and must never be permuted.
package memorder

import "fmt"

// Order is a memory-ordering constraint carried by an atomic operation.
type Order int32

const (
	Relaxed Order = iota
	Monotonic
	Acquire
	Release
	AcqRel
	SeqCst
)

var orderNames = [...]string{
	"Relaxed",
	"Monotonic",
	"Acquire",
	"Release",
	"AcqRel",
	"SeqCst",
}

// FromCode translates a plain order code in [0,5] into an Order.
//
// Callers are generated by a trusted compiler; a code outside [0,5] is a bug
// in the code generator and panics rather than being clamped or reported.
func FromCode(code int32) Order {
	if code < int32(Relaxed) || code > int32(SeqCst) {
		panic(fmt.Sprintf("memorder: order code %d outside [0,5]", code))
	}
	return Order(code)
}

func (o Order) String() string {
	if o < Relaxed || o > SeqCst {
		return fmt.Sprintf("Order(%d)", int32(o))
	}
	return orderNames[o]
}
