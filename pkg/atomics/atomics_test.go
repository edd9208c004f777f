package atomics

import (
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"

	"github.com/srediag/libatomic/pkg/memorder"
)

func TestIsLockFreeBaseline(t *testing.T) {
	DisableNativeWidth(4)
	DisableNativeWidth(8)
	for _, w := range []uintptr{1, 2, 4, 8, 16} {
		assert.False(t, IsLockFree(w), "width %d must default to the fallback path", w)
	}
}

func TestEnableNativeWidthRejects(t *testing.T) {
	for _, w := range []uintptr{0, 1, 2, 3, 16, 32} {
		assert.Panics(t, func() { EnableNativeWidth(w) }, "width %d", w)
	}
}

func TestOrderCodeValidatedAtEntry(t *testing.T) {
	v := uint32(1)
	expected := uint32(1)
	assert.Panics(t, func() { Load4(&v, 6) })
	assert.Panics(t, func() { Store4(&v, 2, -1) })
	assert.Panics(t, func() { Add4(&v, 1, 99) })
	assert.Panics(t, func() { CompareExchange4(&v, &expected, 2, 5, 6) })
}

// Concrete scenarios from the runtime contract.

func TestCompareExchangeSuccessScenario(t *testing.T) {
	v := uint32(128)
	expected := uint32(128)
	ok := CompareExchange4(&v, &expected, 42, 1, 1)
	assert.True(t, ok)
	assert.Equal(t, uint32(42), v)
	assert.Equal(t, uint32(128), expected, "expected must stay untouched on success")
}

func TestAddScenario(t *testing.T) {
	v := uint32(128)
	prev := Add4(&v, 42, 1)
	assert.Equal(t, uint32(128), prev)
	assert.Equal(t, uint32(170), v)
}

func TestCompareExchangeFailureScenario(t *testing.T) {
	v := uint32(128)
	expected := uint32(5)
	ok := CompareExchange4(&v, &expected, 42, 1, 1)
	assert.False(t, ok)
	assert.Equal(t, uint32(128), v, "target must stay untouched on failure")
	assert.Equal(t, uint32(128), expected, "expected must be refreshed with the observed value")
}

// checkRMWKinds runs every RMW kind against an independently computed shadow
// value: prev must equal the start value, the cell must equal the shadow.
func checkRMWKinds[T uinteger](t *testing.T, label string) {
	t.Helper()
	const (
		start = 0xB4
		val   = 0x5A
	)
	kinds := []Op{OpExchange, OpAdd, OpSub, OpAnd, OpOr, OpXor}
	for _, op := range kinds {
		cell := T(start)
		prev := rmwGeneric(&cell, op, T(val), memorder.Monotonic)

		s, v := T(start), T(val)
		var shadow T
		switch op {
		case OpExchange:
			shadow = v
		case OpAdd:
			shadow = s + v
		case OpSub:
			shadow = s - v
		case OpAnd:
			shadow = s & v
		case OpOr:
			shadow = s | v
		case OpXor:
			shadow = s ^ v
		}
		assert.Equal(t, s, prev, "%s op %d: previous value", label, op)
		assert.Equal(t, shadow, cell, "%s op %d: stored value", label, op)
	}
}

func checkLoadStoreCAS[T uinteger](t *testing.T, label string) {
	t.Helper()
	var cell T
	storeGeneric(&cell, 77, memorder.SeqCst)
	assert.Equal(t, T(77), loadGeneric(&cell, memorder.SeqCst), label)

	expected := T(77)
	assert.True(t, casGeneric(&cell, &expected, 99, memorder.SeqCst, memorder.SeqCst), label)
	assert.Equal(t, T(99), cell, label)
	assert.Equal(t, T(77), expected, label)

	expected = T(1)
	assert.False(t, casGeneric(&cell, &expected, 5, memorder.SeqCst, memorder.SeqCst), label)
	assert.Equal(t, T(99), cell, label)
	assert.Equal(t, T(99), expected, label)
}

func TestFallbackAllWidths(t *testing.T) {
	DisableNativeWidth(4)
	DisableNativeWidth(8)
	checkRMWKinds[uint8](t, "width1")
	checkRMWKinds[uint16](t, "width2")
	checkRMWKinds[uint32](t, "width4")
	checkRMWKinds[uint64](t, "width8")
	checkLoadStoreCAS[uint8](t, "width1")
	checkLoadStoreCAS[uint16](t, "width2")
	checkLoadStoreCAS[uint32](t, "width4")
	checkLoadStoreCAS[uint64](t, "width8")
}

// The native and fallback paths must satisfy the identical contract, so the
// same checks run with the hardware hook enabled.
func TestNativeMatchesFallback(t *testing.T) {
	EnableNativeWidth(4)
	EnableNativeWidth(8)
	defer DisableNativeWidth(4)
	defer DisableNativeWidth(8)

	assert.True(t, IsLockFree(4))
	assert.True(t, IsLockFree(8))
	assert.False(t, IsLockFree(16), "no 16-byte hardware path exists")

	checkRMWKinds[uint32](t, "width4-native")
	checkRMWKinds[uint64](t, "width8-native")
	checkLoadStoreCAS[uint32](t, "width4-native")
	checkLoadStoreCAS[uint64](t, "width8-native")
}

func TestWraparound(t *testing.T) {
	b := uint8(250)
	prev := Add1(&b, 10, 1)
	assert.Equal(t, uint8(250), prev)
	assert.Equal(t, uint8(4), b)

	b = 5
	prev = Sub1(&b, 10, 1)
	assert.Equal(t, uint8(5), prev)
	assert.Equal(t, uint8(251), b)
}

func TestConcurrentAddFallback(t *testing.T) {
	DisableNativeWidth(8)
	const (
		workers = 8
		iters   = 2000
	)
	pool, err := ants.NewPool(workers)
	assert.Nil(t, err)
	defer pool.Release()

	var target uint64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			for j := 0; j < iters; j++ {
				Add8(&target, 1, 5)
			}
		})
		assert.Nil(t, err)
	}
	wg.Wait()
	assert.Equal(t, uint64(workers*iters), Load8(&target, 5))
}

func TestConcurrentMixedRMW(t *testing.T) {
	// Two counters of different widths in adjacent memory, updated from the
	// same goroutines. Both must land on their exact totals whether or not
	// the addresses hash to a shared slot.
	type cellPair struct {
		wide   uint64
		narrow uint8
		_      [7]byte
	}
	var cells cellPair

	const (
		workers = 4
		iters   = 1000
	)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iters; j++ {
				Add8(&cells.wide, 1, 5)
				Add1(&cells.narrow, 1, 5)
			}
		}()
	}
	wg.Wait()
	total := workers * iters
	assert.Equal(t, uint64(total), cells.wide)
	assert.Equal(t, uint8(total%256), cells.narrow)
}
