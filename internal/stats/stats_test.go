package stats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"github.com/srediag/libatomic/internal/logging"
)

// counterValue reads a Counter without a scrape round-trip.
func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	_ = c.Write(m)
	return m.GetCounter().GetValue()
}

func TestRecordFallback(t *testing.T) {
	before := counterValue(FallbackCounter(OpAdd, 4))
	totalBefore := FallbackTotal()

	RecordFallback(OpAdd, 4)
	RecordFallback(OpAdd, 4)

	assert.Equal(t, before+2, counterValue(FallbackCounter(OpAdd, 4)))
	assert.Equal(t, totalBefore+2, FallbackTotal())
}

func TestRecordFallbackEveryKey(t *testing.T) {
	for op := 0; op < opCount; op++ {
		for _, w := range widths {
			before := counterValue(FallbackCounter(op, w))
			RecordFallback(op, w)
			assert.Equal(t, before+1, counterValue(FallbackCounter(op, w)),
				"op %s width %d", opNames[op], w)
		}
	}
}

func TestRecordFallbackUnknownWidth(t *testing.T) {
	assert.Panics(t, func() { RecordFallback(OpLoad, 3) })
}

func TestContentionDebugOff(t *testing.T) {
	logging.SetDebugMode(false)
	before := ContentionTotal()
	counterBefore := counterValue(ContentionCounter())

	RecordContention(901)

	assert.Equal(t, before+1, ContentionTotal())
	assert.Equal(t, counterBefore+1, counterValue(ContentionCounter()))
	_, ok := ContentionProfile()[901]
	assert.False(t, ok, "profile must not be recorded outside debug mode")
	assert.Empty(t, DrainTrace())
}

func TestContentionDebugOn(t *testing.T) {
	logging.SetDebugMode(true)
	defer logging.SetDebugMode(false)

	RecordContention(902)
	RecordContention(902)

	assert.Equal(t, int64(2), ContentionProfile()[uintptr(902)])

	events := DrainTrace()
	found := 0
	for _, e := range events {
		if e.Slot == 902 {
			found++
			assert.False(t, e.When.IsZero())
		}
	}
	assert.Equal(t, 2, found)
	assert.Empty(t, DrainTrace(), "drain must consume the buffered events")
}
