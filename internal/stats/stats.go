/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package stats counts fallback activity. Counters are pre-resolved at init
// so the fallback hot path never touches a label map; the per-slot profile
// and the event trace are only recorded in debug mode.
package stats

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Workiva/go-datastructures/queue"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/srediag/libatomic/internal/logging"
)

// Fallback operation kinds, one per ABI entry-point family.
const (
	OpLoad = iota
	OpStore
	OpCompareExchange
	OpExchange
	OpAdd
	OpSub
	OpAnd
	OpOr
	OpXor
	opCount
)

var opNames = [opCount]string{
	"load",
	"store",
	"cmpxchg",
	"xchg",
	"add",
	"sub",
	"and",
	"or",
	"xor",
}

var widths = [...]uintptr{1, 2, 4, 8, 16}

// traceCap bounds the debug event trace; new events are dropped while the
// ring is full.
const traceCap = 4096

// TraceEvent records one contended fallback acquisition.
type TraceEvent struct {
	Slot uintptr
	When time.Time
}

var (
	fallbackOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "libatomic_fallback_ops_total",
		Help: "Total number of atomic operations served by the lock table fallback.",
	}, []string{"op", "width"})

	lockContention = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "libatomic_lock_contention_total",
		Help: "Total number of fallback operations that found their lock slot held.",
	})

	fallbackByKey [opCount][len(widths)]prometheus.Counter

	// Plain mirrors of the prometheus counters, for callers (the OTel
	// bridge) that need cheap point-in-time reads.
	fallbackTotal   int64
	contentionTotal int64

	profile = cmap.New[int64]()
	trace   = queue.NewRingBuffer(traceCap)
)

func init() {
	prometheus.MustRegister(fallbackOps, lockContention)
	for op := 0; op < opCount; op++ {
		for wi, w := range widths {
			fallbackByKey[op][wi] = fallbackOps.WithLabelValues(opNames[op], strconv.Itoa(int(w)))
		}
	}
}

func widthIndex(w uintptr) int {
	switch w {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	case 16:
		return 4
	}
	panic("stats: unsupported width " + strconv.Itoa(int(w)))
}

// RecordFallback counts one fallback operation of the given kind and width.
func RecordFallback(op int, width uintptr) {
	fallbackByKey[op][widthIndex(width)].Inc()
	atomic.AddInt64(&fallbackTotal, 1)
}

// RecordContention counts a fallback operation that had to wait for its slot.
// In debug mode it also feeds the per-slot profile and the event trace.
func RecordContention(slot uintptr) {
	lockContention.Inc()
	atomic.AddInt64(&contentionTotal, 1)
	if !logging.DebugMode() {
		return
	}
	profile.Upsert(strconv.FormatUint(uint64(slot), 10), 1,
		func(exist bool, cur, n int64) int64 {
			if exist {
				return cur + n
			}
			return n
		})
	if ok, err := trace.Offer(TraceEvent{Slot: slot, When: time.Now()}); err != nil || !ok {
		logging.Default.Tracef("contention trace dropped event for slot %d", slot)
	}
}

// FallbackTotal returns the number of fallback operations recorded so far.
func FallbackTotal() int64 {
	return atomic.LoadInt64(&fallbackTotal)
}

// ContentionTotal returns the number of contended acquisitions so far.
func ContentionTotal() int64 {
	return atomic.LoadInt64(&contentionTotal)
}

// FallbackCounter exposes the underlying counter for one op/width pair, for
// scrape-free readback in tests and tooling.
func FallbackCounter(op int, width uintptr) prometheus.Counter {
	return fallbackByKey[op][widthIndex(width)]
}

// ContentionCounter exposes the contention counter.
func ContentionCounter() prometheus.Counter {
	return lockContention
}

// ContentionProfile snapshots the per-slot contention counts collected in
// debug mode, keyed by slot index.
func ContentionProfile() map[uintptr]int64 {
	out := make(map[uintptr]int64, profile.Count())
	for k, v := range profile.Items() {
		if slot, err := strconv.ParseUint(k, 10, 64); err == nil {
			out[uintptr(slot)] = v
		}
	}
	return out
}

// DrainTrace removes and returns the buffered contention events.
func DrainTrace() []TraceEvent {
	var out []TraceEvent
	for trace.Len() > 0 {
		item, err := trace.Poll(time.Millisecond)
		if err != nil {
			break
		}
		out = append(out, item.(TraceEvent))
	}
	return out
}
