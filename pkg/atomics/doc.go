// Package atomics implements the runtime entry points for atomic memory
// operations on 1, 2, 4, 8 and 16 byte values.
//
// Each entry point takes the target pointer for its width plus plain numeric
// order codes (0..5, see pkg/memorder). Widths reported lock-free run on
// native hardware atomics; everything else serializes on a process-wide
// hashed spinlock table (pkg/locktable). The baseline conservatively treats
// no width as lock-free; EnableNativeWidth is the target-support hook.
//
// Native operations execute with sequentially consistent semantics, which
// satisfies any requested ordering. Fallback operations on an address are
// fully serialized by that address's lock, so they too are at least as strong
// as requested.
package atomics
