// Package cpu decodes the instruction set extensions usable by the process
// on the executing processor and memoizes the result for its lifetime.
//
// "Usable" is stricter than "present in CPUID": a vector extension only
// counts once the operating system has enabled the register state it needs
// (vide detect() in cpu_x86.go). On architectures without a prober, Features
// reports an empty set and the dispatch layer falls back accordingly.
package cpu

import (
	"strings"
	"sync/atomic"
)

// Flags is a bitmask of the extensions detect() vouches for.
type Flags uint32

const (
	SSE2 Flags = 1 << iota
	SSSE3
	SSE41
	AVX
	AVX2
	AVX512F
	AVX512VL
)

var flagNames = [...]struct {
	flag Flags
	name string
}{
	{SSE2, "sse2"},
	{SSSE3, "ssse3"},
	{SSE41, "sse4.1"},
	{AVX, "avx"},
	{AVX2, "avx2"},
	{AVX512F, "avx512f"},
	{AVX512VL, "avx512vl"},
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}

	names := make([]string, 0, len(flagNames))
	for _, c := range flagNames {
		if f&c.flag != 0 {
			names = append(names, c.name)
		}
	}

	return strings.Join(names, "+")
}

// cache holds either 0 - meaning "not probed yet" - or the detected Flags
// with cacheFilled set on top, so that a host with no detectable extensions
// at all still caches as a non-zero value.
var cache atomic.Int64

const cacheFilled int64 = 1 << 32

// Features returns the extensions available on this host, probing the
// hardware on first use only.
//
// Safe for concurrent first use without a lock: detect() is deterministic
// and side-effect free, so racing callers redundantly compute and store the
// exact same value. The atomic cell is only there so a goroutine observing
// a filled cache observes the complete mask, never a partial one. Once
// filled, the value never changes for the lifetime of the process.
func Features() Flags {
	if v := cache.Load(); v != 0 {
		return Flags(v &^ cacheFilled)
	}

	f := detect()
	cache.Store(int64(f) | cacheFilled)

	return f
}
