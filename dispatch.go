// Package blake3 selects, at run time, the fastest registered implementation
// of the hash's compute primitives based on the instruction set extensions
// actually usable on the executing processor.
//
// The package holds no kernel code itself. Capability-specific kernel
// packages register their implementations (vide kernels.go) and the four
// dispatch entry points walk a fixed priority order per operation, from most
// specialized to the portable fallback. Detection runs once per process and
// is safe under concurrent first use from any number of goroutines.
//
// Individual tiers can be compiled out with the blake3_noavx512,
// blake3_noavx2, blake3_nosse41 and blake3_nosse2 build tags; a disabled
// tier is skipped exactly as if the hardware lacked the capability.
package blake3

import (
	"github.com/GerHobbelt/BLAKE3/internal/cpu"
)

// features is read anew before every kernel selection so that eligibility is
// always derived from the cache, never from a value captured earlier.
// Swapped out for synthetic masks in tests.
var features = cpu.Features

// tiersDisabled accumulates the capability bits of tiers switched off at
// build time (vide the blake3_no* files).
var tiersDisabled cpu.Flags

const errNoPortable = "blake3: no portable kernel set registered"

// CompressInPlace folds one block into cv.
func CompressInPlace(cv *[8]uint32, block *[BlockLen]byte, blockLen uint8, counter uint64, flags uint8) {
	f := features() &^ tiersDisabled

	switch {
	case f&cpu.AVX512VL != 0 && avx512.Compress != nil:
		avx512.Compress(cv, block, blockLen, counter, flags)
	case f&cpu.SSE41 != 0 && sse41.Compress != nil:
		sse41.Compress(cv, block, blockLen, counter, flags)
	case f&cpu.SSE2 != 0 && sse2.Compress != nil:
		sse2.Compress(cv, block, blockLen, counter, flags)
	default:
		if portable.Compress == nil {
			panic(errNoPortable)
		}
		portable.Compress(cv, block, blockLen, counter, flags)
	}
}

// CompressXOF compresses one block and writes the 64-byte output to out,
// leaving cv untouched.
func CompressXOF(cv *[8]uint32, block *[BlockLen]byte, blockLen uint8, counter uint64, flags uint8, out *[BlockLen]byte) {
	f := features() &^ tiersDisabled

	switch {
	case f&cpu.AVX512VL != 0 && avx512.CompressXOF != nil:
		avx512.CompressXOF(cv, block, blockLen, counter, flags, out)
	case f&cpu.SSE41 != 0 && sse41.CompressXOF != nil:
		sse41.CompressXOF(cv, block, blockLen, counter, flags, out)
	case f&cpu.SSE2 != 0 && sse2.CompressXOF != nil:
		sse2.CompressXOF(cv, block, blockLen, counter, flags, out)
	default:
		if portable.CompressXOF == nil {
			panic(errNoPortable)
		}
		portable.CompressXOF(cv, block, blockLen, counter, flags, out)
	}
}

// XOFMany expands the chaining state into len(out)/BlockLen output blocks.
// len(out) must be a multiple of BlockLen. An empty out is a no-op: the
// vectorized kernels guarantee at least one block per call, so a zero-block
// request returns before any detection or kernel invocation and writes
// nothing.
func XOFMany(cv *[8]uint32, block *[BlockLen]byte, blockLen uint8, counter uint64, flags uint8, out []byte) {
	if len(out) == 0 {
		return
	}
	if len(out)%BlockLen != 0 {
		panic("blake3: XOFMany output length must be a multiple of BlockLen")
	}

	f := features() &^ tiersDisabled

	if f&cpu.AVX512VL != 0 && avx512.XOFMany != nil && !xofManyAVX512Restricted {
		avx512.XOFMany(cv, block, blockLen, counter, flags, out)
		return
	}

	for i, n := 0, len(out)/BlockLen; i < n; i++ {
		CompressXOF(cv, block, blockLen, counter+uint64(i), flags, (*[BlockLen]byte)(out[i*BlockLen:]))
	}
}

// HashMany hashes len(inputs) independent inputs in one call, writing the
// concatenated results to out.
func HashMany(inputs [][]byte, blocks int, key *[8]uint32, counter uint64, incrementCounter bool, flags, flagsStart, flagsEnd uint8, out []byte) {
	f := features() &^ tiersDisabled

	switch {
	case f&(cpu.AVX512F|cpu.AVX512VL) == cpu.AVX512F|cpu.AVX512VL && avx512.HashMany != nil:
		avx512.HashMany(inputs, blocks, key, counter, incrementCounter, flags, flagsStart, flagsEnd, out)
	case f&cpu.AVX2 != 0 && avx2.HashMany != nil:
		avx2.HashMany(inputs, blocks, key, counter, incrementCounter, flags, flagsStart, flagsEnd, out)
	case f&cpu.SSE41 != 0 && sse41.HashMany != nil:
		sse41.HashMany(inputs, blocks, key, counter, incrementCounter, flags, flagsStart, flagsEnd, out)
	case f&cpu.SSE2 != 0 && sse2.HashMany != nil:
		sse2.HashMany(inputs, blocks, key, counter, incrementCounter, flags, flagsStart, flagsEnd, out)
	case archHashMany != nil:
		archHashMany(inputs, blocks, key, counter, incrementCounter, flags, flagsStart, flagsEnd, out)
	default:
		if portable.HashMany == nil {
			panic(errNoPortable)
		}
		portable.HashMany(inputs, blocks, key, counter, incrementCounter, flags, flagsStart, flagsEnd, out)
	}
}

// SIMDDegree reports how many independent inputs the batch kernel HashMany
// would currently select processes per call. Advisory: callers use it to
// size batches efficiently, but calling HashMany with more or fewer inputs
// stays valid.
func SIMDDegree() int {
	f := features() &^ tiersDisabled

	switch {
	case f&(cpu.AVX512F|cpu.AVX512VL) == cpu.AVX512F|cpu.AVX512VL && avx512.HashMany != nil:
		return 16
	case f&cpu.AVX2 != 0 && avx2.HashMany != nil:
		return 8
	case f&cpu.SSE41 != 0 && sse41.HashMany != nil:
		return 4
	case f&cpu.SSE2 != 0 && sse2.HashMany != nil:
		return 4
	case archHashMany != nil:
		return archDegree
	}

	return 1
}
