//go:build 386 || amd64

package cpu

// XCR0 state component bits. The OS advertises through XCR0 which register
// banks it saves and restores on context switches; an extension whose state
// the OS does not save must not be reported as usable, no matter what its
// CPUID feature bit claims, or the first instruction touching that bank
// faults with SIGILL.
const (
	xcr0SSE    = 1 << 1
	xcr0AVX    = 1 << 2
	xcr0AVX512 = 1<<5 | 1<<6 | 1<<7 // Opmask, ZMM_Hi256, Hi16_ZMM together.
)

// detect decodes CPUID leaves 0, 1 and 7 plus XCR0 into a Flags mask.
//
// Trust is tiered: the base SSE bits come straight from leaf 1; AVX and AVX2
// additionally require OSXSAVE and the SSE+AVX state components enabled in
// XCR0; the AVX-512 bits require three further state components on top of
// that. A bit that fails its tier is simply left out of the mask - older
// processors return zeroed bits rather than erroring, so there is no failure
// path here, only graceful reduction.
func detect() (f Flags) {
	maxID, _, _, _ := cpuid(0, 0)
	if maxID < 1 {
		return 0
	}

	_, _, c, d := cpuid(1, 0)

	if sse2Implied || d&(1<<26) != 0 {
		f |= SSE2
	}
	if c&(1<<9) != 0 {
		f |= SSSE3
	}
	if c&(1<<19) != 0 {
		f |= SSE41
	}

	// Without OSXSAVE the XGETBV instruction itself is off limits and none
	// of the extended state guarantees below can be confirmed.
	if c&(1<<27) == 0 {
		return f
	}

	state := xcr0()
	if state&(xcr0SSE|xcr0AVX) != xcr0SSE|xcr0AVX {
		return f
	}

	if c&(1<<28) != 0 {
		f |= AVX
	}

	if maxID < 7 {
		return f
	}

	_, b, _, _ := cpuid(7, 0)

	if b&(1<<5) != 0 {
		f |= AVX2
	}

	if state&xcr0AVX512 == xcr0AVX512 {
		if b&(1<<16) != 0 {
			f |= AVX512F
		}
		if b&(1<<31) != 0 {
			f |= AVX512VL
		}
	}

	return f
}

func xcr0() uint64 {
	eax, edx := xgetbv()
	return uint64(edx)<<32 | uint64(eax)
}

// Get temporarily swapped out with mocks during tests.
var (
	cpuid  = cpuidReal
	xgetbv = xgetbvReal
)

//go:noescape
func cpuidReal(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)

//go:noescape
func xgetbvReal() (eax, edx uint32)
