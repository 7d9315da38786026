//go:build 386 || amd64

package cpu

import (
	"testing"

	kcpuid "github.com/klauspost/cpuid/v2"
	xcpu "golang.org/x/sys/cpu"
)

func TestDetect(t *testing.T) {
	t.Run("real", testDetectReal)
	t.Run("mocked", testDetectMocked)
}

// Run against the actual cpuid/xgetbv instructions and cross-checked against
// two independent detection libraries. We cannot assume the presence of any
// particular extension on the machine running the tests, but the three
// implementations must agree on every single one of them.
func testDetectReal(t *testing.T) {
	f := detect()

	for _, c := range []struct {
		name     string
		actual   bool
		expected bool
	}{
		{"sse2", f&SSE2 != 0, kcpuid.CPU.Supports(kcpuid.SSE2)},
		{"ssse3", f&SSSE3 != 0, kcpuid.CPU.Supports(kcpuid.SSSE3)},
		{"sse4.1", f&SSE41 != 0, kcpuid.CPU.Supports(kcpuid.SSE4)},
		{"avx", f&AVX != 0, xcpu.X86.HasAVX},
		{"avx2", f&AVX2 != 0, xcpu.X86.HasAVX2},
		{"avx512f", f&AVX512F != 0, xcpu.X86.HasAVX512F},
		{"avx512vl", f&AVX512VL != 0, xcpu.X86.HasAVX512VL},
	} {
		if c.actual != c.expected {
			t.Errorf("%s: expected [%t], got [%t]", c.name, c.expected, c.actual)
		}
	}
}

// Note: Those tests must not run in parallel to any tests that rely on real
// hardware, as the cpuid and xgetbv functions get swapped out for mocks.
func testDetectMocked(t *testing.T) {
	cpuid = mock.id
	xgetbv = mock.bv

	t.Cleanup(func() {
		cpuid = cpuidReal
		xgetbv = xgetbvReal
		cache.Store(0)
	})

	t.Run("max-leaf-invalid", testDetectMaxLeafInvalid)
	t.Run("base-sets", testDetectBaseSets)
	t.Run("avx-requires-osxsave", testDetectAVXRequiresOSXSAVE)
	t.Run("avx-requires-saved-state", testDetectAVXRequiresSavedState)
	t.Run("avx-confirmed", testDetectAVXConfirmed)
	t.Run("avx2-requires-leaf7", testDetectAVX2RequiresLeaf7)
	t.Run("avx512-requires-zmm-state", testDetectAVX512RequiresZMMState)
	t.Run("avx512-confirmed", testDetectAVX512Confirmed)
	t.Run("memoized", testFeaturesMemoized)
}

func testDetectMaxLeafInvalid(t *testing.T) {
	mock.reset()
	mock.maxLeaf = 0

	expectFlags(t, 0)
}

func testDetectBaseSets(t *testing.T) {
	mock.reset()
	mock.ecx1 &^= bitSSSE3 | bitSSE41

	expectFlags(t, SSE2|AVX|AVX2|AVX512F|AVX512VL)

	// SSE2 is part of the amd64 base architecture; on 386 it must come from
	// its dedicated leaf 1 bit.
	mock.reset()
	mock.edx1 = 0

	expected := SSSE3 | SSE41 | AVX | AVX2 | AVX512F | AVX512VL
	if sse2Implied {
		expected |= SSE2
	}
	expectFlags(t, expected)
}

// The classic crash scenario on real machines: the CPU advertises AVX but
// the OS never opted into extended state saving. The feature bit alone must
// not be believed.
func testDetectAVXRequiresOSXSAVE(t *testing.T) {
	mock.reset()
	mock.ecx1 &^= bitOSXSAVE

	expectFlags(t, SSE2|SSSE3|SSE41)
}

func testDetectAVXRequiresSavedState(t *testing.T) {
	mock.reset()
	mock.state &^= xcr0AVX

	expectFlags(t, SSE2|SSSE3|SSE41)
}

func testDetectAVXConfirmed(t *testing.T) {
	mock.reset()
	mock.state = xcr0SSE | xcr0AVX
	mock.ebx7 = 0

	expectFlags(t, SSE2|SSSE3|SSE41|AVX)
}

func testDetectAVX2RequiresLeaf7(t *testing.T) {
	mock.reset()
	mock.maxLeaf = 6

	expectFlags(t, SSE2|SSSE3|SSE41|AVX)
}

func testDetectAVX512RequiresZMMState(t *testing.T) {
	mock.reset()
	mock.state = xcr0SSE | xcr0AVX | 1<<5 // Opmask alone is not enough.

	expectFlags(t, SSE2|SSSE3|SSE41|AVX|AVX2)
}

func testDetectAVX512Confirmed(t *testing.T) {
	mock.reset()

	expectFlags(t, allFlags)
}

// Once cached, later reads must not consult the hardware again even if it
// were to start answering differently.
func testFeaturesMemoized(t *testing.T) {
	mock.reset()
	cache.Store(0)

	expected := Features()
	mock.maxLeaf = 0

	if actual := Features(); actual != expected {
		t.Errorf("expected [%s], got [%s]", expected, actual)
	}
}

const (
	bitSSE2    = 1 << 26
	bitSSSE3   = 1 << 9
	bitSSE41   = 1 << 19
	bitOSXSAVE = 1 << 27
	bitAVX     = 1 << 28
	bitAVX2    = 1 << 5
	bitAVX512F = 1 << 16

	allFlags = SSE2 | SSSE3 | SSE41 | AVX | AVX2 | AVX512F | AVX512VL
)

var mock = func() *cpuMock {
	c := &cpuMock{}
	c.reset()

	return c
}()

type cpuMock struct {
	maxLeaf uint32
	ecx1    uint32
	edx1    uint32
	ebx7    uint32
	state   uint64
}

// reset arranges registers describing a processor and OS on which every
// extension we know about passes all of its trust tiers.
func (c *cpuMock) reset() {
	c.maxLeaf = 7
	c.ecx1 = bitSSSE3 | bitSSE41 | bitOSXSAVE | bitAVX
	c.edx1 = bitSSE2
	c.ebx7 = bitAVX2 | bitAVX512F | 1<<31
	c.state = xcr0SSE | xcr0AVX | xcr0AVX512
}

func (c *cpuMock) id(eaxArg, _ uint32) (eax, ebx, ecx, edx uint32) {
	switch eaxArg {
	case 0:
		return c.maxLeaf, 0, 0, 0
	case 1:
		return 0, 0, c.ecx1, c.edx1
	case 7:
		return 0, c.ebx7, 0, 0
	}

	return 0, 0, 0, 0
}

func (c *cpuMock) bv() (eax, edx uint32) {
	return uint32(c.state), uint32(c.state >> 32)
}

func expectFlags(t *testing.T, expected Flags) {
	t.Helper()

	if actual := detect(); actual != expected {
		t.Errorf("expected [%s], got [%s]", expected, actual)
	}
}
