//go:build blake3_noavx512

package blake3

import "github.com/GerHobbelt/BLAKE3/internal/cpu"

// Compiles the AVX-512 tier out of every dispatch table, e.g. to route
// around a miscompiled or faulting kernel on a specific toolchain.
func init() {
	tiersDisabled |= cpu.AVX512F | cpu.AVX512VL
}
