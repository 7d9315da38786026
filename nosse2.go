//go:build blake3_nosse2

package blake3

import "github.com/GerHobbelt/BLAKE3/internal/cpu"

func init() {
	tiersDisabled |= cpu.SSE2
}
