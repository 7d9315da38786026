//go:build !386 && !amd64

package cpu

// No prober on this architecture. Ports with their own fixed-width kernels
// (e.g. NEON builds) register them with the dispatch layer directly instead
// of going through feature flags.
func detect() Flags {
	return 0
}
