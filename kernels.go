package blake3

// BlockLen is the size of one compression input block in bytes, and of one
// XOF output block.
const BlockLen = 64

// The kernel signatures below mirror the compute primitives of the hash: a
// kernel is an opaque, extension-specific implementation of one of them.
// Kernels never fail - they run to completion over the caller-owned,
// fixed-size buffers they are handed and hold no state of their own.
type (
	// CompressFn folds one block into the chaining value in place.
	CompressFn func(cv *[8]uint32, block *[BlockLen]byte, blockLen uint8, counter uint64, flags uint8)

	// CompressXOFFn is CompressFn writing the full 64-byte compression
	// output instead of mutating the chaining value.
	CompressXOFFn func(cv *[8]uint32, block *[BlockLen]byte, blockLen uint8, counter uint64, flags uint8, out *[BlockLen]byte)

	// XOFManyFn expands one chaining state into len(out)/BlockLen output
	// blocks, incrementing the counter per block. Implementations may assume
	// at least one block is requested.
	XOFManyFn func(cv *[8]uint32, block *[BlockLen]byte, blockLen uint8, counter uint64, flags uint8, out []byte)

	// HashManyFn hashes len(inputs) independent inputs of blocks full blocks
	// each, writing the concatenated 32-byte chaining results to out. The
	// counter increments per input when incrementCounter is set; flagsStart
	// and flagsEnd are additionally applied to each input's first and last
	// block respectively.
	HashManyFn func(inputs [][]byte, blocks int, key *[8]uint32, counter uint64, incrementCounter bool, flags, flagsStart, flagsEnd uint8, out []byte)
)

// Kernels bundles the kernel set one capability tier provides. Slots a tier
// has no specialized implementation for stay nil and dispatch falls through
// to the next tier for that operation.
type Kernels struct {
	Compress    CompressFn
	CompressXOF CompressXOFFn
	XOFMany     XOFManyFn
	HashMany    HashManyFn
}

// Tier identifies one capability level of the dispatch tables.
type Tier int

const (
	TierSSE2 Tier = iota
	TierSSE41
	TierAVX2
	TierAVX512
)

// The registered kernel sets, one slot per tier plus the portable fallback
// and the fixed-width hook for non-x86 ports. Written during kernel package
// init only; dispatch assumes registration finished before first use and
// performs no synchronization around these.
var (
	sse2     Kernels
	sse41    Kernels
	avx2     Kernels
	avx512   Kernels
	portable Kernels

	archHashMany HashManyFn
	archDegree   int
)

// RegisterTier installs the kernel set for one capability tier. Meant to be
// called from the init of the package carrying that tier's implementations.
func RegisterTier(t Tier, k Kernels) {
	switch t {
	case TierSSE2:
		sse2 = k
	case TierSSE41:
		sse41 = k
	case TierAVX2:
		avx2 = k
	case TierAVX512:
		avx512 = k
	default:
		panic("blake3: unknown kernel tier")
	}
}

// RegisterPortable installs the fallback kernel set requiring no capability
// at all. Every operation terminates here, so a complete set is expected.
func RegisterPortable(k Kernels) {
	portable = k
}

// RegisterArchHashMany installs a fixed-width batch kernel for architectures
// without feature probing (e.g. NEON builds), along with the number of
// independent inputs it processes per call. It is preferred over the
// portable kernel whenever no x86 tier is eligible.
func RegisterArchHashMany(fn HashManyFn, degree int) {
	if degree < 1 {
		panic("blake3: arch kernel degree must be positive")
	}

	archHashMany = fn
	archDegree = degree
}
