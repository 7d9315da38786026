package blake3

import "github.com/GerHobbelt/BLAKE3/internal/cpu"

// Selection names the tier each operation resolves to for a given
// capability mask, assuming a full kernel set is registered per tier. It is
// a diagnostic view of the dispatch tables (vide cmd/b3cpu); the entry
// points additionally skip tiers whose kernel slot is empty.
type Selection struct {
	Features        string `json:"features"`
	CompressInPlace string `json:"compress_in_place"`
	CompressXOF     string `json:"compress_xof"`
	XOFMany         string `json:"xof_many"`
	HashMany        string `json:"hash_many"`
	SIMDDegree      int    `json:"simd_degree"`
}

const (
	tierNamePortable = "portable"
	tierNameSSE2     = "sse2"
	tierNameSSE41    = "sse4.1"
	tierNameAVX2     = "avx2"
	tierNameAVX512   = "avx512"
	tierNameXOFLoop  = "compress-xof loop"
)

// Select reports the tiers the dispatch tables resolve to on this host,
// with build-time tier disables applied.
func Select() Selection {
	f := features() &^ tiersDisabled

	s := Selection{
		Features:        f.String(),
		CompressInPlace: tierNamePortable,
		CompressXOF:     tierNamePortable,
		XOFMany:         tierNameXOFLoop,
		HashMany:        tierNamePortable,
		SIMDDegree:      1,
	}

	switch {
	case f&cpu.AVX512VL != 0:
		s.CompressInPlace = tierNameAVX512
		s.CompressXOF = tierNameAVX512
	case f&cpu.SSE41 != 0:
		s.CompressInPlace = tierNameSSE41
		s.CompressXOF = tierNameSSE41
	case f&cpu.SSE2 != 0:
		s.CompressInPlace = tierNameSSE2
		s.CompressXOF = tierNameSSE2
	}

	if f&cpu.AVX512VL != 0 && !xofManyAVX512Restricted {
		s.XOFMany = tierNameAVX512
	}

	switch {
	case f&(cpu.AVX512F|cpu.AVX512VL) == cpu.AVX512F|cpu.AVX512VL:
		s.HashMany, s.SIMDDegree = tierNameAVX512, 16
	case f&cpu.AVX2 != 0:
		s.HashMany, s.SIMDDegree = tierNameAVX2, 8
	case f&cpu.SSE41 != 0:
		s.HashMany, s.SIMDDegree = tierNameSSE41, 4
	case f&cpu.SSE2 != 0:
		s.HashMany, s.SIMDDegree = tierNameSSE2, 4
	case archHashMany != nil:
		s.HashMany, s.SIMDDegree = "arch", archDegree
	}

	return s
}
