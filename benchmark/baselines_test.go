package benchmark

import (
	"strconv"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-t1ha"
	"github.com/minio/blake2b-simd"
	"github.com/minio/highwayhash"
	sha256 "github.com/minio/sha256-simd"
	zblake3 "github.com/zeebo/blake3"
	"github.com/zeebo/wyhash"
	"github.com/zeebo/xxh3"
)

// Throughput baselines of the SIMD-accelerated hashing libraries in the
// wild, to put dispatch numbers into context on the same machine.
func benchmarkBaselines(b *testing.B) {
	var hwKey [32]byte

	hashers := []struct {
		name string
		sum  func([]byte)
	}{
		{"zeebo-blake3", func(p []byte) { zblake3.Sum256(p) }},
		{"minio-blake2b", func(p []byte) {
			h := blake2b.New512()
			_, _ = h.Write(p)
			h.Sum(nil)
		}},
		{"minio-sha256", func(p []byte) { sha256.Sum256(p) }},
		{"highwayhash", func(p []byte) { highwayhash.Sum64(p, hwKey[:]) }},
		{"xxhash", func(p []byte) { xxhash.Sum64(p) }},
		{"xxh3", func(p []byte) { xxh3.Hash(p) }},
		{"wyhash", func(p []byte) { wyhash.Hash(p, 42) }},
		{"t1ha", func(p []byte) { t1ha.Sum64(p, 42) }},
	}

	for _, h := range hashers {
		h := h
		b.Run(h.name, func(b *testing.B) {
			for _, size := range []int{64, 1024, 64 * 1024} {
				size := size
				data := make([]byte, size)
				b.Run(strconv.Itoa(size), func(b *testing.B) {
					b.SetBytes(int64(size))
					for i := 0; i < b.N; i++ {
						h.sum(data)
					}
				})
			}
		})
	}
}
