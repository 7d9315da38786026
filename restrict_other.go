//go:build !windows

package blake3

var xofManyAVX512Restricted = false
