package varexpand

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// HashFunc computes the non-cryptographic hash used by the H modifier.
type HashFunc func(s string) uint64

// ELFHash is the classic 32-bit PJW/ELF string hash. It is the default so
// that hashed paths stay stable across implementations that share it.
func ELFHash(s string) uint64 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = (h << 4) + uint32(s[i])
		if g := h & 0xf0000000; g != 0 {
			h ^= g >> 24
			h ^= g
		}
	}
	return uint64(h)
}

// XXHash is the 64-bit xxHash of s.
func XXHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// ParseHashFunc maps a configuration name to a HashFunc.
// Accepted names are "elf" (or empty) and "xxhash".
func ParseHashFunc(name string) (HashFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "elf":
		return ELFHash, nil
	case "xxhash", "xxh64":
		return XXHash, nil
	default:
		return nil, fmt.Errorf("unknown hash function %q (expect: elf|xxhash)", name)
	}
}
