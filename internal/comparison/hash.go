package comparison

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// HashString is the stable string hash used across kinds.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashStrings hashes an ordered sequence of strings.
func HashStrings(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		d.WriteString(p)
		d.Write([]byte{0})
	}
	return d.Sum64()
}

// HashMap hashes a string map independently of iteration order. A nil and
// an empty map hash the same.
func HashMap(m map[string]string) uint64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := xxhash.New()
	for _, k := range keys {
		d.WriteString(k)
		d.Write([]byte{0})
		d.WriteString(m[k])
		d.Write([]byte{0})
	}
	return d.Sum64()
}

// Combine mixes two hashes; order matters.
func Combine(h1, h2 uint64) uint64 {
	h := h1*31 + h2
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}
