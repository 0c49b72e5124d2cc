// Package utils holds small numeric helpers shared by the internal/kzg
// engine: bit-reversal permutations and Fiat-Shamir power sequences.
package utils

import (
	"errors"
	"math/bits"
)

// ErrNotPowerOfTwo is returned whenever a function that requires a
// power-of-two length is given something else.
var ErrNotPowerOfTwo = errors.New("utils: length is not a power of two")

// IsPowerOfTwo reports whether n is a nonzero power of two.
func IsPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns log2(n), assuming n is a power of two. Callers must check
// IsPowerOfTwo first; behavior is undefined otherwise.
func Log2(n uint64) uint64 {
	return uint64(bits.Len64(n) - 1)
}

// ReverseBits reverses all 32 bits of n.
func ReverseBits(n uint32) uint32 {
	return bits.Reverse32(n)
}

// ReverseBitsLimited reverses the low `order` bits of n, where order is
// log2 of a power-of-two domain size. Bits above `order` are ignored.
func ReverseBitsLimited(order uint64, n uint64) uint64 {
	return bits.Reverse64(n) >> (64 - order)
}

// BitReversalPermutation permutes a in place so that a[i] and a[BRP(i)]
// are swapped for every i such that BRP(i) > i. N = len(a) must be a
// power of two; BRP is computed on log2(N) bits.
func BitReversalPermutation[T any](a []T, n uint64) error {
	if uint64(len(a)) != n {
		return errors.New("utils: length mismatch")
	}
	if n < 2 || !IsPowerOfTwo(n) {
		return ErrNotPowerOfTwo
	}
	order := Log2(n)
	for i := uint64(0); i < n; i++ {
		j := ReverseBitsLimited(order, i)
		if j > i {
			a[i], a[j] = a[j], a[i]
		}
	}
	return nil
}
