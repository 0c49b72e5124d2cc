package utils

import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

// ComputePowers returns [x^0, x^1, ..., x^(n-1)].
//
// Used to turn a single Fiat-Shamir challenge into the sequence of random
// linear-combination coefficients used by the batch verification routines.
func ComputePowers(x fr.Element, n uint) []fr.Element {
	powers := make([]fr.Element, n)
	if n == 0 {
		return powers
	}
	powers[0].SetOne()
	for i := uint(1); i < n; i++ {
		powers[i].Mul(&powers[i-1], &x)
	}
	return powers
}
