package kzg

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// lincombNaiveThreshold is the point count below which G1LincombFast
// uses the naive accumulator rather than the Pippenger multi-exp; very
// short multi-exp inputs are not worth the bucket setup, and the
// routine must never see an infinity point either way.
const lincombNaiveThreshold = 8

// g1LincombNaive computes out = sum(c_i * P_i) with an identity start,
// one scalar multiplication at a time. It works directly in Jacobian
// coordinates so short inputs never touch the multi-exp machinery.
func g1LincombNaive(points []bls12381.G1Affine, scalars []fr.Element) bls12381.G1Jac {
	var out bls12381.G1Jac
	out.X.SetZero()
	out.Y.SetZero()
	out.Z.SetZero()

	for i := range points {
		if points[i].IsInfinity() {
			continue
		}
		var sBig big.Int
		scalars[i].BigInt(&sBig)
		var term bls12381.G1Jac
		term.FromAffine(&points[i])
		term.ScalarMultiplication(&term, &sBig)
		out.AddAssign(&term)
	}
	return out
}

// G1LincombFast computes the linear combination sum(scalars_i * points_i):
//
//  1. below lincombNaiveThreshold points, fall back to the naive fold;
//  2. otherwise filter out (point, scalar) pairs where the point is
//     infinity, which the bucketed multi-exp must not see;
//  3. if the filtered length again falls below the threshold, fall back
//     to the naive fold on the ORIGINAL (unfiltered) inputs, preserving
//     semantics exactly;
//  4. otherwise invoke gnark-crypto's Pippenger-based MultiExp on the
//     filtered inputs.
func G1LincombFast(points []bls12381.G1Affine, scalars []fr.Element) (bls12381.G1Affine, error) {
	var result bls12381.G1Affine

	if len(points) != len(scalars) {
		return result, errLincombLengthMismatch
	}

	if len(points) < lincombNaiveThreshold {
		jac := g1LincombNaive(points, scalars)
		result.FromJacobian(&jac)
		return result, nil
	}

	filteredPoints := make([]bls12381.G1Affine, 0, len(points))
	filteredScalars := make([]fr.Element, 0, len(points))
	for i := range points {
		if points[i].IsInfinity() {
			continue
		}
		filteredPoints = append(filteredPoints, points[i])
		filteredScalars = append(filteredScalars, scalars[i])
	}

	if len(filteredPoints) < lincombNaiveThreshold {
		jac := g1LincombNaive(points, scalars)
		result.FromJacobian(&jac)
		return result, nil
	}

	if _, err := result.MultiExp(filteredPoints, filteredScalars, ecc.MultiExpConfig{}); err != nil {
		return result, err
	}
	return result, nil
}

// G1LincombWithTables computes the same linear combination as
// G1LincombFast but using the fixed-base windowed tables built by
// LoadTrustedSetup when its precompute hint is nonzero. It trades memory
// (one table per base point) for fewer point doublings per scalar
// multiplication.
func G1LincombWithTables(tables []FixedBaseTable, scalars []fr.Element) (bls12381.G1Affine, error) {
	var result bls12381.G1Affine
	if len(tables) != len(scalars) {
		return result, errLincombLengthMismatch
	}

	var total bls12381.G1Jac
	for i := range tables {
		if scalars[i].IsZero() {
			continue
		}
		term := scalarMulWithTable(&tables[i], &scalars[i])
		total.AddAssign(&term)
	}
	result.FromJacobian(&total)
	return result, nil
}

// scalarMulWithTable computes scalar*Base using the table's precomputed
// 2^window multiples of Base, processing the scalar `window` bits at a
// time from the most significant digit down.
func scalarMulWithTable(t *FixedBaseTable, scalar *fr.Element) bls12381.G1Jac {
	var acc bls12381.G1Jac
	var sBig big.Int
	scalar.BigInt(&sBig)

	bitLen := sBig.BitLen()
	if bitLen == 0 {
		return acc
	}
	window := int(t.window)
	numDigits := (bitLen + window - 1) / window
	mask := (uint64(1) << uint(window)) - 1

	for d := numDigits - 1; d >= 0; d-- {
		if d != numDigits-1 {
			for b := 0; b < window; b++ {
				acc.Double(&acc)
			}
		}
		shifted := new(big.Int).Rsh(&sBig, uint(d*window))
		digit := shifted.Uint64() & mask
		if digit != 0 {
			acc.AddAssign(&t.multiples[digit])
		}
	}
	return acc
}
