package kzg

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// cosetShift is the fixed primitive element k = 5 used to shift the
// domain so that the zero polynomial Z is nowhere zero on the coset.
// 5 is not a 2^32-th root of unity (5^(2^32) != 1 in Fr), so no
// power-of-two-order subgroup contains it.
const cosetShift = 5

// ErrRecoveryTooFewSamples is returned when fewer than half the domain's
// samples are present; the Reed-Solomon decoder has no guarantee of
// correctness below that threshold.
var ErrRecoveryTooFewSamples = errors.New("kzg: recovery requires at least half the domain's samples to be present")

// ErrRecoveryMismatch is returned when the recovered polynomial disagrees
// with a present sample; this indicates a library bug or fewer genuinely
// consistent samples than claimed, never a caller mistake.
var ErrRecoveryMismatch = errors.New("kzg: recovered polynomial disagrees with a known sample")

// Sample is one entry of a recovery input vector: either a known
// evaluation, or a tagged "missing" placeholder. The tag keeps the
// missing state out of Fr entirely; no field element is reserved as a
// sentinel.
type Sample struct {
	Value   fr.Element
	Present bool
}

// RecoverPolynomial reconstructs the N evaluations of a polynomial of
// degree < N/2 from a vector of N samples, at least N/2 of which must be
// present, via Reed-Solomon decoding on a shifted coset.
// domain must have cardinality N = len(samples) and samples must be in
// natural domain order, with samples[i] the evaluation at
// domain.ExpandedRoots[i] (callers recovering BRP-ordered cell data
// un-permute before calling in; see kzg4844/cell.go). domainRoots is the
// N-entry natural-order root table.
func RecoverPolynomial(domain *Domain, domainRoots []fr.Element, samples []Sample) ([]fr.Element, error) {
	n := domain.Cardinality
	if uint64(len(samples)) != n || uint64(len(domainRoots)) != n {
		return nil, errors.New("kzg: recovery sample/domain length mismatch")
	}

	missing := make([]uint64, 0)
	for i, s := range samples {
		if !s.Present {
			missing = append(missing, uint64(i))
		}
	}
	if uint64(len(missing))*2 > n {
		return nil, ErrRecoveryTooFewSamples
	}
	if len(missing) == 0 {
		out := make([]fr.Element, n)
		for i, s := range samples {
			out[i] = s.Value
		}
		return out, nil
	}

	zCoeffs, zEval, err := ZeroPolynomial(missing, domainRoots)
	if err != nil {
		return nil, err
	}
	zCoeffsFull := make([]fr.Element, n)
	copy(zCoeffsFull, zCoeffs)

	// Step 3: form (P*Z) on the domain.
	productEval := make([]fr.Element, n)
	for i, s := range samples {
		if s.Present {
			productEval[i].Mul(&s.Value, &zEval[i])
		}
	}
	productCoeffs, err := domain.FFTInverse(productEval)
	if err != nil {
		return nil, err
	}

	// Step 4: shift both polynomials onto the coset by k^-i.
	shiftedProduct := shiftPolynomial(productCoeffs, cosetShift, false)
	shiftedZ := shiftPolynomial(zCoeffsFull, cosetShift, false)

	// Step 5: FFT both, divide pointwise, iFFT.
	shiftedProductEval, err := domain.FFT(shiftedProduct)
	if err != nil {
		return nil, err
	}
	shiftedZEval, err := domain.FFT(shiftedZ)
	if err != nil {
		return nil, err
	}

	shiftedZEvalInv := fr.BatchInvert(shiftedZEval)
	shiftedPEval := make([]fr.Element, n)
	for i := range shiftedPEval {
		shiftedPEval[i].Mul(&shiftedProductEval[i], &shiftedZEvalInv[i])
	}

	shiftedPCoeffs, err := domain.FFTInverse(shiftedPEval)
	if err != nil {
		return nil, err
	}

	// Step 6: unshift by k^i.
	pCoeffs := shiftPolynomial(shiftedPCoeffs, cosetShift, true)

	recovered, err := domain.FFT(pCoeffs)
	if err != nil {
		return nil, err
	}

	for i, s := range samples {
		if s.Present && !recovered[i].Equal(&s.Value) {
			return nil, ErrRecoveryMismatch
		}
	}

	return recovered, nil
}

// shiftPolynomial multiplies coefficient i by k^i (unshift=true) or k^-i
// (unshift=false), moving evaluation between the domain and its coset.
func shiftPolynomial(coeffs []fr.Element, k uint64, unshift bool) []fr.Element {
	out := make([]fr.Element, len(coeffs))
	var base fr.Element
	base.SetUint64(k)
	if !unshift {
		base.Inverse(&base)
	}
	var factor fr.Element
	factor.SetOne()
	for i := range coeffs {
		out[i].Mul(&coeffs[i], &factor)
		factor.Mul(&factor, &base)
	}
	return out
}
