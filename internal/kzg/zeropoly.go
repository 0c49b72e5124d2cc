package kzg

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/utils"
)

// missingPerPartial bounds the degree of each directly-multiplied
// partial product; partials are then combined in groups of
// reductionFactor by FFT convolution. Both are tuning constants, not
// part of the result.
const (
	missingPerPartial = 63
	reductionFactor   = 4
)

var (
	// ErrZeroPolyNoMissing is returned when the caller asks for a zero
	// polynomial with no missing indices, a degenerate request the
	// caller must not make.
	ErrZeroPolyNoMissing = errors.New("kzg: zero polynomial requires at least one missing index")
	// ErrZeroPolyTooManyMissing is returned when the missing-index count
	// leaves no room in the domain.
	ErrZeroPolyTooManyMissing = errors.New("kzg: zero polynomial missing-index count must be less than the domain size")
)

// ZeroPolynomial builds Z(x) = prod_k (x - domainRoots[i_k]) for the given
// missing indices. domainRoots is the N-entry
// table the missing indices are drawn from. It returns Z's coefficients
// (length len(missing)+1) and Z evaluated across all N domain positions
// in natural order (evaluations[i] = Z(omega^i) for the size-N domain),
// which lines up with domainRoots[i] when domainRoots is the
// natural-order root table, as RecoverPolynomial passes it.
func ZeroPolynomial(missing []uint64, domainRoots []fr.Element) (coeffs []fr.Element, evaluations []fr.Element, err error) {
	n := uint64(len(domainRoots))
	if len(missing) == 0 {
		return nil, nil, ErrZeroPolyNoMissing
	}
	if !utils.IsPowerOfTwo(n) {
		return nil, nil, ErrFFTLength
	}
	if uint64(len(missing)) >= n {
		return nil, nil, ErrZeroPolyTooManyMissing
	}

	partials := make([][]fr.Element, 0, (len(missing)+missingPerPartial-1)/missingPerPartial)
	for start := 0; start < len(missing); start += missingPerPartial {
		end := start + missingPerPartial
		if end > len(missing) {
			end = len(missing)
		}
		partials = append(partials, zeroPolyPartial(missing[start:end], domainRoots))
	}

	for len(partials) > 1 {
		next := make([][]fr.Element, 0, (len(partials)+reductionFactor-1)/reductionFactor)
		for start := 0; start < len(partials); start += reductionFactor {
			end := start + reductionFactor
			if end > len(partials) {
				end = len(partials)
			}
			group := partials[start:end]
			merged := group[0]
			for _, p := range group[1:] {
				merged, err = polyMulFFT(merged, p)
				if err != nil {
					return nil, nil, err
				}
			}
			next = append(next, merged)
		}
		partials = next
	}

	coeffs = partials[0]

	padded := make([]fr.Element, n)
	copy(padded, coeffs)

	scale := utils.Log2(n)
	fullDomain, err := NewDomain(scale)
	if err != nil {
		return nil, nil, err
	}
	evaluations, err = fullDomain.FFT(padded)
	if err != nil {
		return nil, nil, err
	}

	return coeffs, evaluations, nil
}

// zeroPolyPartial computes the degree-len(chunk) product polynomial for a
// single chunk of missing indices, via the "multiply by (x - root)"
// recurrence: each step shifts the running polynomial up by one degree and
// subtracts root times itself.
func zeroPolyPartial(chunk []uint64, domainRoots []fr.Element) []fr.Element {
	poly := make([]fr.Element, 1, len(chunk)+1)
	poly[0].SetOne()
	for _, idx := range chunk {
		root := domainRoots[idx]
		next := make([]fr.Element, len(poly)+1)
		for i, c := range poly {
			var t fr.Element
			t.Mul(&c, &root)
			next[i].Sub(&next[i], &t)
			next[i+1].Add(&next[i+1], &c)
		}
		poly = next
	}
	return poly
}

// polyMulFFT multiplies two monomial-form polynomials via FFT convolution
// on a throwaway domain sized to the next power of two covering their
// combined degree.
func polyMulFFT(a, b []fr.Element) ([]fr.Element, error) {
	outLen := len(a) + len(b) - 1
	size := uint64(1)
	for size < uint64(outLen) {
		size <<= 1
	}
	scale := utils.Log2(size)
	d, err := NewDomain(scale)
	if err != nil {
		return nil, err
	}

	pa := make([]fr.Element, size)
	copy(pa, a)
	pb := make([]fr.Element, size)
	copy(pb, b)

	fa, err := d.FFT(pa)
	if err != nil {
		return nil, err
	}
	fb, err := d.FFT(pb)
	if err != nil {
		return nil, err
	}

	prod := make([]fr.Element, size)
	for i := range prod {
		prod[i].Mul(&fa[i], &fb[i])
	}

	result, err := d.FFTInverse(prod)
	if err != nil {
		return nil, err
	}

	return result[:outLen], nil
}
