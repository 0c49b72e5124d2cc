package kzg

import (
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/utils"
)

// ErrSetupInconsistent is returned when the Lagrange-form G1 setup does
// not agree with the monomial-form G1 setup.
var ErrSetupInconsistent = errors.New("kzg: lagrange and monomial G1 setups are inconsistent")

// fixedBaseWindowBits bounds the window size accepted for the optional
// fixed-base MSM tables. Anything above this is clamped: memory grows
// as 2^window per base point, and the setup holds one table per
// Lagrange point.
const fixedBaseWindowBits = 8

// FixedBaseTable precomputes small multiples of a single base point so
// that scalar multiplication against it can process several scalar bits
// per table lookup instead of one doubling per bit.
type FixedBaseTable struct {
	window uint
	// multiples[i] = i * Base, for i in [0, 2^window).
	multiples []bls12381.G1Jac
}

func newFixedBaseTable(base *bls12381.G1Affine, window uint) FixedBaseTable {
	size := uint64(1) << window
	multiples := make([]bls12381.G1Jac, size)
	var baseJac bls12381.G1Jac
	baseJac.FromAffine(base)
	for i := uint64(1); i < size; i++ {
		multiples[i].Set(&multiples[i-1])
		multiples[i].AddAssign(&baseJac)
	}
	return FixedBaseTable{window: window, multiples: multiples}
}

// TrustedSetup holds the immutable data produced by LoadTrustedSetup.
// It is safe for concurrent read-only use from multiple goroutines; it
// must not be mutated or freed while any other call references it.
type TrustedSetup struct {
	// ExtendedDomain is the scale-log2(2*n1) domain used by the cell API
	// (FFTs over the 2*n1-point extended evaluation domain).
	ExtendedDomain *Domain
	// BlobDomain is the scale-log2(n1) domain used by the blob API
	// (FFTs over the n1-point Lagrange evaluation domain).
	BlobDomain *Domain

	G1Monomial    []bls12381.G1Affine // length n1: s^0..s^(n1-1)
	G1LagrangeBRP []bls12381.G1Affine // length n1, bit-reversal permuted
	G2Monomial    []bls12381.G2Affine // length n2: s^0..s^(n2-1) in G2

	FK20 *FK20Columns

	Precompute uint64
	FixedBase  []FixedBaseTable // len == len(G1LagrangeBRP) iff Precompute > 0
}

// LoadTrustedSetup builds a TrustedSetup from already-decoded, already
// curve/subgroup-validated points. Byte decoding and per-point
// validation are the caller's responsibility (kzg4844 does this via its
// codecs before calling in).
func LoadTrustedSetup(g1Monomial []bls12381.G1Affine, g1Lagrange []bls12381.G1Affine, g2Monomial []bls12381.G2Affine, cellSize int, precompute uint64) (*TrustedSetup, error) {
	n1 := len(g1Lagrange)
	if len(g1Monomial) != n1 {
		return nil, errors.New("kzg: monomial and lagrange G1 setups must have the same length")
	}
	if !utils.IsPowerOfTwo(uint64(n1)) {
		return nil, ErrFFTLength
	}

	blobScale := utils.Log2(uint64(n1))
	blobDomain, err := NewDomain(blobScale)
	if err != nil {
		return nil, err
	}
	extendedDomain, err := NewDomain(blobScale + 1)
	if err != nil {
		return nil, err
	}

	lagrangeBRP := make([]bls12381.G1Affine, n1)
	copy(lagrangeBRP, g1Lagrange)
	if err := utils.BitReversalPermutation(lagrangeBRP, uint64(n1)); err != nil {
		return nil, err
	}

	if err := checkLagrangeMonomialConsistency(blobDomain, g1Lagrange, g1Monomial); err != nil {
		return nil, err
	}

	fk20, err := NewFK20Precompute(g1Monomial, n1, cellSize)
	if err != nil {
		return nil, err
	}

	ts := &TrustedSetup{
		ExtendedDomain: extendedDomain,
		BlobDomain:     blobDomain,
		G1Monomial:     g1Monomial,
		G1LagrangeBRP:  lagrangeBRP,
		G2Monomial:     g2Monomial,
		FK20:           fk20,
		Precompute:     precompute,
	}

	if precompute > 0 {
		window := precompute
		if window > fixedBaseWindowBits {
			window = fixedBaseWindowBits
		}
		ts.FixedBase = make([]FixedBaseTable, n1)
		for i := range lagrangeBRP {
			ts.FixedBase[i] = newFixedBaseTable(&lagrangeBRP[i], uint(window))
		}
	}

	return ts, nil
}

// checkLagrangeMonomialConsistency verifies that the Lagrange setup is
// the inverse FFT of the monomial setup: both must encode the same
// secret. The check runs on the natural-order input, before the
// loader's own bit-reversal permutation.
func checkLagrangeMonomialConsistency(d *Domain, lagrange []bls12381.G1Affine, monomial []bls12381.G1Affine) error {
	jac := make([]bls12381.G1Jac, len(monomial))
	for i := range monomial {
		jac[i].FromAffine(&monomial[i])
	}
	expected, err := d.FFTInverseG1(jac)
	if err != nil {
		return err
	}
	for i := range expected {
		var aff bls12381.G1Affine
		aff.FromJacobian(&expected[i])
		if !aff.Equal(&lagrange[i]) {
			return ErrSetupInconsistent
		}
	}
	return nil
}

// LagrangeEvaluationBasis exposes the blob domain's BRP roots, used by
// callers (kzg4844) for barycentric evaluation at arbitrary points.
func (ts *TrustedSetup) LagrangeEvaluationBasis() []fr.Element {
	return ts.BlobDomain.BitReversedRoots
}

// LagrangeLincomb computes sum(scalars_i * G1LagrangeBRP_i), the MSM
// behind commitments and evaluation-form proofs. When the setup was
// loaded with a precompute hint the fixed-base windowed tables serve the
// combination; otherwise it runs through G1LincombFast.
func (ts *TrustedSetup) LagrangeLincomb(scalars []fr.Element) (bls12381.G1Affine, error) {
	if ts.FixedBase != nil {
		return G1LincombWithTables(ts.FixedBase, scalars)
	}
	return G1LincombFast(ts.G1LagrangeBRP, scalars)
}
