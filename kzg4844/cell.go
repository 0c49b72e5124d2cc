package kzg4844

import (
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/kzg"
	"github.com/eth2030/go-kzg-4844/internal/utils"
)

// EIP-7594 cell API. The blob's polynomial is
// extended to twice the evaluation domain; the 8192 extended evaluations,
// in bit-reversed order, are split into 128 cells of 64 scalars. Each
// cell's 64 evaluations share one FK20 proof against the coset they live
// on, and any 64 cells suffice to recover the rest.

var (
	errCellIndexRange     = errors.New("kzg4844: cell index out of range")
	errCellIndexDuplicate = errors.New("kzg4844: duplicate cell index")
	errCellCountMismatch  = errors.New("kzg4844: cell indices and cells must have the same length")
	errTooFewCells        = errors.New("kzg4844: recovery requires at least half the cells")
	errTooManyCells       = errors.New("kzg4844: more cells than an extended blob contains")
	errCellBatchLengths   = errors.New("kzg4844: commitments, cell indices, cells and proofs must have the same length")
	errExtendedDegree     = errors.New("kzg4844: recovered polynomial exceeds the blob degree")
)

// blobToMonomialCoeffs converts a blob's bit-reversed Lagrange values to
// monomial coefficients: un-permute to natural evaluation order, then
// inverse-FFT over the blob domain.
func blobToMonomialCoeffs(setup *kzg.TrustedSetup, values []fr.Element) ([]fr.Element, error) {
	natural := make([]fr.Element, len(values))
	copy(natural, values)
	if err := utils.BitReversalPermutation(natural, uint64(len(natural))); err != nil {
		return nil, internalError(err)
	}
	coeffs, err := setup.BlobDomain.FFTInverse(natural)
	if err != nil {
		return nil, internalError(err)
	}
	return coeffs, nil
}

// extendedEvaluations evaluates the monomial coefficients over the
// doubled domain and returns the 8192 results in bit-reversed (cell)
// order.
func extendedEvaluations(setup *kzg.TrustedSetup, coeffs []fr.Element) ([]fr.Element, error) {
	padded := make([]fr.Element, fieldElementsPerExtBlob)
	copy(padded, coeffs)
	evals, err := setup.ExtendedDomain.FFT(padded)
	if err != nil {
		return nil, internalError(err)
	}
	if err := utils.BitReversalPermutation(evals, uint64(len(evals))); err != nil {
		return nil, internalError(err)
	}
	return evals, nil
}

// cellsFromExtendedData slices the bit-reversed extended evaluations into
// CellsPerExtBlob serialized cells.
func cellsFromExtendedData(data []fr.Element) [CellsPerExtBlob]Cell {
	var cells [CellsPerExtBlob]Cell
	for i := 0; i < CellsPerExtBlob; i++ {
		cells[i] = serializeCell(data[i*FieldElementsPerCell : (i+1)*FieldElementsPerCell])
	}
	return cells
}

// proofsFromCoeffs runs FK20 over the monomial coefficients and returns
// the 128 cell proofs in cell (bit-reversed) order.
func proofsFromCoeffs(setup *kzg.TrustedSetup, coeffs []fr.Element) ([CellsPerExtBlob]Proof, error) {
	var proofs [CellsPerExtBlob]Proof
	jacs, err := setup.FK20.ComputeCellProofCommitments(coeffs)
	if err != nil {
		return proofs, internalError(err)
	}
	if err := utils.BitReversalPermutation(jacs, uint64(len(jacs))); err != nil {
		return proofs, internalError(err)
	}
	for i := range jacs {
		var aff bls12381.G1Affine
		aff.FromJacobian(&jacs[i])
		proofs[i] = Proof(bytesFromG1Point(&aff))
	}
	return proofs, nil
}

// ComputeCellsAndKZGProofs extends a blob to 128 cells and computes the
// FK20 proof for each.
func (s *Settings) ComputeCellsAndKZGProofs(blob *Blob) ([CellsPerExtBlob]Cell, [CellsPerExtBlob]Proof, error) {
	var noCells [CellsPerExtBlob]Cell
	var noProofs [CellsPerExtBlob]Proof

	setup, err := s.inner()
	if err != nil {
		return noCells, noProofs, err
	}
	values, err := deserializeBlob(blob)
	if err != nil {
		return noCells, noProofs, err
	}
	coeffs, err := blobToMonomialCoeffs(setup, values)
	if err != nil {
		return noCells, noProofs, err
	}
	data, err := extendedEvaluations(setup, coeffs)
	if err != nil {
		return noCells, noProofs, err
	}
	proofs, err := proofsFromCoeffs(setup, coeffs)
	if err != nil {
		return noCells, noProofs, err
	}
	return cellsFromExtendedData(data), proofs, nil
}

// ComputeCells extends a blob to 128 cells without computing proofs,
// for callers that only need the data-availability encoding.
func (s *Settings) ComputeCells(blob *Blob) ([CellsPerExtBlob]Cell, error) {
	var noCells [CellsPerExtBlob]Cell

	setup, err := s.inner()
	if err != nil {
		return noCells, err
	}
	values, err := deserializeBlob(blob)
	if err != nil {
		return noCells, err
	}
	coeffs, err := blobToMonomialCoeffs(setup, values)
	if err != nil {
		return noCells, err
	}
	data, err := extendedEvaluations(setup, coeffs)
	if err != nil {
		return noCells, err
	}
	return cellsFromExtendedData(data), nil
}

// RecoverCellsAndKZGProofs reconstructs all 128 cells and their proofs
// from any subset of at least 64 cells. cellIndices must be distinct,
// in range and aligned with cells.
func (s *Settings) RecoverCellsAndKZGProofs(cellIndices []uint64, cells []Cell) ([CellsPerExtBlob]Cell, [CellsPerExtBlob]Proof, error) {
	allCells, allProofs, _, err := s.recoverCells(cellIndices, cells)
	return allCells, allProofs, err
}

// RecoverAllCells behaves like RecoverCellsAndKZGProofs and additionally
// reports which cell indices were absent from the input, in ascending
// order. Callers answering sampling queries use the list to know what
// they just reconstructed.
func (s *Settings) RecoverAllCells(cellIndices []uint64, cells []Cell) ([CellsPerExtBlob]Cell, [CellsPerExtBlob]Proof, []uint64, error) {
	return s.recoverCells(cellIndices, cells)
}

func (s *Settings) recoverCells(cellIndices []uint64, cells []Cell) ([CellsPerExtBlob]Cell, [CellsPerExtBlob]Proof, []uint64, error) {
	var noCells [CellsPerExtBlob]Cell
	var noProofs [CellsPerExtBlob]Proof

	setup, err := s.inner()
	if err != nil {
		return noCells, noProofs, nil, err
	}
	if len(cellIndices) != len(cells) {
		return noCells, noProofs, nil, badArgs(errCellCountMismatch)
	}
	if len(cells) < CellsPerExtBlob/2 {
		return noCells, noProofs, nil, badArgs(errTooFewCells)
	}
	if len(cells) > CellsPerExtBlob {
		return noCells, noProofs, nil, badArgs(errTooManyCells)
	}

	// Scatter the provided cells into the extended (cell-ordered) sample
	// vector, everything else marked absent.
	samples := make([]kzg.Sample, fieldElementsPerExtBlob)
	seen := make(map[uint64]bool, len(cellIndices))
	for i, idx := range cellIndices {
		if idx >= CellsPerExtBlob {
			return noCells, noProofs, nil, badArgs(errCellIndexRange)
		}
		if seen[idx] {
			return noCells, noProofs, nil, badArgs(errCellIndexDuplicate)
		}
		seen[idx] = true

		values, err := deserializeCell(&cells[i])
		if err != nil {
			return noCells, noProofs, nil, err
		}
		for j, v := range values {
			samples[int(idx)*FieldElementsPerCell+j] = kzg.Sample{Value: v, Present: true}
		}
	}
	missing := make([]uint64, 0, CellsPerExtBlob-len(cells))
	for idx := uint64(0); idx < CellsPerExtBlob; idx++ {
		if !seen[idx] {
			missing = append(missing, idx)
		}
	}

	// The recovery engine works in natural domain order; the cell layout
	// is the bit-reversed view of it.
	if err := utils.BitReversalPermutation(samples, uint64(len(samples))); err != nil {
		return noCells, noProofs, nil, internalError(err)
	}
	recovered, err := kzg.RecoverPolynomial(setup.ExtendedDomain, setup.ExtendedDomain.ExpandedRoots[:fieldElementsPerExtBlob], samples)
	if err != nil {
		if errors.Is(err, kzg.ErrRecoveryMismatch) {
			return noCells, noProofs, nil, internalError(err)
		}
		return noCells, noProofs, nil, badArgs(err)
	}

	coeffs, err := setup.ExtendedDomain.FFTInverse(recovered)
	if err != nil {
		return noCells, noProofs, nil, internalError(err)
	}
	// The provided cells fix the recovered polynomial; if they were not
	// all drawn from one blob's extension, its degree spills past the
	// blob half of the coefficient space. That is bad input, not a bug.
	for i := FieldElementsPerBlob; i < fieldElementsPerExtBlob; i++ {
		if !coeffs[i].IsZero() {
			return noCells, noProofs, nil, badArgs(errExtendedDegree)
		}
	}

	data := recovered
	if err := utils.BitReversalPermutation(data, uint64(len(data))); err != nil {
		return noCells, noProofs, nil, internalError(err)
	}
	proofs, err := proofsFromCoeffs(setup, coeffs[:FieldElementsPerBlob])
	if err != nil {
		return noCells, noProofs, nil, err
	}
	return cellsFromExtendedData(data), proofs, missing, nil
}

// cosetExponent returns e such that cell i's 64 evaluation points form
// the coset omega^e * <omega^128> of the extended domain: the upper
// seven bits of a position in the bit-reversed extended layout are the
// cell index, so the coset shift is omega to the bit-reverse of i.
func cosetExponent(cellIndex uint64) uint64 {
	return utils.ReverseBitsLimited(7, cellIndex)
}

// VerifyCellKZGProofBatch verifies m cells, each against its own row
// commitment, in one pooled pairing.
// commitments[i] is the commitment the i-th cell belongs to; duplicate
// commitments across rows are deduplicated internally before folding.
// Returns (true, nil) when every cell checks out, (false, nil) when the
// pooled equation fails, and (false, err) only for malformed input.
func (s *Settings) VerifyCellKZGProofBatch(commitments []Commitment, cellIndices []uint64, cells []Cell, proofs []Proof) (bool, error) {
	setup, err := s.inner()
	if err != nil {
		return false, err
	}
	if len(commitments) != len(cells) || len(cellIndices) != len(cells) || len(proofs) != len(cells) {
		return false, badArgs(errCellBatchLengths)
	}
	n := len(cells)
	if n == 0 {
		return true, nil
	}

	// Deduplicate commitments so the transcript and the folded MSM see
	// each distinct commitment once.
	uniqueCommitments := make([]Commitment, 0, n)
	rowByCommitment := make(map[Commitment]uint64, n)
	rows := make([]uint64, n)
	for i, c := range commitments {
		row, ok := rowByCommitment[c]
		if !ok {
			row = uint64(len(uniqueCommitments))
			rowByCommitment[c] = row
			uniqueCommitments = append(uniqueCommitments, c)
		}
		rows[i] = row
	}

	commitmentPoints := make([]bls12381.G1Affine, len(uniqueCommitments))
	for i, c := range uniqueCommitments {
		commitmentPoints[i], err = bytesToKZGCommitment(c)
		if err != nil {
			return false, err
		}
	}
	proofPoints := make([]bls12381.G1Affine, n)
	cellValues := make([][]fr.Element, n)
	for i := 0; i < n; i++ {
		if cellIndices[i] >= CellsPerExtBlob {
			return false, badArgs(errCellIndexRange)
		}
		proofPoints[i], err = bytesToKZGProof(proofs[i])
		if err != nil {
			return false, err
		}
		cellValues[i], err = deserializeCell(&cells[i])
		if err != nil {
			return false, err
		}
	}

	rPowers := computeCellBatchPowers(uniqueCommitments, rows, cellIndices, cells, proofs)

	cellDomain, err := kzg.NewDomain(utils.Log2(FieldElementsPerCell))
	if err != nil {
		return false, internalError(err)
	}

	// Aggregate the per-cell coset interpolation polynomials:
	// agg(X) = sum_i r_i * I_i(X), where I_i interpolates cell i on its
	// coset. I_i's coefficients are the cell-domain iFFT of the cell's
	// natural-order values, unscaled by the coset shift.
	aggCoeffs := make([]fr.Element, FieldElementsPerCell)
	weights := make([]fr.Element, n)
	extRoots := setup.ExtendedDomain.ExpandedRoots
	extInvRoots := setup.ExtendedDomain.ReverseRoots
	for i := 0; i < n; i++ {
		natural := make([]fr.Element, FieldElementsPerCell)
		copy(natural, cellValues[i])
		if err := utils.BitReversalPermutation(natural, FieldElementsPerCell); err != nil {
			return false, internalError(err)
		}
		coeffs, err := cellDomain.FFTInverse(natural)
		if err != nil {
			return false, internalError(err)
		}

		e := cosetExponent(cellIndices[i])
		hInv := extInvRoots[e]
		var shift fr.Element
		shift.SetOne()
		for j := range coeffs {
			coeffs[j].Mul(&coeffs[j], &shift)
			coeffs[j].Mul(&coeffs[j], &rPowers[i])
			aggCoeffs[j].Add(&aggCoeffs[j], &coeffs[j])
			shift.Mul(&shift, &hInv)
		}

		// w_i = r_i * h_i^64, the vanishing-polynomial constant for the
		// coset, folded into the proof term.
		weights[i].Mul(&rPowers[i], &extRoots[e*FieldElementsPerCell])
	}

	aggCommit, err := kzg.G1LincombFast(setup.G1Monomial[:FieldElementsPerCell], aggCoeffs)
	if err != nil {
		return false, internalError(err)
	}

	// Fold the per-cell equations
	//   e(proof_i, [tau^64 - h_i^64]G2) == e(C_i - [I_i(tau)]G1, G2)
	// into
	//   e(sum r_i C_i - [agg(tau)]G1 + sum w_i proof_i, G2)
	//     == e(sum r_i proof_i, [tau^64]G2).
	commitmentWeights := make([]fr.Element, len(uniqueCommitments))
	for i := 0; i < n; i++ {
		commitmentWeights[rows[i]].Add(&commitmentWeights[rows[i]], &rPowers[i])
	}
	foldedCommitments, err := kzg.G1LincombFast(commitmentPoints, commitmentWeights)
	if err != nil {
		return false, internalError(err)
	}
	foldedProofs, err := kzg.G1LincombFast(proofPoints, rPowers)
	if err != nil {
		return false, internalError(err)
	}
	weightedProofs, err := kzg.G1LincombFast(proofPoints, weights)
	if err != nil {
		return false, internalError(err)
	}

	var lhs bls12381.G1Affine
	lhs.Sub(&foldedCommitments, &aggCommit)
	lhs.Add(&lhs, &weightedProofs)

	var negFoldedProofs bls12381.G1Affine
	negFoldedProofs.Neg(&foldedProofs)

	_, _, _, g2Gen := bls12381.Generators()
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{lhs, negFoldedProofs},
		[]bls12381.G2Affine{g2Gen, setup.G2Monomial[FieldElementsPerCell]},
	)
	if err != nil {
		return false, internalError(err)
	}
	return ok, nil
}
