package kzg4844

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/kzg"
)

// EIP-4844 blob API. A blob's 4096 scalars are
// the polynomial's evaluations on the bit-reversal-permuted blob domain,
// so commitment is a single MSM against the BRP Lagrange setup, and
// opening works directly in evaluation form.

var errBatchLengthMismatch = errors.New("kzg4844: blobs, commitments and proofs must have the same length")

// BlobToKZGCommitment commits to a blob: C = sum(v_i * L_i) over the
// bit-reversal-permuted Lagrange setup.
func (s *Settings) BlobToKZGCommitment(blob *Blob) (Commitment, error) {
	setup, err := s.inner()
	if err != nil {
		return Commitment{}, err
	}
	values, err := deserializeBlob(blob)
	if err != nil {
		return Commitment{}, err
	}
	point, err := setup.LagrangeLincomb(values)
	if err != nil {
		return Commitment{}, internalError(err)
	}
	return Commitment(bytesFromG1Point(&point)), nil
}

// ComputeKZGProof opens a blob's polynomial at an arbitrary point z,
// returning the proof and the claimed evaluation y = P(z).
func (s *Settings) ComputeKZGProof(blob *Blob, zBytes Scalar) (Proof, Scalar, error) {
	setup, err := s.inner()
	if err != nil {
		return Proof{}, Scalar{}, err
	}
	values, err := deserializeBlob(blob)
	if err != nil {
		return Proof{}, Scalar{}, err
	}
	z, err := bytesToBLSField(zBytes)
	if err != nil {
		return Proof{}, Scalar{}, err
	}

	proof, y, err := computeKZGProofInner(setup, values, z)
	if err != nil {
		return Proof{}, Scalar{}, err
	}
	return proof, bytesFromBLSField(y), nil
}

// computeKZGProofInner is the shared opening core for ComputeKZGProof and
// ComputeBlobKZGProof, operating on already-decoded values.
func computeKZGProofInner(setup *kzg.TrustedSetup, values []fr.Element, z fr.Element) (Proof, fr.Element, error) {
	roots := setup.LagrangeEvaluationBasis()

	y, domainIndex, err := kzg.EvaluateLagrangePolynomial(roots, values, z)
	if err != nil {
		return Proof{}, fr.Element{}, internalError(err)
	}

	// Quotient in evaluation form: (v_i - y)/(root_i - z) everywhere the
	// denominator is nonzero. BatchInvert leaves the zero denominator at
	// the special index zero, so the q_m fixup below overwrites a zero.
	quotient, err := kzg.DivideByLinear(roots, values, y, z)
	if err != nil {
		return Proof{}, fr.Element{}, internalError(err)
	}
	if domainIndex >= 0 {
		qm, err := kzg.EvaluateOnDomainAtIndex(roots, values, domainIndex, y)
		if err != nil {
			return Proof{}, fr.Element{}, internalError(err)
		}
		quotient[domainIndex] = qm
	}

	point, err := setup.LagrangeLincomb(quotient)
	if err != nil {
		return Proof{}, fr.Element{}, internalError(err)
	}
	return Proof(bytesFromG1Point(&point)), y, nil
}

// VerifyKZGProof checks the pairing equation
//
//	e(C - [y]G1, G2) == e(proof, [tau]G2 - [z]G2)
//
// returning (true, nil) for a valid proof, (false, nil) for an invalid
// one, and (false, err) only when an input fails to decode.
func (s *Settings) VerifyKZGProof(commitment Commitment, zBytes, yBytes Scalar, proofBytes Proof) (bool, error) {
	setup, err := s.inner()
	if err != nil {
		return false, err
	}
	c, err := bytesToKZGCommitment(commitment)
	if err != nil {
		return false, err
	}
	z, err := bytesToBLSField(zBytes)
	if err != nil {
		return false, err
	}
	y, err := bytesToBLSField(yBytes)
	if err != nil {
		return false, err
	}
	proof, err := bytesToKZGProof(proofBytes)
	if err != nil {
		return false, err
	}
	return verifyKZGProofInner(setup, c, z, y, proof)
}

func verifyKZGProofInner(setup *kzg.TrustedSetup, c bls12381.G1Affine, z, y fr.Element, proof bls12381.G1Affine) (bool, error) {
	_, _, g1Gen, g2Gen := bls12381.Generators()

	// [y]G1, then C - [y]G1.
	var yBig big.Int
	y.BigInt(&yBig)
	var yG1, cMinusY bls12381.G1Affine
	yG1.ScalarMultiplication(&g1Gen, &yBig)
	cMinusY.Sub(&c, &yG1)

	// [z]G2, then [tau]G2 - [z]G2.
	var zBig big.Int
	z.BigInt(&zBig)
	var zG2, tauMinusZ bls12381.G2Affine
	zG2.ScalarMultiplication(&g2Gen, &zBig)
	tauMinusZ.Sub(&setup.G2Monomial[1], &zG2)

	// e(C - [y]G1, G2) * e(-proof, [tau - z]G2) == 1
	var negProof bls12381.G1Affine
	negProof.Neg(&proof)
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{cMinusY, negProof},
		[]bls12381.G2Affine{g2Gen, tauMinusZ},
	)
	if err != nil {
		return false, internalError(err)
	}
	return ok, nil
}

// ComputeBlobKZGProof derives the Fiat-Shamir evaluation challenge from
// the blob and its commitment, then opens the blob at it. The commitment
// bytes are validated but trusted to match the blob; a mismatched
// commitment simply produces a proof that will not verify.
func (s *Settings) ComputeBlobKZGProof(blob *Blob, commitment Commitment) (Proof, error) {
	setup, err := s.inner()
	if err != nil {
		return Proof{}, err
	}
	values, err := deserializeBlob(blob)
	if err != nil {
		return Proof{}, err
	}
	if _, err := bytesToKZGCommitment(commitment); err != nil {
		return Proof{}, err
	}

	z := computeChallenge(blob, commitment)
	proof, _, err := computeKZGProofInner(setup, values, z)
	return proof, err
}

// VerifyBlobKZGProof re-derives the Fiat-Shamir challenge, evaluates the
// blob at it and runs the single-proof pairing check.
func (s *Settings) VerifyBlobKZGProof(blob *Blob, commitment Commitment, proofBytes Proof) (bool, error) {
	setup, err := s.inner()
	if err != nil {
		return false, err
	}
	values, err := deserializeBlob(blob)
	if err != nil {
		return false, err
	}
	c, err := bytesToKZGCommitment(commitment)
	if err != nil {
		return false, err
	}
	proof, err := bytesToKZGProof(proofBytes)
	if err != nil {
		return false, err
	}

	z := computeChallenge(blob, commitment)
	y, _, err := kzg.EvaluateLagrangePolynomial(setup.LagrangeEvaluationBasis(), values, z)
	if err != nil {
		return false, internalError(err)
	}
	return verifyKZGProofInner(setup, c, z, y, proof)
}

// VerifyBlobKZGProofBatch verifies n (blob, commitment, proof) triples
// with a single pooled pairing via the standard random-linear-combination
// reduction. n = 0 verifies trivially; n = 1 delegates to the single
// verifier.
func (s *Settings) VerifyBlobKZGProofBatch(blobs []Blob, commitments []Commitment, proofs []Proof) (bool, error) {
	setup, err := s.inner()
	if err != nil {
		return false, err
	}
	if len(blobs) != len(commitments) || len(blobs) != len(proofs) {
		return false, badArgs(errBatchLengthMismatch)
	}
	n := len(blobs)
	if n == 0 {
		return true, nil
	}
	if n == 1 {
		return s.VerifyBlobKZGProof(&blobs[0], commitments[0], proofs[0])
	}

	// Decode and validate everything before any pairing work, so that a
	// malformed input in any slot yields BadArgs rather than ok=false.
	commitmentPoints := make([]bls12381.G1Affine, n)
	proofPoints := make([]bls12381.G1Affine, n)
	zs := make([]fr.Element, n)
	ys := make([]fr.Element, n)
	roots := setup.LagrangeEvaluationBasis()
	for i := 0; i < n; i++ {
		values, err := deserializeBlob(&blobs[i])
		if err != nil {
			return false, err
		}
		commitmentPoints[i], err = bytesToKZGCommitment(commitments[i])
		if err != nil {
			return false, err
		}
		proofPoints[i], err = bytesToKZGProof(proofs[i])
		if err != nil {
			return false, err
		}
		zs[i] = computeChallenge(&blobs[i], commitments[i])
		ys[i], _, err = kzg.EvaluateLagrangePolynomial(roots, values, zs[i])
		if err != nil {
			return false, internalError(err)
		}
	}

	rPowers := computeBlobBatchPowers(blobs, commitments, proofs)

	// Fold the per-blob pairing equations into one:
	//   e(sum r_i (C_i - [y_i]G1 + z_i proof_i), G2)
	//     == e(sum r_i proof_i, [tau]G2)
	foldedProofs, err := kzg.G1LincombFast(proofPoints, rPowers)
	if err != nil {
		return false, internalError(err)
	}
	foldedCommitments, err := kzg.G1LincombFast(commitmentPoints, rPowers)
	if err != nil {
		return false, internalError(err)
	}

	var foldedY fr.Element
	rTimesZ := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var t fr.Element
		t.Mul(&rPowers[i], &ys[i])
		foldedY.Add(&foldedY, &t)
		rTimesZ[i].Mul(&rPowers[i], &zs[i])
	}
	foldedZProofs, err := kzg.G1LincombFast(proofPoints, rTimesZ)
	if err != nil {
		return false, internalError(err)
	}

	_, _, g1Gen, g2Gen := bls12381.Generators()
	var foldedYBig big.Int
	foldedY.BigInt(&foldedYBig)
	var foldedYG1 bls12381.G1Affine
	foldedYG1.ScalarMultiplication(&g1Gen, &foldedYBig)

	var lhs bls12381.G1Affine
	lhs.Sub(&foldedCommitments, &foldedYG1)
	lhs.Add(&lhs, &foldedZProofs)

	var negFoldedProofs bls12381.G1Affine
	negFoldedProofs.Neg(&foldedProofs)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{lhs, negFoldedProofs},
		[]bls12381.G2Affine{g2Gen, setup.G2Monomial[1]},
	)
	if err != nil {
		return false, internalError(err)
	}
	return ok, nil
}
