package kzg4844

import (
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Byte/field codecs. Everything here is a thin, validating layer over
// gnark-crypto's canonical big-endian scalar codec and ZCash-standard
// compressed point codec; the point at infinity (0xc0 followed by 47
// zero bytes) is a valid commitment and proof.

var (
	errScalarNotCanonical = errors.New("kzg4844: scalar is not canonical (>= field modulus)")
	errInvalidG1Point     = errors.New("kzg4844: invalid compressed G1 point")
	errInvalidG2Point     = errors.New("kzg4844: invalid compressed G2 point")
)

// bytesToBLSField decodes 32 big-endian bytes into a field element,
// failing when the integer is >= the field modulus.
func bytesToBLSField(b Scalar) (fr.Element, error) {
	var e fr.Element
	if err := e.SetBytesCanonical(b[:]); err != nil {
		return fr.Element{}, badArgs(errScalarNotCanonical)
	}
	return e, nil
}

// hashToBLSField reads 32 big-endian bytes and reduces them mod the field
// modulus. It never fails; it is used for Fiat-Shamir challenges only,
// where the bias from reduction is negligible.
func hashToBLSField(b [32]byte) fr.Element {
	var e fr.Element
	e.SetBytes(b[:])
	return e
}

// bytesFromBLSField is the canonical inverse of bytesToBLSField.
func bytesFromBLSField(e fr.Element) Scalar {
	return e.Bytes()
}

// bytesToG1Point decompresses 48 bytes into a G1 point, accepting only
// points on the curve and in the prime-order subgroup (the canonical
// infinity encoding included).
func bytesToG1Point(b []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return bls12381.G1Affine{}, badArgs(errInvalidG1Point)
	}
	return p, nil
}

// bytesToKZGCommitment decodes a 48-byte commitment.
func bytesToKZGCommitment(c Commitment) (bls12381.G1Affine, error) {
	return bytesToG1Point(c[:])
}

// bytesToKZGProof decodes a 48-byte proof.
func bytesToKZGProof(p Proof) (bls12381.G1Affine, error) {
	return bytesToG1Point(p[:])
}

// bytesToG2Point decompresses 96 bytes into a G2 point with the same
// validation as bytesToG1Point. Only the trusted-setup loader consumes
// G2 points.
func bytesToG2Point(b []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if _, err := p.SetBytes(b); err != nil {
		return bls12381.G2Affine{}, badArgs(errInvalidG2Point)
	}
	return p, nil
}

// bytesFromG1Point is the canonical inverse of bytesToG1Point.
func bytesFromG1Point(p *bls12381.G1Affine) [BytesPerCommitment]byte {
	return p.Bytes()
}

// deserializeBlob decodes a blob into its FieldElementsPerBlob scalars,
// kept in the blob's own bit-reversed Lagrange order. Any chunk >= the
// field modulus fails the whole blob.
func deserializeBlob(blob *Blob) ([]fr.Element, error) {
	out := make([]fr.Element, FieldElementsPerBlob)
	for i := 0; i < FieldElementsPerBlob; i++ {
		chunk := blob[i*BytesPerFieldElement : (i+1)*BytesPerFieldElement]
		if err := out[i].SetBytesCanonical(chunk); err != nil {
			return nil, badArgs(errScalarNotCanonical)
		}
	}
	return out, nil
}

// deserializeCell decodes a cell into its FieldElementsPerCell scalars.
func deserializeCell(cell *Cell) ([]fr.Element, error) {
	out := make([]fr.Element, FieldElementsPerCell)
	for i := 0; i < FieldElementsPerCell; i++ {
		chunk := cell[i*BytesPerFieldElement : (i+1)*BytesPerFieldElement]
		if err := out[i].SetBytesCanonical(chunk); err != nil {
			return nil, badArgs(errScalarNotCanonical)
		}
	}
	return out, nil
}

// serializeCell is the canonical inverse of deserializeCell.
func serializeCell(values []fr.Element) Cell {
	var cell Cell
	for i := range values {
		b := values[i].Bytes()
		copy(cell[i*BytesPerFieldElement:], b[:])
	}
	return cell
}
