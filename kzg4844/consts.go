// Package kzg4844 implements the public API of a KZG polynomial
// commitment library over BLS12-381: the EIP-4844 blob commitment/proof
// surface and the EIP-7594 cell data-availability surface. It composes
// the field/curve algebra of github.com/consensys/gnark-crypto with the
// domain, FFT, polynomial, MSM, zero-polynomial, recovery and FK20
// engines in internal/kzg.
package kzg4844

// Wire-format and domain constants of the EIP-4844 and EIP-7594
// commitment schemes.
const (
	// FieldElementsPerBlob is the number of scalar field elements encoded
	// in a blob.
	FieldElementsPerBlob = 4096
	// BytesPerFieldElement is the canonical big-endian encoding width of
	// a scalar field element.
	BytesPerFieldElement = 32
	// BytesPerBlob is the total byte size of a blob.
	BytesPerBlob = FieldElementsPerBlob * BytesPerFieldElement
	// BytesPerCommitment is the compressed G1 encoding width of a
	// KZGCommitment.
	BytesPerCommitment = 48
	// BytesPerProof is the compressed G1 encoding width of a KZGProof.
	BytesPerProof = 48
	// FieldElementsPerCell is the number of scalar field elements in a
	// single cell.
	FieldElementsPerCell = 64
	// BytesPerCell is the byte size of a single cell.
	BytesPerCell = FieldElementsPerCell * BytesPerFieldElement
	// CellsPerExtBlob is the number of cells a blob is split into once
	// extended by a factor of two.
	CellsPerExtBlob = 2 * FieldElementsPerBlob / FieldElementsPerCell
	// BitsPerFieldElement is the bit width of the BLS12-381 scalar field
	// modulus. The MSM wrapper does not read it: gnark-crypto's MultiExp
	// runs with its default configuration.
	BitsPerFieldElement = 255

	// fieldElementsPerExtBlob is the extended (2x) evaluation domain
	// size used throughout the cell API.
	fieldElementsPerExtBlob = 2 * FieldElementsPerBlob

	// g2SetupSize is n2, the number of G2 monomial setup points. Blob
	// verification uses [tau^1]G2 and the cell batch verifier uses
	// [tau^64]G2, so the ceremony's 65 G2 points are carried in full.
	g2SetupSize = 65
)
