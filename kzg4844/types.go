package kzg4844

// Blob is a fixed-size vector of 4096 scalar field elements, each encoded
// as 32 canonical big-endian bytes.
type Blob [BytesPerBlob]byte

// Commitment is a 48-byte compressed BLS12-381 G1 point binding a
// polynomial to its evaluations.
type Commitment [BytesPerCommitment]byte

// Proof is a 48-byte compressed BLS12-381 G1 point proving a polynomial
// evaluation (or, for cells, a batch of them via FK20).
type Proof [BytesPerProof]byte

// Cell holds FieldElementsPerCell evaluations of a blob's extended
// polynomial, each a 32-byte canonical big-endian scalar.
type Cell [BytesPerCell]byte

// Scalar is a single field element in canonical 32-byte big-endian form,
// used for evaluation points and claimed values on the proof APIs.
type Scalar [BytesPerFieldElement]byte
