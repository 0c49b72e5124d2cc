package kzg4844

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/utils"
)

// Fiat-Shamir domain separators: exactly 16 bytes of ASCII each,
// matching the consensus-layer protocol constants.
const (
	blobVerifyDomain = "FSBLOBVERIFY_V1_"
	blobBatchDomain  = "RCKZGBATCH___V1_"
	cellBatchDomain  = "RCKZGCBATCH__V1_"
)

// computeChallenge derives the per-blob evaluation challenge
// z = H(domain || blob || commitment) reduced mod the field modulus.
func computeChallenge(blob *Blob, commitment Commitment) fr.Element {
	h := sha256.New()
	h.Write([]byte(blobVerifyDomain))
	h.Write(blob[:])
	h.Write(commitment[:])
	var digest [32]byte
	h.Sum(digest[:0])
	return hashToBLSField(digest)
}

// computeBlobBatchPowers derives the random-linear-combination
// coefficients r_0..r_{n-1} for the multi-blob batch verifier: the i-th
// power of H(domain || n || commitments || blobs || proofs).
func computeBlobBatchPowers(blobs []Blob, commitments []Commitment, proofs []Proof) []fr.Element {
	h := sha256.New()
	h.Write([]byte(blobBatchDomain))
	var nbuf [8]byte
	binary.LittleEndian.PutUint64(nbuf[:], uint64(len(blobs)))
	h.Write(nbuf[:])
	for i := range commitments {
		h.Write(commitments[i][:])
	}
	for i := range blobs {
		h.Write(blobs[i][:])
	}
	for i := range proofs {
		h.Write(proofs[i][:])
	}
	var digest [32]byte
	h.Sum(digest[:0])
	r := hashToBLSField(digest)
	return utils.ComputePowers(r, uint(len(blobs)))
}

// computeCellBatchPowers derives the random-linear-combination
// coefficients for the cell batch verifier. The transcript covers every
// input: the deduplicated commitment list, each cell's row into that
// list, the cell indices, the cell data and the proofs, all in a fixed
// index order so prover and verifier derive identical coefficients.
func computeCellBatchPowers(commitments []Commitment, commitmentRows []uint64, cellIndices []uint64, cells []Cell, proofs []Proof) []fr.Element {
	h := sha256.New()
	h.Write([]byte(cellBatchDomain))
	var nbuf [8]byte
	binary.LittleEndian.PutUint64(nbuf[:], uint64(FieldElementsPerCell))
	h.Write(nbuf[:])
	binary.LittleEndian.PutUint64(nbuf[:], uint64(len(commitments)))
	h.Write(nbuf[:])
	binary.LittleEndian.PutUint64(nbuf[:], uint64(len(cells)))
	h.Write(nbuf[:])
	for i := range commitments {
		h.Write(commitments[i][:])
	}
	for i := range cells {
		binary.LittleEndian.PutUint64(nbuf[:], commitmentRows[i])
		h.Write(nbuf[:])
		binary.LittleEndian.PutUint64(nbuf[:], cellIndices[i])
		h.Write(nbuf[:])
	}
	for i := range cells {
		h.Write(cells[i][:])
	}
	for i := range proofs {
		h.Write(proofs[i][:])
	}
	var digest [32]byte
	h.Sum(digest[:0])
	r := hashToBLSField(digest)
	return utils.ComputePowers(r, uint(len(cells)))
}
