package kzg

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/utils"
)

// ErrFK20Setup is returned when the monomial SRS passed to
// NewFK20Precompute does not have the shape FK20 requires.
var ErrFK20Setup = errors.New("kzg: fk20 precompute requires a monomial setup whose degree is a multiple of the cell size")

// FK20Columns holds the precomputed, FFT-transformed Toeplitz-matrix
// columns for batched cell-proof generation: one column per coefficient
// offset within a cell (CellSize columns), each the FFT of the
// circulant-embedded Toeplitz column of setup points slid by that offset.
type FK20Columns struct {
	CellSize     int
	GroupCount   int // n1 / CellSize
	GroupFFTSize int // 2 * GroupCount == CELLS_PER_EXT_BLOB
	Columns      [][]bls12381.G1Jac

	// fftDomain is the small domain of scale log2(GroupFFTSize), reused to
	// FFT both the precomputed columns and, at proof time, the Toeplitz
	// coefficient vectors and the intermediate h-vector.
	fftDomain *Domain
}

// NewFK20Precompute builds the FK20 column table from the monomial G1
// setup. setupG1 must have at least n1 entries
// (s^0..s^{n1-1}); n1 must be a multiple of cellSize, with at least four
// groups so the circulant embedding has room for the coefficient taps.
//
// Column offset o holds the Toeplitz column
//
//	[ s^{n1-cellSize-1-o}, s^{n1-2*cellSize-1-o}, ..., s^{cellSize-1-o}, inf ]
//
// padded with GroupCount infinities to the doubled FFT length, then
// forward-FFT'd over G1 once. The padding is what makes the circular
// convolution at proof time agree with the (linear) Toeplitz product.
func NewFK20Precompute(setupG1 []bls12381.G1Affine, n1, cellSize int) (*FK20Columns, error) {
	if cellSize <= 0 || n1 <= 0 || n1%cellSize != 0 || len(setupG1) < n1 {
		return nil, ErrFK20Setup
	}
	groupCount := n1 / cellSize
	groupFFTSize := 2 * groupCount
	if groupCount < 4 || !utils.IsPowerOfTwo(uint64(groupFFTSize)) {
		return nil, ErrFK20Setup
	}

	d, err := NewDomain(utils.Log2(uint64(groupFFTSize)))
	if err != nil {
		return nil, err
	}

	columns := make([][]bls12381.G1Jac, cellSize)
	for offset := 0; offset < cellSize; offset++ {
		vec := make([]bls12381.G1Jac, groupFFTSize)
		start := n1 - cellSize - 1 - offset
		for i := 0; i < groupCount-1; i++ {
			vec[i].FromAffine(&setupG1[start-i*cellSize])
		}
		// vec[groupCount-1] and the entire upper half stay at the zero
		// value, i.e. infinity.
		transformed, err := d.FFTG1(vec)
		if err != nil {
			return nil, err
		}
		columns[offset] = transformed
	}

	return &FK20Columns{
		CellSize:     cellSize,
		GroupCount:   groupCount,
		GroupFFTSize: groupFFTSize,
		Columns:      columns,
		fftDomain:    d,
	}, nil
}

// toeplitzCoeffsStride extracts the length-GroupFFTSize Toeplitz
// coefficient vector for one cell offset from the polynomial's monomial
// coefficients: the top coefficient first, a run of zeros, then every
// cellSize-th coefficient starting just above the first cell.
func (f *FK20Columns) toeplitzCoeffsStride(polyCoeffs []fr.Element, offset int) []fr.Element {
	out := make([]fr.Element, f.GroupFFTSize)
	n1 := f.CellSize * f.GroupCount
	out[0] = polyCoeffs[n1-1-offset]
	for i, j := f.GroupCount+2, 2*f.CellSize-offset-1; i < f.GroupFFTSize; i, j = i+1, j+f.CellSize {
		out[i] = polyCoeffs[j]
	}
	return out
}

// ComputeCellProofCommitments derives all GroupFFTSize (= CELLS_PER_EXT_BLOB)
// cell proof commitments for a degree < n1 polynomial given in monomial
// form, via the Toeplitz-matrix trick:
// per-offset Toeplitz coefficient FFTs, a pointwise accumulation against
// the precomputed columns, an inverse FFT, a zeroing "extraction" step,
// and a final forward FFT.
//
// The returned proofs are in FFT (natural evaluation) order over the
// doubled group domain; callers serving bit-reversed cell indices apply
// the bit-reversal permutation themselves.
func (f *FK20Columns) ComputeCellProofCommitments(polyCoeffs []fr.Element) ([]bls12381.G1Jac, error) {
	n1 := f.CellSize * f.GroupCount
	if len(polyCoeffs) > n1 {
		return nil, errors.New("kzg: polynomial degree exceeds fk20 setup size")
	}
	padded := polyCoeffs
	if len(padded) < n1 {
		padded = make([]fr.Element, n1)
		copy(padded, polyCoeffs)
	}

	hExtFFT := make([]bls12381.G1Jac, f.GroupFFTSize)

	for offset := 0; offset < f.CellSize; offset++ {
		coeffFFT, err := f.fftDomain.FFT(f.toeplitzCoeffsStride(padded, offset))
		if err != nil {
			return nil, err
		}

		column := f.Columns[offset]
		for idx := range hExtFFT {
			if coeffFFT[idx].IsZero() || column[idx].Z.IsZero() {
				continue
			}
			var term bls12381.G1Jac
			var scalarBig big.Int
			coeffFFT[idx].BigInt(&scalarBig)
			term.ScalarMultiplication(&column[idx], &scalarBig)
			hExtFFT[idx].AddAssign(&term)
		}
	}

	h, err := f.fftDomain.FFTInverseG1(hExtFFT)
	if err != nil {
		return nil, err
	}
	// Extraction: only the first GroupCount entries are the genuine
	// Toeplitz product; the rest is circular wrap-around and must be
	// cleared before the final FFT re-evaluates at the cell cosets.
	for i := f.GroupCount; i < f.GroupFFTSize; i++ {
		h[i] = bls12381.G1Jac{}
	}

	return f.fftDomain.FFTG1(h)
}
