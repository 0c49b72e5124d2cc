package kzg

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/utils"
)

// ErrFFTLength is returned when an FFT is asked to run on a length that
// either isn't a power of two or doesn't divide the domain's max width.
var ErrFFTLength = errors.New("kzg: fft length must be a power of two dividing the domain width")

// strideFor validates n against the domain and returns the twiddle
// stride Cardinality/n: a length-n transform walks the domain's root
// tables in steps of this size.
func (d *Domain) strideFor(n uint64) (uint64, error) {
	if n == 0 || !utils.IsPowerOfTwo(n) || n > d.Cardinality || d.Cardinality%n != 0 {
		return 0, ErrFFTLength
	}
	return d.Cardinality / n, nil
}

// FFT computes the forward DFT of values (length n, a power of two
// dividing the domain width) over Fr, using the domain's expanded roots
// with the appropriate stride. It does not mutate values.
func (d *Domain) FFT(values []fr.Element) ([]fr.Element, error) {
	stride, err := d.strideFor(uint64(len(values)))
	if err != nil {
		return nil, err
	}
	out := make([]fr.Element, len(values))
	copy(out, values)
	frButterflyFFT(out, d.ExpandedRoots, stride)
	return out, nil
}

// FFTInverse computes the inverse DFT of values over Fr using the
// domain's reverse roots, scaling the result by n^-1 at the end.
func (d *Domain) FFTInverse(values []fr.Element) ([]fr.Element, error) {
	n := uint64(len(values))
	stride, err := d.strideFor(n)
	if err != nil {
		return nil, err
	}
	out := make([]fr.Element, len(values))
	copy(out, values)
	frButterflyFFT(out, d.ReverseRoots, stride)

	var nInv fr.Element
	nInv.SetUint64(n)
	nInv.Inverse(&nInv)
	for i := range out {
		out[i].Mul(&out[i], &nInv)
	}
	return out, nil
}

// frButterflyFFT is the in-place iterative Cooley-Tukey radix-2 DIT
// transform shared by FFT and FFTInverse: it bit-reverses a, then
// combines butterflies bottom-up using twiddles drawn from roots with the
// given stride.
func frButterflyFFT(a []fr.Element, roots []fr.Element, stride uint64) {
	n := uint64(len(a))
	_ = utils.BitReversalPermutation(a, n)

	for size := uint64(1); size < n; size <<= 1 {
		halfSize := size
		twiddleStep := stride * (n / (size << 1))
		for start := uint64(0); start < n; start += size << 1 {
			for j := uint64(0); j < halfSize; j++ {
				w := roots[j*twiddleStep]
				var t fr.Element
				t.Mul(&a[start+j+halfSize], &w)
				a[start+j+halfSize].Sub(&a[start+j], &t)
				a[start+j].Add(&a[start+j], &t)
			}
		}
	}
}

// FFTG1 computes the forward DFT of values (length n dividing the domain
// width) over G1, following the same twiddle schedule as FFT.
//
// When a butterfly operand is the point at infinity the twiddle
// multiplication is skipped, and when the twiddle itself is 1 the
// multiplication is skipped but the add/sub still runs. This matters
// because FK20's column extension produces G1 vectors that are mostly
// infinity.
func (d *Domain) FFTG1(values []bls12381.G1Jac) ([]bls12381.G1Jac, error) {
	stride, err := d.strideFor(uint64(len(values)))
	if err != nil {
		return nil, err
	}
	out := make([]bls12381.G1Jac, len(values))
	copy(out, values)
	g1ButterflyFFT(out, d.ExpandedRoots, stride)
	return out, nil
}

// FFTInverseG1 computes the inverse DFT of values over G1.
func (d *Domain) FFTInverseG1(values []bls12381.G1Jac) ([]bls12381.G1Jac, error) {
	n := uint64(len(values))
	stride, err := d.strideFor(n)
	if err != nil {
		return nil, err
	}
	out := make([]bls12381.G1Jac, len(values))
	copy(out, values)
	g1ButterflyFFT(out, d.ReverseRoots, stride)

	var nInv fr.Element
	nInv.SetUint64(n)
	nInv.Inverse(&nInv)
	var nInvBig big.Int
	nInv.BigInt(&nInvBig)
	for i := range out {
		out[i].ScalarMultiplication(&out[i], &nInvBig)
	}
	return out, nil
}

func g1ButterflyFFT(a []bls12381.G1Jac, roots []fr.Element, stride uint64) {
	n := uint64(len(a))
	_ = utils.BitReversalPermutation(a, n)

	one := fr.One()
	for size := uint64(1); size < n; size <<= 1 {
		halfSize := size
		twiddleStep := stride * (n / (size << 1))
		for start := uint64(0); start < n; start += size << 1 {
			for j := uint64(0); j < halfSize; j++ {
				w := roots[j*twiddleStep]
				hi := start + j + halfSize
				lo := start + j

				var t bls12381.G1Jac
				switch {
				case a[hi].Z.IsZero():
					// a[hi] is infinity: twiddle multiplication is a no-op.
					t.Set(&a[hi])
				case w.Equal(&one):
					t.Set(&a[hi])
				default:
					var wBig big.Int
					w.BigInt(&wBig)
					t.ScalarMultiplication(&a[hi], &wBig)
				}
				var sum, diff bls12381.G1Jac
				sum.Set(&a[lo])
				sum.AddAssign(&t)
				diff.Set(&a[lo])
				diff.SubAssign(&t)
				a[lo] = sum
				a[hi] = diff
			}
		}
	}
}
