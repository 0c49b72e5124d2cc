package kzg

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ErrEmptyPolynomial is returned by operations that require at least one
// coefficient or evaluation.
var ErrEmptyPolynomial = errors.New("kzg: polynomial is empty")

// ErrDivisorLeadingZero is returned by polynomial long division when the
// divisor's leading coefficient is zero (or the divisor is empty).
var ErrDivisorLeadingZero = errors.New("kzg: divisor is empty or has a zero leading coefficient")

// PolynomialEvaluate evaluates a monomial-form polynomial at z using
// Horner's method.
func PolynomialEvaluate(coeffs []fr.Element, z fr.Element) fr.Element {
	var result fr.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &z)
		result.Add(&result, &coeffs[i])
	}
	return result
}

// LongDiv divides the monomial-form polynomial dividend by divisor,
// schoolbook style. The quotient has length len(dividend)-len(divisor)+1.
// It fails when the divisor is empty or its leading coefficient is zero.
func LongDiv(dividend, divisor []fr.Element) ([]fr.Element, error) {
	if len(divisor) == 0 || divisor[len(divisor)-1].IsZero() {
		return nil, ErrDivisorLeadingZero
	}
	if len(dividend) < len(divisor) {
		return []fr.Element{}, nil
	}

	remainder := make([]fr.Element, len(dividend))
	copy(remainder, dividend)

	quotientLen := len(dividend) - len(divisor) + 1
	quotient := make([]fr.Element, quotientLen)

	var leadInv fr.Element
	leadInv.Inverse(&divisor[len(divisor)-1])

	for i := quotientLen - 1; i >= 0; i-- {
		coeff := remainder[i+len(divisor)-1]
		coeff.Mul(&coeff, &leadInv)
		quotient[i] = coeff
		if coeff.IsZero() {
			continue
		}
		for j, d := range divisor {
			var t fr.Element
			t.Mul(&coeff, &d)
			remainder[i+j].Sub(&remainder[i+j], &t)
		}
	}

	return quotient, nil
}

// DivideByLinear computes (f(X) - fa) / (X - a) for a polynomial given
// in Lagrange form: it returns the quotient's evaluations on the same
// domain, dividing pointwise by (root_i - a) with one batch inversion.
// When a is itself a domain point the quotient value there comes out
// zero; callers handle that index separately.
func DivideByLinear(domainRoots []fr.Element, values []fr.Element, fa, a fr.Element) ([]fr.Element, error) {
	if len(domainRoots) != len(values) {
		return nil, errors.New("kzg: domain/values length mismatch")
	}

	numer := make([]fr.Element, len(values))
	for i := range values {
		numer[i].Sub(&values[i], &fa)
	}

	denom := make([]fr.Element, len(domainRoots))
	for i := range domainRoots {
		denom[i].Sub(&domainRoots[i], &a)
	}
	denom = fr.BatchInvert(denom)

	out := make([]fr.Element, len(values))
	for i := range out {
		out[i].Mul(&numer[i], &denom[i])
	}
	return out, nil
}

// EvaluateOnDomainAtIndex computes the quotient's value at the special
// index m where domainRoots[m] == z, where the pointwise division
// degenerates:
//
//	q_m = sum_{i != m} (v_i - y) * (root_i / root_m) / (z - root_i)
func EvaluateOnDomainAtIndex(domainRoots, values []fr.Element, m int, y fr.Element) (fr.Element, error) {
	if len(domainRoots) != len(values) {
		return fr.Element{}, errors.New("kzg: domain/values length mismatch")
	}
	var sum fr.Element
	rootM := domainRoots[m]
	for i := range domainRoots {
		if i == m {
			continue
		}
		var numer fr.Element
		numer.Sub(&values[i], &y)

		var ratio fr.Element
		ratio.Div(&domainRoots[i], &rootM)
		numer.Mul(&numer, &ratio)

		var denom fr.Element
		denom.Sub(&rootM, &domainRoots[i])
		denom.Inverse(&denom)

		numer.Mul(&numer, &denom)
		sum.Add(&sum, &numer)
	}
	return sum, nil
}

// EvaluateLagrangePolynomial evaluates a polynomial given in Lagrange form
// on the BRP-ordered domain roots at an arbitrary point z, using the
// barycentric formula
//
//	(z^N - 1)/N * sum_i v_i * root_i / (z - root_i)
//
// If z coincides with a domain
// point the corresponding value is returned directly (and domainIndex is
// set to that position); otherwise domainIndex is -1.
func EvaluateLagrangePolynomial(domainRoots, values []fr.Element, z fr.Element) (result fr.Element, domainIndex int, err error) {
	if len(domainRoots) != len(values) {
		return fr.Element{}, -1, errors.New("kzg: domain/values length mismatch")
	}
	n := len(domainRoots)

	for i, root := range domainRoots {
		if root.Equal(&z) {
			return values[i], i, nil
		}
	}

	// (z^N - 1)
	var zPowN, one, numerator fr.Element
	zPowN.Exp(z, big.NewInt(int64(n)))
	one.SetOne()
	numerator.Sub(&zPowN, &one)

	denomTerms := make([]fr.Element, n)
	for i, root := range domainRoots {
		denomTerms[i].Sub(&z, &root)
	}
	denomTerms = fr.BatchInvert(denomTerms)

	var sum fr.Element
	for i, root := range domainRoots {
		var term fr.Element
		term.Mul(&values[i], &root)
		term.Mul(&term, &denomTerms[i])
		sum.Add(&sum, &term)
	}

	var nInv fr.Element
	nInv.SetUint64(uint64(n))
	nInv.Inverse(&nInv)

	sum.Mul(&sum, &nInv)
	sum.Mul(&sum, &numerator)

	return sum, -1, nil
}
