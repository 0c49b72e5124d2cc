package kzg

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func TestPolynomialEvaluate(t *testing.T) {
	// f(x) = 3 + 2x + x^3, f(2) = 3 + 4 + 8 = 15.
	coeffs := make([]fr.Element, 4)
	coeffs[0].SetUint64(3)
	coeffs[1].SetUint64(2)
	coeffs[3].SetUint64(1)

	var z, want fr.Element
	z.SetUint64(2)
	want.SetUint64(15)

	got := PolynomialEvaluate(coeffs, z)
	if !got.Equal(&want) {
		t.Fatalf("f(2) = %s, want 15", got.String())
	}

	if !PolynomialEvaluate(nil, z).IsZero() {
		t.Error("empty polynomial must evaluate to zero")
	}
}

// mulSchoolbook multiplies two monomial-form polynomials directly.
func mulSchoolbook(a, b []fr.Element) []fr.Element {
	out := make([]fr.Element, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			var t fr.Element
			t.Mul(&a[i], &b[j])
			out[i+j].Add(&out[i+j], &t)
		}
	}
	return out
}

func TestLongDiv(t *testing.T) {
	// Build dividend = divisor * quotient, then divide back.
	divisor := testScalars(5)
	quotient := testScalars(9)[3:] // length 6
	dividend := mulSchoolbook(divisor, quotient)

	got, err := LongDiv(dividend, divisor)
	if err != nil {
		t.Fatalf("LongDiv: %v", err)
	}
	if len(got) != len(dividend)-len(divisor)+1 {
		t.Fatalf("quotient length = %d, want %d", len(got), len(dividend)-len(divisor)+1)
	}
	for i := range quotient {
		if !got[i].Equal(&quotient[i]) {
			t.Fatalf("quotient[%d] mismatch", i)
		}
	}
}

func TestLongDivShortDividend(t *testing.T) {
	got, err := LongDiv(testScalars(2), testScalars(5))
	if err != nil {
		t.Fatalf("LongDiv: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("quotient length = %d, want 0", len(got))
	}
}

func TestLongDivBadDivisor(t *testing.T) {
	if _, err := LongDiv(testScalars(4), nil); err == nil {
		t.Error("expected error for empty divisor")
	}
	divisor := testScalars(3)
	divisor[2].SetZero()
	if _, err := LongDiv(testScalars(4), divisor); err == nil {
		t.Error("expected error for zero leading coefficient")
	}
}

func TestEvaluateLagrangePolynomial(t *testing.T) {
	d, err := NewDomain(4)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	coeffs := testScalars(16)
	values := make([]fr.Element, 16)
	for i := range values {
		values[i] = PolynomialEvaluate(coeffs, d.BitReversedRoots[i])
	}

	var z fr.Element
	z.SetUint64(98765)
	got, idx, err := EvaluateLagrangePolynomial(d.BitReversedRoots, values, z)
	if err != nil {
		t.Fatalf("EvaluateLagrangePolynomial: %v", err)
	}
	if idx != -1 {
		t.Fatalf("domain index = %d, want -1 for an off-domain point", idx)
	}
	want := PolynomialEvaluate(coeffs, z)
	if !got.Equal(&want) {
		t.Fatal("barycentric evaluation disagrees with Horner")
	}
}

func TestEvaluateLagrangePolynomialOnDomain(t *testing.T) {
	d, err := NewDomain(4)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	values := testScalars(16)

	got, idx, err := EvaluateLagrangePolynomial(d.BitReversedRoots, values, d.BitReversedRoots[5])
	if err != nil {
		t.Fatalf("EvaluateLagrangePolynomial: %v", err)
	}
	if idx != 5 {
		t.Fatalf("domain index = %d, want 5", idx)
	}
	if !got.Equal(&values[5]) {
		t.Fatal("evaluation at a domain point must return the stored value")
	}
}

func TestDivideByLinear(t *testing.T) {
	d, err := NewDomain(4)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	coeffs := testScalars(16)
	values := make([]fr.Element, 16)
	for i := range values {
		values[i] = PolynomialEvaluate(coeffs, d.BitReversedRoots[i])
	}

	var a fr.Element
	a.SetUint64(424242)
	fa := PolynomialEvaluate(coeffs, a)

	got, err := DivideByLinear(d.BitReversedRoots, values, fa, a)
	if err != nil {
		t.Fatalf("DivideByLinear: %v", err)
	}

	// Independently compute q = (f - fa) / (x - a) in monomial form and
	// compare its evaluations on the domain.
	numer := make([]fr.Element, 16)
	copy(numer, coeffs)
	numer[0].Sub(&numer[0], &fa)
	divisor := make([]fr.Element, 2)
	divisor[0].Neg(&a)
	divisor[1].SetOne()
	quotient, err := LongDiv(numer, divisor)
	if err != nil {
		t.Fatalf("LongDiv: %v", err)
	}
	for i := range got {
		want := PolynomialEvaluate(quotient, d.BitReversedRoots[i])
		if !got[i].Equal(&want) {
			t.Fatalf("quotient evaluation %d disagrees with long division", i)
		}
	}
}

func TestEvaluateOnDomainAtIndex(t *testing.T) {
	// When z is a domain point, the quotient's value at that point is
	// q(z) for q = (f - f(z))/(x - z); cross-check against long division.
	d, err := NewDomain(3)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	coeffs := testScalars(8)
	values := make([]fr.Element, 8)
	for i := range values {
		values[i] = PolynomialEvaluate(coeffs, d.BitReversedRoots[i])
	}

	const m = 3
	z := d.BitReversedRoots[m]
	y := values[m]

	got, err := EvaluateOnDomainAtIndex(d.BitReversedRoots, values, m, y)
	if err != nil {
		t.Fatalf("EvaluateOnDomainAtIndex: %v", err)
	}

	numer := make([]fr.Element, 8)
	copy(numer, coeffs)
	numer[0].Sub(&numer[0], &y)
	divisor := make([]fr.Element, 2)
	divisor[0].Neg(&z)
	divisor[1].SetOne()
	quotient, err := LongDiv(numer, divisor)
	if err != nil {
		t.Fatalf("LongDiv: %v", err)
	}
	want := PolynomialEvaluate(quotient, z)
	if !got.Equal(&want) {
		t.Fatal("special-index quotient value disagrees with long division")
	}
}
