package kzg

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// recoveryFixture builds the evaluations of a degree < n/2 polynomial on
// a size-n domain, the setting the erasure decoder is specified for.
func recoveryFixture(t *testing.T, scale uint64) (*Domain, []fr.Element) {
	t.Helper()
	d, err := NewDomain(scale)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	n := int(d.Cardinality)
	coeffs := make([]fr.Element, n)
	copy(coeffs, testScalars(n/2))
	evals, err := d.FFT(coeffs)
	if err != nil {
		t.Fatalf("FFT: %v", err)
	}
	return d, evals
}

func TestRecoverPolynomialHalfMissing(t *testing.T) {
	d, evals := recoveryFixture(t, 4)
	n := int(d.Cardinality)

	samples := make([]Sample, n)
	for i := range samples {
		present := i%2 == 0
		samples[i] = Sample{Present: present}
		if present {
			samples[i].Value = evals[i]
		}
	}

	got, err := RecoverPolynomial(d, d.ExpandedRoots[:n], samples)
	if err != nil {
		t.Fatalf("RecoverPolynomial: %v", err)
	}
	for i := range evals {
		if !got[i].Equal(&evals[i]) {
			t.Fatalf("recovered[%d] != original", i)
		}
	}
}

func TestRecoverPolynomialScatteredMissing(t *testing.T) {
	d, evals := recoveryFixture(t, 6)
	n := int(d.Cardinality)

	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{Value: evals[i], Present: true}
	}
	// Knock out a scattered quarter of the samples.
	for i := 0; i < n/4; i++ {
		samples[(i*7+3)%n].Present = false
		samples[(i*7+3)%n].Value = fr.Element{}
	}

	got, err := RecoverPolynomial(d, d.ExpandedRoots[:n], samples)
	if err != nil {
		t.Fatalf("RecoverPolynomial: %v", err)
	}
	for i := range evals {
		if !got[i].Equal(&evals[i]) {
			t.Fatalf("recovered[%d] != original", i)
		}
	}
}

func TestRecoverPolynomialNothingMissing(t *testing.T) {
	d, evals := recoveryFixture(t, 4)
	n := int(d.Cardinality)

	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{Value: evals[i], Present: true}
	}
	got, err := RecoverPolynomial(d, d.ExpandedRoots[:n], samples)
	if err != nil {
		t.Fatalf("RecoverPolynomial: %v", err)
	}
	for i := range evals {
		if !got[i].Equal(&evals[i]) {
			t.Fatalf("recovered[%d] != original", i)
		}
	}
}

func TestRecoverPolynomialTooFewSamples(t *testing.T) {
	d, evals := recoveryFixture(t, 4)
	n := int(d.Cardinality)

	samples := make([]Sample, n)
	for i := range samples {
		present := i < n/2-1 // one short of the threshold
		samples[i] = Sample{Present: present}
		if present {
			samples[i].Value = evals[i]
		}
	}
	_, err := RecoverPolynomial(d, d.ExpandedRoots[:n], samples)
	if !errors.Is(err, ErrRecoveryTooFewSamples) {
		t.Fatalf("err = %v, want ErrRecoveryTooFewSamples", err)
	}
}

func TestRecoverPolynomialLengthMismatch(t *testing.T) {
	d, _ := recoveryFixture(t, 4)
	if _, err := RecoverPolynomial(d, d.ExpandedRoots[:16], make([]Sample, 8)); err == nil {
		t.Error("expected error for sample/domain length mismatch")
	}
}
