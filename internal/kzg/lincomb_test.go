package kzg

import (
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// testPoints returns n distinct affine points [k_i]G with one infinity
// mixed in when n is large enough.
func testPoints(n int) []bls12381.G1Affine {
	out := make([]bls12381.G1Affine, n)
	scalars := testScalars(n)
	for i := range out {
		jac := jacFromScalar(&scalars[i])
		out[i].FromJacobian(&jac)
	}
	if n > 4 {
		out[2] = bls12381.G1Affine{} // infinity
	}
	return out
}

func TestG1LincombFastMatchesNaive(t *testing.T) {
	const n = 20
	points := testPoints(n)
	scalars := testScalars(n)
	scalars[7].SetZero()

	fast, err := G1LincombFast(points, scalars)
	if err != nil {
		t.Fatalf("G1LincombFast: %v", err)
	}
	naiveJac := g1LincombNaive(points, scalars)
	var naive bls12381.G1Affine
	naive.FromJacobian(&naiveJac)

	if !fast.Equal(&naive) {
		t.Fatal("fast and naive linear combinations disagree")
	}
}

func TestG1LincombFastBelowThreshold(t *testing.T) {
	const n = 5 // below the Pippenger threshold
	points := testPoints(n)
	scalars := testScalars(n)

	fast, err := G1LincombFast(points, scalars)
	if err != nil {
		t.Fatalf("G1LincombFast: %v", err)
	}
	naiveJac := g1LincombNaive(points, scalars)
	var naive bls12381.G1Affine
	naive.FromJacobian(&naiveJac)
	if !fast.Equal(&naive) {
		t.Fatal("short-input fallback disagrees with naive")
	}
}

func TestG1LincombFastMostlyInfinity(t *testing.T) {
	// Enough points to clear the threshold, but so many infinities that
	// the filtered list falls back to the naive path on the original
	// inputs.
	const n = 12
	points := testPoints(n)
	for i := 0; i < n; i++ {
		if i != 1 && i != 6 {
			points[i] = bls12381.G1Affine{}
		}
	}
	scalars := testScalars(n)

	fast, err := G1LincombFast(points, scalars)
	if err != nil {
		t.Fatalf("G1LincombFast: %v", err)
	}
	naiveJac := g1LincombNaive(points, scalars)
	var naive bls12381.G1Affine
	naive.FromJacobian(&naiveJac)
	if !fast.Equal(&naive) {
		t.Fatal("infinity-heavy fallback disagrees with naive")
	}
}

func TestG1LincombZeroScalars(t *testing.T) {
	const n = 16
	points := testPoints(n)
	scalars := make([]fr.Element, n)

	got, err := G1LincombFast(points, scalars)
	if err != nil {
		t.Fatalf("G1LincombFast: %v", err)
	}
	if !got.IsInfinity() {
		t.Fatal("all-zero scalars must produce the identity")
	}
}

func TestG1LincombLengthMismatch(t *testing.T) {
	if _, err := G1LincombFast(testPoints(4), testScalars(5)); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestG1LincombWithTables(t *testing.T) {
	const n = 6
	points := testPoints(n)
	scalars := testScalars(n)
	scalars[4].SetZero()

	tables := make([]FixedBaseTable, n)
	for i := range tables {
		tables[i] = newFixedBaseTable(&points[i], 4)
	}
	got, err := G1LincombWithTables(tables, scalars)
	if err != nil {
		t.Fatalf("G1LincombWithTables: %v", err)
	}
	naiveJac := g1LincombNaive(points, scalars)
	var naive bls12381.G1Affine
	naive.FromJacobian(&naiveJac)
	if !got.Equal(&naive) {
		t.Fatal("windowed-table combination disagrees with naive")
	}
}
