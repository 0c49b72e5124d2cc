package utils

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func TestComputePowers(t *testing.T) {
	var x fr.Element
	x.SetUint64(3)

	powers := ComputePowers(x, 5)
	if len(powers) != 5 {
		t.Fatalf("len = %d, want 5", len(powers))
	}
	var want fr.Element
	want.SetOne()
	for i := range powers {
		if !powers[i].Equal(&want) {
			t.Errorf("powers[%d] = %s, want %s", i, powers[i].String(), want.String())
		}
		want.Mul(&want, &x)
	}
}

func TestComputePowersEmpty(t *testing.T) {
	var x fr.Element
	x.SetUint64(7)
	if got := ComputePowers(x, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
