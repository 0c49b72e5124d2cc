package kzg

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/utils"
)

// ErrDomainTooLarge is returned when a caller asks for a domain scale
// beyond the 32 precomputed primitive roots (i.e. N > 2^31).
var ErrDomainTooLarge = errors.New("kzg: requested domain exceeds the maximum supported scale")

// maxScale is the number of precomputed primitive roots: scale2RootOfUnity
// holds a primitive 2^i-th root of unity for i in [0, maxScale).
const maxScale = 32

// primitiveRootOfUnity is a primitive 2^32-th root of unity for the
// BLS12-381 scalar field (the field has 2-adicity 32, so this is the
// largest power-of-two order available). Every entry of
// scale2RootOfUnity is derived from it by repeated squaring.
const primitiveRootOfUnity = "10238227357739495823651030575849232062558860180284477541189508159991286009131"

// scale2RootOfUnity[i] is a primitive 2^i-th root of unity in Fr, for
// i in [0, maxScale). scale2RootOfUnity[0] is always 1.
//
// The table is derived once, deterministically, from the single known
// root-of-unity constant above via repeated squaring at package load
// (see init below). The derivation is pure and has no external input,
// so the table behaves as a compile-time constant; transcribing 31
// independent field literals by hand would only add ways to get one
// wrong.
var scale2RootOfUnity [maxScale]fr.Element

func init() {
	var root fr.Element
	if _, err := root.SetString(primitiveRootOfUnity); err != nil {
		panic("kzg: invalid hard-coded root of unity: " + err.Error())
	}
	// root is a primitive 2^maxScale-th root of unity. Square it once
	// to land on the maximum table index, then repeatedly square down.
	root.Square(&root)
	scale2RootOfUnity[maxScale-1] = root
	for i := maxScale - 2; i >= 0; i-- {
		scale2RootOfUnity[i].Square(&scale2RootOfUnity[i+1])
	}
}

// Domain holds the precomputed root-of-unity tables for a cyclic
// subgroup of Fr of order 2^Scale.
type Domain struct {
	Scale       uint64 // k
	Cardinality uint64 // N = 2^k

	// ExpandedRoots[i] = omega^i for i in [0, N]; ExpandedRoots[0] ==
	// ExpandedRoots[N] == 1.
	ExpandedRoots []fr.Element

	// ReverseRoots[i] = omega^-i, same length as ExpandedRoots.
	ReverseRoots []fr.Element

	// BitReversedRoots[i] = ExpandedRoots[BRP(i)], length N.
	BitReversedRoots []fr.Element

	cardinalityInv fr.Element
}

// NewDomain builds the root-of-unity tables for a subgroup of order
// n = 2^scale. It fails if scale is not representable (scale >= maxScale).
func NewDomain(scale uint64) (*Domain, error) {
	if scale >= maxScale {
		return nil, ErrDomainTooLarge
	}
	n := uint64(1) << scale
	omega := scale2RootOfUnity[scale]

	expanded := make([]fr.Element, n+1)
	reverse := make([]fr.Element, n+1)
	expanded[0].SetOne()
	reverse[0].SetOne()
	var omegaInv fr.Element
	omegaInv.Inverse(&omega)
	for i := uint64(1); i <= n; i++ {
		expanded[i].Mul(&expanded[i-1], &omega)
		reverse[i].Mul(&reverse[i-1], &omegaInv)
	}
	// omega has order n, so both tables close back to 1. Pin the
	// endpoints exactly.
	expanded[n].SetOne()
	reverse[n].SetOne()

	brp := make([]fr.Element, n)
	copy(brp, expanded[:n])
	if err := utils.BitReversalPermutation(brp, n); err != nil {
		return nil, err
	}

	var cardinalityInv fr.Element
	cardinalityInv.SetUint64(n)
	cardinalityInv.Inverse(&cardinalityInv)

	return &Domain{
		Scale:            scale,
		Cardinality:      n,
		ExpandedRoots:    expanded,
		ReverseRoots:     reverse,
		BitReversedRoots: brp,
		cardinalityInv:   cardinalityInv,
	}, nil
}

// CardinalityInv returns N^-1, precomputed at domain construction.
func (d *Domain) CardinalityInv() fr.Element {
	return d.cardinalityInv
}
