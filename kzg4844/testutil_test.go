package kzg4844

import (
	"math/big"
	"sync"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/eth2030/go-kzg-4844/internal/kzg"
	"github.com/eth2030/go-kzg-4844/internal/utils"
)

// The tests run against a deterministic insecure setup derived from a
// known secret: s^i in G1 and G2 directly, and the Lagrange points via
// the closed form l_i(s) = omega^i (s^N - 1) / (N (s - omega^i)), which
// doubles as an independent check of the loader's iFFT consistency
// validation.

var (
	testSetupOnce  sync.Once
	testSetupBytes struct {
		g1Monomial []byte
		g1Lagrange []byte
		g2Monomial []byte
	}
	testSettings    *Settings
	testSettingsErr error
)

func testSecret() fr.Element {
	var tau fr.Element
	tau.SetUint64(1_927_409_816)
	tau.Square(&tau)
	return tau
}

func buildTestSetupBytes() {
	tau := testSecret()
	_, _, g1Gen, g2Gen := bls12381.Generators()

	powers := make([]fr.Element, FieldElementsPerBlob)
	powers[0].SetOne()
	for i := 1; i < FieldElementsPerBlob; i++ {
		powers[i].Mul(&powers[i-1], &tau)
	}
	monomial := bls12381.BatchScalarMultiplicationG1(&g1Gen, powers)

	// tau^N - 1, with N the blob domain size.
	var tauPowN fr.Element
	tauPowN.Mul(&powers[FieldElementsPerBlob-1], &tau)
	one := fr.One()
	var zNumer fr.Element
	zNumer.Sub(&tauPowN, &one)

	var nInv fr.Element
	nInv.SetUint64(FieldElementsPerBlob)
	nInv.Inverse(&nInv)

	blobDomain, err := kzg.NewDomain(utils.Log2(FieldElementsPerBlob))
	if err != nil {
		panic(err)
	}
	denoms := make([]fr.Element, FieldElementsPerBlob)
	for i := range denoms {
		denoms[i].Sub(&tau, &blobDomain.ExpandedRoots[i])
	}
	denoms = fr.BatchInvert(denoms)

	lagScalars := make([]fr.Element, FieldElementsPerBlob)
	for i := range lagScalars {
		lagScalars[i].Mul(&blobDomain.ExpandedRoots[i], &zNumer)
		lagScalars[i].Mul(&lagScalars[i], &nInv)
		lagScalars[i].Mul(&lagScalars[i], &denoms[i])
	}
	lagrange := bls12381.BatchScalarMultiplicationG1(&g1Gen, lagScalars)

	testSetupBytes.g1Monomial = make([]byte, 0, FieldElementsPerBlob*BytesPerCommitment)
	testSetupBytes.g1Lagrange = make([]byte, 0, FieldElementsPerBlob*BytesPerCommitment)
	for i := 0; i < FieldElementsPerBlob; i++ {
		m := monomial[i].Bytes()
		l := lagrange[i].Bytes()
		testSetupBytes.g1Monomial = append(testSetupBytes.g1Monomial, m[:]...)
		testSetupBytes.g1Lagrange = append(testSetupBytes.g1Lagrange, l[:]...)
	}

	testSetupBytes.g2Monomial = make([]byte, 0, g2SetupSize*2*BytesPerCommitment)
	var acc fr.Element
	acc.SetOne()
	for i := 0; i < g2SetupSize; i++ {
		var accBig big.Int
		acc.BigInt(&accBig)
		var p bls12381.G2Affine
		p.ScalarMultiplication(&g2Gen, &accBig)
		b := p.Bytes()
		testSetupBytes.g2Monomial = append(testSetupBytes.g2Monomial, b[:]...)
		acc.Mul(&acc, &tau)
	}
}

// testSetup returns the shared Settings, building and loading the
// insecure setup on first use.
func testSetup(t *testing.T) *Settings {
	t.Helper()
	if testing.Short() {
		t.Skip("trusted-setup construction is too slow for -short")
	}
	testSetupOnce.Do(func() {
		buildTestSetupBytes()
		testSettings, testSettingsErr = LoadTrustedSetup(
			testSetupBytes.g1Monomial, testSetupBytes.g1Lagrange, testSetupBytes.g2Monomial, 0)
	})
	if testSettingsErr != nil {
		t.Fatalf("LoadTrustedSetup: %v", testSettingsErr)
	}
	return testSettings
}

// randBlob fills a blob with deterministic valid field elements seeded
// by seed. Every element is reduced mod the modulus, so the blob always
// decodes.
func randBlob(seed uint64) *Blob {
	var blob Blob
	var e fr.Element
	for i := 0; i < FieldElementsPerBlob; i++ {
		e.SetUint64(seed*0x9e3779b97f4a7c15 + uint64(i))
		e.Square(&e)
		b := e.Bytes()
		copy(blob[i*BytesPerFieldElement:], b[:])
	}
	return &blob
}

// requireKind fails the test unless err carries the wanted Kind.
func requireKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, got nil", want)
	}
	kind, ok := AsKind(err)
	if !ok {
		t.Fatalf("error %v does not carry a Kind", err)
	}
	if kind != want {
		t.Fatalf("error kind = %s, want %s", kind, want)
	}
}
