package kzg4844

import (
	"bufio"
	"encoding/hex"
	"errors"
	"io"
	"strconv"
	"time"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/eth2030/go-kzg-4844/internal/kzg"
	"github.com/eth2030/go-kzg-4844/pkg/log"
)

// Settings owns everything loaded by LoadTrustedSetup: the extended
// domain tables, the monomial and bit-reversal-permuted Lagrange G1
// setups, the monomial G2 setup, the FK20 extended-setup columns and
// the optional fixed-base MSM tables.
//
// A Settings is immutable after construction and safe for concurrent
// read-only use; it must outlive every call that references it. Free
// must not overlap any other call.
type Settings struct {
	setup *kzg.TrustedSetup
}

var (
	errSetupSize  = errors.New("kzg4844: trusted setup byte array has the wrong size")
	errSetupFreed = errors.New("kzg4844: settings have been freed")
)

// LoadTrustedSetup builds a Settings from three byte arrays: the monomial
// G1 setup (n1 x 48 bytes), the Lagrange G1 setup (n1 x 48 bytes, natural
// evaluation order) and the monomial G2 setup (n2 x 96 bytes), with
// n1 = FieldElementsPerBlob and n2 = 65. The precompute hint selects
// the window size of the optional fixed-base MSM tables; zero skips
// them.
//
// Every point is validated (on curve, in the prime-order subgroup), the
// Lagrange setup is bit-reversal permuted, the two G1 setups are
// cross-checked for consistency, and the FK20 columns are computed. Any
// malformed or inconsistent input fails with BadArgs.
func LoadTrustedSetup(g1MonomialBytes, g1LagrangeBytes, g2MonomialBytes []byte, precompute uint64) (*Settings, error) {
	logger := log.Module("trusted-setup")
	start := time.Now()

	if len(g1MonomialBytes) != FieldElementsPerBlob*BytesPerCommitment ||
		len(g1LagrangeBytes) != FieldElementsPerBlob*BytesPerCommitment ||
		len(g2MonomialBytes) != g2SetupSize*2*BytesPerCommitment {
		return nil, badArgs(errSetupSize)
	}

	g1Monomial := make([]bls12381.G1Affine, FieldElementsPerBlob)
	g1Lagrange := make([]bls12381.G1Affine, FieldElementsPerBlob)
	for i := 0; i < FieldElementsPerBlob; i++ {
		var err error
		g1Monomial[i], err = bytesToG1Point(g1MonomialBytes[i*BytesPerCommitment : (i+1)*BytesPerCommitment])
		if err != nil {
			return nil, badArgsf("monomial G1 point %d: %w", i, err)
		}
		g1Lagrange[i], err = bytesToG1Point(g1LagrangeBytes[i*BytesPerCommitment : (i+1)*BytesPerCommitment])
		if err != nil {
			return nil, badArgsf("lagrange G1 point %d: %w", i, err)
		}
	}
	g2Monomial := make([]bls12381.G2Affine, g2SetupSize)
	for i := 0; i < g2SetupSize; i++ {
		var err error
		g2Monomial[i], err = bytesToG2Point(g2MonomialBytes[i*2*BytesPerCommitment : (i+1)*2*BytesPerCommitment])
		if err != nil {
			return nil, badArgsf("monomial G2 point %d: %w", i, err)
		}
	}
	logger.Debug("setup points validated", "g1", FieldElementsPerBlob, "g2", g2SetupSize)

	setup, err := kzg.LoadTrustedSetup(g1Monomial, g1Lagrange, g2Monomial, FieldElementsPerCell, precompute)
	if err != nil {
		return nil, badArgs(err)
	}

	logger.Info("trusted setup loaded",
		"max_width", fieldElementsPerExtBlob,
		"precompute", precompute,
		"elapsed", time.Since(start))
	return &Settings{setup: setup}, nil
}

// LoadTrustedSetupFile parses the textual setup format from r and loads
// it: "n1 n2" followed by n1 hex tokens of 96 chars
// (monomial G1), n1 hex tokens of 96 chars (Lagrange G1) and n2 hex
// tokens of 192 chars (monomial G2). Whitespace is ignored between
// tokens; anything else fails with BadArgs.
func LoadTrustedSetupFile(r io.Reader, precompute uint64) (*Settings, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024), 1024)
	scanner.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", badArgsf("setup file: %w", err)
			}
			return "", badArgsf("setup file: unexpected end of input")
		}
		return scanner.Text(), nil
	}
	nextCount := func(want uint64) error {
		tok, err := next()
		if err != nil {
			return err
		}
		n, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return badArgsf("setup file: bad count %q", tok)
		}
		if n != want {
			return badArgsf("setup file: count %d, want %d", n, want)
		}
		return nil
	}
	nextPoints := func(count, hexLen int) ([]byte, error) {
		out := make([]byte, 0, count*hexLen/2)
		for i := 0; i < count; i++ {
			tok, err := next()
			if err != nil {
				return nil, err
			}
			if len(tok) != hexLen {
				return nil, badArgsf("setup file: token %d has length %d, want %d", i, len(tok), hexLen)
			}
			raw, err := hex.DecodeString(tok)
			if err != nil {
				return nil, badArgsf("setup file: token %d is not hex", i)
			}
			out = append(out, raw...)
		}
		return out, nil
	}

	if err := nextCount(FieldElementsPerBlob); err != nil {
		return nil, err
	}
	if err := nextCount(g2SetupSize); err != nil {
		return nil, err
	}
	g1Monomial, err := nextPoints(FieldElementsPerBlob, 2*BytesPerCommitment)
	if err != nil {
		return nil, err
	}
	g1Lagrange, err := nextPoints(FieldElementsPerBlob, 2*BytesPerCommitment)
	if err != nil {
		return nil, err
	}
	g2Monomial, err := nextPoints(g2SetupSize, 4*BytesPerCommitment)
	if err != nil {
		return nil, err
	}
	if scanner.Scan() {
		return nil, badArgsf("setup file: trailing token %q", scanner.Text())
	}

	return LoadTrustedSetup(g1Monomial, g1Lagrange, g2Monomial, precompute)
}

// Free releases the Settings' tables. Go's garbage collector reclaims the
// memory either way once the Settings is unreachable; Free exists for
// callers that keep the Settings value alive but want the setup's
// tables back early (the fixed-base MSM tables alone reach about 150 MB
// at the largest precompute window). The Settings is
// unusable afterwards: every operation fails with BadArgs.
func (s *Settings) Free() {
	s.setup = nil
}

func (s *Settings) inner() (*kzg.TrustedSetup, error) {
	if s == nil || s.setup == nil {
		return nil, badArgs(errSetupFreed)
	}
	return s.setup, nil
}
