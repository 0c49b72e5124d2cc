package kzg4844

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		BadArgs:       "BadArgs",
		InternalError: "InternalError",
		MemoryError:   "MemoryError",
		Kind(42):      "Kind(42)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind.String() = %q, want %q", got, want)
		}
	}
}

func TestAsKind(t *testing.T) {
	err := badArgs(errors.New("boom"))
	kind, ok := AsKind(err)
	if !ok || kind != BadArgs {
		t.Fatalf("AsKind = (%v, %v), want (BadArgs, true)", kind, ok)
	}

	wrapped := fmt.Errorf("context: %w", internalError(errors.New("bug")))
	kind, ok = AsKind(wrapped)
	if !ok || kind != InternalError {
		t.Fatalf("AsKind through wrapping = (%v, %v), want (InternalError, true)", kind, ok)
	}

	if _, ok := AsKind(errors.New("plain")); ok {
		t.Error("plain errors must not report a Kind")
	}
}

func TestKZGErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := badArgs(inner)
	if !errors.Is(err, inner) {
		t.Error("KZGError must unwrap to its cause")
	}
}

func TestFormatting(t *testing.T) {
	var c Commitment
	c[0] = 0xc0
	if got := c.String(); len(got) != 2+2*BytesPerCommitment || got[:4] != "0xc0" {
		t.Errorf("Commitment.String() = %q", got)
	}
	var p Proof
	if got := p.GoString(); got[:len("kzg4844.Proof(")] != "kzg4844.Proof(" {
		t.Errorf("Proof.GoString() = %q", got)
	}
	var cell Cell
	if got := cell.String(); len(got) == 0 {
		t.Error("Cell.String() must not be empty")
	}
}
