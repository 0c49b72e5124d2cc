// Package kzg implements the finite-field/elliptic-curve-algebra-adjacent
// internals of the library: domains, FFTs, polynomial arithmetic, the MSM
// wrapper, the zero-polynomial builder, the erasure-recovery engine, FK20
// precomputation, and the trusted-setup store. It is deliberately free of
// byte-level wire formats and Fiat-Shamir transcripts; those live in the
// public kzg4844 package, which composes this package's primitives.
package kzg

import "errors"

var errLincombLengthMismatch = errors.New("kzg: points and scalars have different lengths")
