package kzg4844

import "fmt"

// String renders a Commitment as a 0x-prefixed hex string, for log lines
// and test failure messages.
func (c Commitment) String() string { return fmt.Sprintf("0x%x", c[:]) }

// GoString renders a Commitment as a Go literal, for %#v formatting.
func (c Commitment) GoString() string { return fmt.Sprintf("kzg4844.Commitment(0x%x)", c[:]) }

// String renders a Proof as a 0x-prefixed hex string.
func (p Proof) String() string { return fmt.Sprintf("0x%x", p[:]) }

// GoString renders a Proof as a Go literal, for %#v formatting.
func (p Proof) GoString() string { return fmt.Sprintf("kzg4844.Proof(0x%x)", p[:]) }

// String renders a Cell's first and last few bytes as hex; cells are too
// large to print in full in a test failure message.
func (c Cell) String() string {
	return fmt.Sprintf("0x%x...%x", c[:8], c[len(c)-8:])
}

// GoString renders a Cell the same way as String.
func (c Cell) GoString() string { return fmt.Sprintf("kzg4844.Cell(%s)", c.String()) }
