// Package dfa implements the byte-level UTF-8 acceptor shared by every
// validator in this module.
//
// The automaton has nine states. Instead of numbering them 0..8, each state
// is represented by the bit offset of its field inside a transition row, so
// a transition is a single shift and mask:
//
//	next = State((table[b] >> cur) & Mask)
//
// Bit layout of a Row (6 bits per state, ordinal k at offset 6k):
//
//	bits  0- 5  Error    (never stored, always zero)
//	bits  6-11  Accept
//	bits 12-17  Tail1
//	bits 18-23  Tail2
//	bits 24-29  E0
//	bits 30-35  ED
//	bits 36-41  F0
//	bits 42-47  F1F3
//	bits 48-53  F4
//
// Sequence flows:
//
//	1-byte: Accept -> Accept
//	2-byte: Accept -> Tail1 -> Accept
//	3-byte: Accept -> {Tail2, E0, ED} -> Tail1 -> Accept
//	4-byte: Accept -> {F0, F1F3, F4} -> Tail2 -> Tail1 -> Accept
package dfa

import "fmt"

// State is a DFA state, encoded as its bit offset within a Row.
type State uint8

const (
	// fieldBits is the width of one state's field in a Row. It must be wide
	// enough to hold the largest state offset (F4 = 48).
	fieldBits = 6

	// Mask selects one state field after shifting.
	Mask = 1<<fieldBits - 1
)

const (
	// Error is the absorbing failure state. Its offset is zero, so any field
	// a row does not set decodes to Error.
	Error State = iota * fieldBits

	// Accept is both the start state and the "sequence complete" state.
	Accept

	// Tail1 expects exactly one more continuation byte (80-BF).
	Tail1

	// Tail2 expects exactly two more continuation bytes.
	Tail2

	// E0 follows lead byte E0; the next byte must be A0-BF (no overlongs).
	E0

	// ED follows lead byte ED; the next byte must be 80-9F (no surrogates).
	ED

	// F0 follows lead byte F0; the next byte must be 90-BF (no overlongs).
	F0

	// F1F3 follows lead bytes F1-F3; the next byte may be any of 80-BF.
	F1F3

	// F4 follows lead byte F4; the next byte must be 80-8F (<= U+10FFFF).
	F4
)

// NumStates is the number of distinct states.
const NumStates = 9

var stateNames = [NumStates]string{"Error", "Accept", "Tail1", "Tail2", "E0", "ED", "F0", "F1F3", "F4"}

// Ordinal returns the state's index in declaration order (Error is 0, F4
// is 8).
func (s State) Ordinal() int {
	return int(s) / fieldBits
}

// Valid reports whether s is one of the nine defined states.
func (s State) Valid() bool {
	return s%fieldBits == 0 && s.Ordinal() < NumStates
}

// Pending reports whether s is inside a multi-byte sequence.
func (s State) Pending() bool {
	return s != Accept && s != Error
}

// String returns the state name.
func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("UnknownState(%d)", uint8(s))
	}
	return stateNames[s.Ordinal()]
}
