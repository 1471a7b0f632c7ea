package dfa

import "fmt"

// Row packs, for one input byte, the next state of every current state.
// The field at bit offset s holds the state reached from s.
type Row uint64

// Transition is a single (from, to) edge used to build a Row.
type Transition struct {
	From State
	To   State
}

// NewRow packs the given transitions into a Row. States without an edge
// map to Error. Panics if an edge names an undefined state.
func NewRow(edges ...Transition) Row {
	var r Row
	for _, e := range edges {
		if !e.From.Valid() || !e.To.Valid() {
			panic(fmt.Sprintf("dfa: transition %v -> %v names an undefined state", e.From, e.To))
		}
		r |= Row(e.To) << e.From
	}
	return r
}

// Next returns the state reached from s.
func (r Row) Next(s State) State {
	//nolint:gosec // G115: masked to fieldBits, always fits in State
	return State((r >> s) & Mask)
}

// ByteClass groups the byte values that share a transition row.
type ByteClass uint8

const (
	// ClassInvalid covers C0-C1 and F5-FF, which never appear in UTF-8.
	ClassInvalid ByteClass = iota
	ClassASCII             // 00-7F
	ClassCont80            // 80-8F
	ClassCont90            // 90-9F
	ClassContA0            // A0-BF
	ClassLead2             // C2-DF
	ClassLeadE0            // E0
	ClassLead3             // E1-EC, EE-EF
	ClassLeadED            // ED
	ClassLeadF0            // F0
	ClassLead4             // F1-F3
	ClassLeadF4            // F4

	numClasses
)

var classNames = [numClasses]string{
	ClassInvalid: "invalid",
	ClassASCII:   "ascii",
	ClassCont80:  "cont 80-8F",
	ClassCont90:  "cont 90-9F",
	ClassContA0:  "cont A0-BF",
	ClassLead2:   "lead C2-DF",
	ClassLeadE0:  "lead E0",
	ClassLead3:   "lead E1-EC/EE-EF",
	ClassLeadED:  "lead ED",
	ClassLeadF0:  "lead F0",
	ClassLead4:   "lead F1-F3",
	ClassLeadF4:  "lead F4",
}

// String returns a short description of the class.
func (c ByteClass) String() string {
	if c < numClasses {
		return classNames[c]
	}
	return "unknown"
}

// Class returns the byte class of b.
func Class(b byte) ByteClass {
	switch {
	case b < 0x80:
		return ClassASCII
	case b < 0x90:
		return ClassCont80
	case b < 0xA0:
		return ClassCont90
	case b < 0xC0:
		return ClassContA0
	case b < 0xC2:
		return ClassInvalid
	case b < 0xE0:
		return ClassLead2
	case b == 0xE0:
		return ClassLeadE0
	case b == 0xED:
		return ClassLeadED
	case b < 0xF0:
		return ClassLead3
	case b == 0xF0:
		return ClassLeadF0
	case b < 0xF4:
		return ClassLead4
	case b == 0xF4:
		return ClassLeadF4
	default:
		return ClassInvalid
	}
}

// classRows holds the transition row of each byte class.
//
// Continuation rows differ only in which restricted-lead states accept them:
//
//	         Tail1   Tail2  E0     ED     F0     F1F3   F4
//	80-8F    Accept  Tail1  -      Tail1  -      Tail2  Tail2
//	90-9F    Accept  Tail1  -      Tail1  Tail2  Tail2  -
//	A0-BF    Accept  Tail1  Tail1  -      Tail2  Tail2  -
var classRows = [numClasses]Row{
	ClassInvalid: NewRow(),
	ClassASCII:   NewRow(Transition{Accept, Accept}),
	ClassCont80: NewRow(
		Transition{Tail1, Accept},
		Transition{Tail2, Tail1},
		Transition{ED, Tail1},
		Transition{F1F3, Tail2},
		Transition{F4, Tail2},
	),
	ClassCont90: NewRow(
		Transition{Tail1, Accept},
		Transition{Tail2, Tail1},
		Transition{ED, Tail1},
		Transition{F0, Tail2},
		Transition{F1F3, Tail2},
	),
	ClassContA0: NewRow(
		Transition{Tail1, Accept},
		Transition{Tail2, Tail1},
		Transition{E0, Tail1},
		Transition{F0, Tail2},
		Transition{F1F3, Tail2},
	),
	ClassLead2:  NewRow(Transition{Accept, Tail1}),
	ClassLeadE0: NewRow(Transition{Accept, E0}),
	ClassLead3:  NewRow(Transition{Accept, Tail2}),
	ClassLeadED: NewRow(Transition{Accept, ED}),
	ClassLeadF0: NewRow(Transition{Accept, F0}),
	ClassLead4:  NewRow(Transition{Accept, F1F3}),
	ClassLeadF4: NewRow(Transition{Accept, F4}),
}

// table maps every byte value to its transition row. It is filled once at
// package initialization and never written afterwards.
var table = buildTable()

func buildTable() [256]Row {
	var t [256]Row
	for b := range t {
		t[b] = classRows[Class(byte(b))]
	}
	return t
}

// Step applies the transition for byte b to state s.
func Step(s State, b byte) State {
	//nolint:gosec // G115: masked to fieldBits, always fits in State
	return State((table[b] >> s) & Mask)
}

// Run feeds every byte of p to the automaton starting at s and returns the
// final state.
func Run(s State, p []byte) State {
	for _, b := range p {
		s = Step(s, b)
	}
	return s
}
