package utf8valid

import "github.com/coregx/utf8valid/dfa"

// Stream validates UTF-8 delivered in chunks of any size.
//
// A Stream holds only the automaton state between calls. Create it with
// NewStream, or call Init on a zero Stream before first use. A Stream must
// not be used from multiple goroutines without external synchronization.
type Stream struct {
	state dfa.State
}

// NewStream returns a Stream ready to validate from the start of a stream.
func NewStream() *Stream {
	return &Stream{state: dfa.Accept}
}

// Init resets the stream to the start state.
func (s *Stream) Init() {
	s.state = dfa.Accept
}

// Reset is an alias for Init.
func (s *Stream) Reset() {
	s.Init()
}

// State returns the current automaton state.
func (s *Stream) State() dfa.State {
	return s.state
}

// Pending reports whether the stream is inside a multi-byte sequence, i.e.
// whether the last chunk ended before a sequence was complete.
func (s *Stream) Pending() bool {
	return s.state.Pending()
}

// Check validates the next chunk of the stream.
//
// It returns the number of bytes of chunk that end on a sequence boundary.
// When a sequence is still open at the end of chunk and final is false,
// the returned count stops before that sequence and the stream keeps its
// progress: the next call continues the sequence with the following bytes of
// the stream, which must not include the bytes already passed in.
//
// On an ill-formed subsequence, or when final is true and the stream ends
// inside a sequence, Check returns a non-nil *Error. Both the count and the
// error's Offset are then the position in chunk just after the last complete
// sequence. The stream is
// already back at its start state, so the caller can skip the bad bytes and
// continue without calling Init.
func (s *Stream) Check(chunk []byte, final bool) (int, error) {
	state := s.state
	lastAccept := 0

	for i, b := range chunk {
		state = dfa.Step(state, b)
		if state == dfa.Accept {
			lastAccept = i + 1
		} else if state == dfa.Error {
			s.state = dfa.Accept
			return lastAccept, illFormedAt(lastAccept)
		}
	}

	if state != dfa.Accept {
		if final {
			s.state = dfa.Accept
			return lastAccept, truncatedAt(lastAccept)
		}
		s.state = state
		return lastAccept, nil
	}

	s.state = state
	return len(chunk), nil
}

// CheckString is like Check but takes a string.
func (s *Stream) CheckString(chunk string, final bool) (int, error) {
	return s.Check(stringBytes(chunk), final)
}
