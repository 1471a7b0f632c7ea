package utf8valid

import "fmt"

// ErrorKind classifies validation errors.
type ErrorKind uint8

const (
	// IllFormed indicates a byte sequence that is not well-formed UTF-8.
	IllFormed ErrorKind = iota

	// Truncated indicates a stream that ended inside a multi-byte sequence.
	// It is a refinement of IllFormed: errors.Is(err, ErrIllFormed) holds.
	Truncated

	// InvalidConfig indicates configuration validation failed.
	InvalidConfig
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case IllFormed:
		return "IllFormed"
	case Truncated:
		return "Truncated"
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// ErrIllFormed matches, via errors.Is, any error reporting ill-formed input,
// including truncated streams.
var ErrIllFormed = &Error{
	Kind:    IllFormed,
	Message: "ill-formed UTF-8",
}

// ErrTruncated matches errors for streams that end inside a sequence.
var ErrTruncated = &Error{
	Kind:    Truncated,
	Message: "truncated UTF-8 sequence at end of input",
}

// ErrInvalidConfig matches configuration validation errors.
var ErrInvalidConfig = &Error{
	Kind:    InvalidConfig,
	Message: "invalid validator configuration",
}

// Error reports where validation failed.
//
// For IllFormed and Truncated errors, Offset is the byte offset of the start
// of the first ill-formed subsequence in the input that was checked. For
// streams, it is relative to the chunk passed to Stream.Check.
type Error struct {
	Kind    ErrorKind
	Offset  int
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case IllFormed, Truncated:
		return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
	default:
		return e.Message
	}
}

// Is implements error comparison for errors.Is. Kinds must match, except
// that ErrIllFormed also matches Truncated errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == IllFormed && e.Kind == Truncated {
		return true
	}
	return e.Kind == t.Kind
}

func illFormedAt(offset int) *Error {
	return &Error{Kind: IllFormed, Offset: offset, Message: ErrIllFormed.Message}
}

func truncatedAt(offset int) *Error {
	return &Error{Kind: Truncated, Offset: offset, Message: ErrTruncated.Message}
}
