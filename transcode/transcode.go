// Package transcode adapts the utf8valid automaton to golang.org/x/text
// transformers and readers.
//
// Two transformers are provided. NewValidator copies well-formed input
// through unchanged and fails at the first ill-formed subsequence.
// NewReplacer never fails: each maximal subpart of an ill-formed
// subsequence becomes a single U+FFFD, following the Unicode recommended
// practice for substitution.
//
//	r, err := transcode.NewReader(f, transcode.WithReplacement())
//	if err != nil {
//	    return err
//	}
//	_, err = io.Copy(os.Stdout, r)
package transcode

import (
	"golang.org/x/text/transform"

	"github.com/coregx/utf8valid"
	"github.com/coregx/utf8valid/dfa"
	"github.com/coregx/utf8valid/simd"
)

// ErrInvalidUTF8 matches, via errors.Is, the errors returned by the
// validating transformer and reader.
var ErrInvalidUTF8 = utf8valid.ErrIllFormed

// Replacement is the UTF-8 encoding of U+FFFD REPLACEMENT CHARACTER.
const Replacement = "\uFFFD"

// validator is a stateful transformer: it counts consumed bytes so that
// errors carry the absolute offset into the transformed stream.
type validator struct {
	base int
	off  int
}

// NewValidator returns a Transformer that copies well-formed UTF-8 and
// returns a *utf8valid.Error at the first ill-formed subsequence. The error's
// Offset counts bytes from the start of the stream (or from the last Reset).
func NewValidator() transform.Transformer {
	return &validator{}
}

func (v *validator) Reset() {
	v.off = v.base
}

func (v *validator) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := min(len(src), len(dst))

	s := utf8valid.Stream{}
	s.Init()
	k, serr := s.Check(src[:n], false)
	copy(dst, src[:k])
	offset := v.off + k
	v.off = offset

	switch {
	case serr != nil:
		return k, k, &utf8valid.Error{
			Kind:    utf8valid.IllFormed,
			Offset:  offset,
			Message: utf8valid.ErrIllFormed.Message,
		}
	case k == len(src):
		return k, k, nil
	case n < len(src):
		return k, k, transform.ErrShortDst
	case !atEOF:
		return k, k, transform.ErrShortSrc
	default:
		return k, k, &utf8valid.Error{
			Kind:    utf8valid.Truncated,
			Offset:  offset,
			Message: utf8valid.ErrTruncated.Message,
		}
	}
}

type replacer struct {
	transform.NopResetter
}

// NewReplacer returns a Transformer that copies well-formed UTF-8 and
// replaces each maximal subpart of ill-formed input with U+FFFD. It never
// returns an error other than transform.ErrShortDst or transform.ErrShortSrc.
func NewReplacer() transform.SpanningTransformer {
	return replacer{}
}

func (replacer) Span(src []byte, atEOF bool) (n int, err error) {
	if simd.IsASCII(src) {
		return len(src), nil
	}
	n = utf8valid.MaximalPrefix(src)
	switch {
	case n == len(src):
		return n, nil
	case !atEOF && incomplete(src[n:]):
		return n, transform.ErrShortSrc
	default:
		return n, transform.ErrEndOfSpan
	}
}

func (replacer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		rest := src[nSrc:]

		if p := utf8valid.MaximalPrefix(rest); p > 0 {
			if room := len(dst) - nDst; p > room {
				m := utf8valid.MaximalPrefix(rest[:room])
				nDst += copy(dst[nDst:], rest[:m])
				return nDst, nSrc + m, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], rest[:p])
			nSrc += p
			continue
		}

		if !atEOF && incomplete(rest) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if len(dst)-nDst < len(Replacement) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], Replacement)
		nSrc += utf8valid.MaximalSubpart(rest)
	}
	return nDst, nSrc, nil
}

// incomplete reports whether p is a proper prefix of some well-formed
// sequence, i.e. more input could still complete it.
func incomplete(p []byte) bool {
	return dfa.Run(dfa.Accept, p).Pending()
}

// ReplaceInvalid returns p with each maximal subpart of ill-formed input
// replaced by U+FFFD. Well-formed input is returned as is, without copying.
func ReplaceInvalid(p []byte) []byte {
	if simd.IsASCII(p) {
		return p
	}
	prefix := utf8valid.MaximalPrefix(p)
	if prefix == len(p) {
		return p
	}

	out := make([]byte, 0, len(p)+len(Replacement))
	for {
		out = append(out, p[:prefix]...)
		p = p[prefix:]
		if len(p) == 0 {
			return out
		}
		out = append(out, Replacement...)
		p = p[utf8valid.MaximalSubpart(p):]
		prefix = utf8valid.MaximalPrefix(p)
	}
}

// ReplaceInvalidString is like ReplaceInvalid but takes a string.
func ReplaceInvalidString(s string) string {
	// The replacer reports no errors at EOF.
	out, _, _ := transform.String(NewReplacer(), s)
	return out
}
