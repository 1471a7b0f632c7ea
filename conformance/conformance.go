// Package conformance runs utf8valid against fixture files of labelled
// byte sequences.
//
// A fixture is line oriented. Blank lines and lines starting with '#' are
// ignored. Every other line has the form
//
//	num:valid:ASCII text
//	num:valid hex:C2 A9
//	num:invalid hex:C0 AF[:more fields]
//
// Lines with an unrecognized kind are skipped so that fixtures can carry
// cases for other tools.
package conformance

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/coregx/utf8valid"
)

// ErrBadHex is returned for hex fields that are not whitespace separated
// byte pairs.
var ErrBadHex = errors.New("conformance: bad hex")

// Case is one labelled input.
type Case struct {
	Line  int    // 1-based line number in the fixture, set by Run
	Num   string // fixture-assigned identifier
	Valid bool   // expected verdict
	Input []byte
}

// Failure records a case whose verdict disagreed with the label.
type Failure struct {
	Case   Case
	Mode   string // "check" or "stream"
	Got    bool
	Cursor int
}

func (f Failure) String() string {
	want, got := "invalid", "invalid"
	if f.Case.Valid {
		want = "valid"
	}
	if f.Got {
		got = "valid"
	}
	return fmt.Sprintf("line %d (%s): %s expected %s, got %s at %d: %s",
		f.Case.Line, f.Case.Num, f.Mode, want, got, f.Cursor, Escape(f.Case.Input))
}

// Report summarizes a run.
type Report struct {
	Total    int
	Failed   int
	Failures []Failure
}

// OK reports whether every case passed.
func (r Report) OK() bool {
	return r.Failed == 0
}

func (r Report) String() string {
	if r.Failed > 0 {
		return fmt.Sprintf("Failed %d tests of %d.", r.Failed, r.Total)
	}
	return fmt.Sprintf("Passed %d tests.", r.Total)
}

// ParseLine parses one fixture line. It returns ok == false for comments,
// blank lines, malformed lines and unknown kinds.
func ParseLine(line string) (c Case, ok bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" || line[0] == '#' {
		return Case{}, false, nil
	}

	num, rest, found := strings.Cut(line, ":")
	if !found {
		return Case{}, false, nil
	}
	kind, data, found := strings.Cut(rest, ":")
	if !found {
		return Case{}, false, nil
	}
	c.Num = num

	switch strings.TrimRight(kind, " \t") {
	case "valid":
		c.Valid = true
		c.Input = []byte(data)
		return c, true, nil
	case "valid hex":
		c.Valid = true
	case "invalid hex":
	default:
		return Case{}, false, nil
	}

	field, _, _ := strings.Cut(data, ":")
	if c.Input, err = DecodeHex(field); err != nil {
		return Case{}, false, err
	}
	return c, true, nil
}

// DecodeHex decodes whitespace separated hex byte pairs such as "C2 A9" or
// "C2A9 80".
func DecodeHex(s string) ([]byte, error) {
	var out []byte
	for _, field := range strings.Fields(s) {
		b, err := hex.DecodeString(field)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadHex, field, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

// Escape renders p for diagnostics: printable ASCII as is, with backslash
// and double quote escaped, everything else as \xHH.
func Escape(p []byte) string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, b := range p {
		switch {
		case b == '\\' || b == '"':
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b >= 0x20 && b < 0x7F:
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, `\x%02X`, b)
		}
	}
	return sb.String()
}

// Run parses a fixture from r and checks every case, once with the
// one-shot validator and once fed byte by byte through a Stream.
func Run(r io.Reader) (Report, error) {
	var report Report
	sc := bufio.NewScanner(r)
	lineno := 0

	for sc.Scan() {
		lineno++
		c, ok, err := ParseLine(sc.Text())
		if err != nil {
			return report, fmt.Errorf("line %d: %w", lineno, err)
		}
		if !ok {
			continue
		}
		c.Line = lineno
		report.Total++

		failed := false
		if got, cursor := utf8valid.Check(c.Input); got != c.Valid {
			report.Failures = append(report.Failures, Failure{Case: c, Mode: "check", Got: got, Cursor: cursor})
			failed = true
		}
		if got, cursor := streamBytes(c.Input); got != c.Valid {
			report.Failures = append(report.Failures, Failure{Case: c, Mode: "stream", Got: got, Cursor: cursor})
			failed = true
		}
		if failed {
			report.Failed++
		}
	}
	if err := sc.Err(); err != nil {
		return report, fmt.Errorf("reading fixture: %w", err)
	}
	return report, nil
}

// streamBytes validates p one byte per chunk and returns the verdict and
// the offset of the failure.
func streamBytes(p []byte) (bool, int) {
	var s utf8valid.Stream
	s.Init()
	consumed := 0
	for i := range p {
		n, err := s.Check(p[i:i+1], false)
		if err != nil {
			return false, consumed
		}
		if n == 1 {
			consumed = i + 1
		}
	}
	if _, err := s.Check(nil, true); err != nil {
		return false, consumed
	}
	return true, len(p)
}
