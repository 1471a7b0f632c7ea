package main

import (
	"bytes"
	"errors"
	"io"

	"github.com/coregx/utf8valid"
)

// finding is the first ill-formed subsequence of one input.
type finding struct {
	offset int64
	kind   utf8valid.ErrorKind
	bad    []byte // the maximal subpart at offset
}

func (f *finding) message() string {
	if f.kind == utf8valid.Truncated {
		return utf8valid.ErrTruncated.Message
	}
	return utf8valid.ErrIllFormed.Message
}

// checker validates inputs chunk by chunk with a reusable buffer.
type checker struct {
	v   *utf8valid.Validator
	buf []byte
}

func newChecker(cfg utf8valid.Config, chunkSize int) (*checker, error) {
	v, err := utf8valid.New(cfg)
	if err != nil {
		return nil, err
	}
	return &checker{v: v, buf: make([]byte, chunkSize)}, nil
}

// check reads r to the end or to the first ill-formed subsequence. It
// returns the finding, or nil if r is well-formed, and the number of bytes
// read.
//
// Chunks that start on a sequence boundary are tried with the one-shot
// validator first; only chunks that fail it, or that continue a sequence
// from the previous chunk, are stepped through the stream.
func (c *checker) check(r io.Reader) (*finding, int64, error) {
	s := utf8valid.NewStream()

	var (
		base     int64  // stream offset of the current chunk
		boundary int64  // stream offset after the last complete sequence
		tail     []byte // bytes from boundary to base
	)

	for {
		n, rerr := io.ReadFull(r, c.buf)
		final := rerr == io.EOF || errors.Is(rerr, io.ErrUnexpectedEOF)
		if rerr != nil && !final {
			return nil, base + int64(n), rerr
		}
		chunk := c.buf[:n]

		if !s.Pending() && c.v.Valid(chunk) {
			base += int64(n)
			boundary = base
			tail = tail[:0]
			if final {
				return nil, base, nil
			}
			continue
		}

		k, err := s.Check(chunk, final)
		if err != nil {
			var verr *utf8valid.Error
			if !errors.As(err, &verr) {
				return nil, base + int64(n), err
			}

			f := &finding{offset: boundary, kind: verr.Kind}
			bad := append(tail, chunk...)
			if k > 0 {
				f.offset = base + int64(k)
				bad = chunk[k:]
			}
			if len(bad) > 0 {
				bad = bad[:utf8valid.MaximalSubpart(bad)]
			}
			f.bad = bytes.Clone(bad)
			return f, base + int64(n), nil
		}

		if k == 0 {
			tail = append(tail, chunk...)
		} else {
			boundary = base + int64(k)
			tail = append(tail[:0], chunk[k:]...)
		}
		base += int64(n)
		if final {
			return nil, base, nil
		}
	}
}
