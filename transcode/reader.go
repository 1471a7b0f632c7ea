package transcode

import (
	"bufio"
	"io"

	"golang.org/x/text/transform"
)

// NewReader wraps r so that everything read from it is checked as UTF-8.
//
// By default a read fails with a *utf8valid.Error at the first ill-formed
// subsequence; all bytes before it are delivered first. The error's Offset
// is the absolute position in the stream read from r. With WithReplacement
// the reader never fails on content and yields U+FFFD for ill-formed input.
func NewReader(r io.Reader, opts ...Option) (io.Reader, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.bufferSize > 0 {
		r = bufio.NewReaderSize(r, cfg.bufferSize)
	}

	var t transform.Transformer
	if cfg.replace {
		t = NewReplacer()
	} else {
		t = &validator{base: cfg.baseOffset, off: cfg.baseOffset}
	}
	return transform.NewReader(r, t), nil
}
