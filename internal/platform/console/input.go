// Package console implements line-oriented terminal input and styled
// output for playing in a plain shell or over a non-PTY stream.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type lineResult struct {
	text string
	err  error
}

// LineReader reads one line per prompt from r, writing prompts to w.
// Each read is served by a background goroutine, so a read can be
// abandoned when its context is done. The pending line is then returned
// by the next ReadLine. Nothing is read from r between calls.
type LineReader struct {
	scanner *bufio.Scanner
	out     io.Writer

	start   sync.Once
	want    chan struct{}
	lines   chan lineResult
	pending bool
	failed  error
}

// NewLineReader creates a reader over r. Prompts are written to w, which may be nil.
func NewLineReader(r io.Reader, w io.Writer) *LineReader {
	if w == nil {
		w = io.Discard
	}
	return &LineReader{
		scanner: bufio.NewScanner(r),
		out:     w,
		want:    make(chan struct{}, 1),
		lines:   make(chan lineResult, 1),
	}
}

func (l *LineReader) scan() {
	for range l.want {
		if l.scanner.Scan() {
			l.lines <- lineResult{text: strings.TrimRight(l.scanner.Text(), "\r")}
			continue
		}
		err := io.EOF
		if serr := l.scanner.Err(); serr != nil {
			err = fmt.Errorf("console: read failed: %w", serr)
		}
		l.lines <- lineResult{err: err}
		return
	}
}

// ReadLine writes prompt and blocks until a full line is read or ctx is
// done. Returns io.EOF when the input is exhausted. ReadLine is not safe
// for concurrent use.
func (l *LineReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if l.failed != nil {
		return "", l.failed
	}
	if prompt != "" {
		fmt.Fprint(l.out, prompt)
	}
	l.start.Do(func() { go l.scan() })
	if !l.pending {
		l.want <- struct{}{}
		l.pending = true
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-l.lines:
		l.pending = false
		if res.err != nil {
			l.failed = res.err
		}
		return res.text, res.err
	}
}
