package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// console keeps the first write error so the session loop can print freely.
type console struct {
	w   io.Writer
	err error
}

func (c *console) println(a ...any) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintln(c.w, a...)
}

func (c *console) printf(format string, a ...any) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, format, a...)
}

// lineReader feeds input lines to the session one at a time so that a
// blocked read does not keep the session from observing cancellation.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go lr.scan(r)
	return lr
}

// scan stops at end of input or at the first send after close. A Read that is
// still blocked when the session ends is abandoned, not interrupted.
func (lr *lineReader) scan(r io.Reader) {
	defer close(lr.lines)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case lr.lines <- scanner.Text():
		case <-lr.done:
			return
		}
	}
	lr.err = scanner.Err()
}

// next returns io.EOF once the input is exhausted.
func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", lr.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

func (lr *lineReader) close() {
	close(lr.done)
}
