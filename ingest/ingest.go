// Package ingest reads a terminated sequence of integer keys from text
// input and hands each one to a callback.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// DefaultSentinel ends input when read as a key.
const DefaultSentinel int64 = -1

// SyntaxError reports a token that is not a base-10 int64.
type SyntaxError struct {
	Token string
	Pos   int // 1-based token position
	Err   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ingest: token %d %q: %v", e.Pos, e.Token, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ReadKeys scans whitespace-separated integers from r until sentinel or
// EOF and calls fn for each key before the sentinel. It returns how many
// keys were passed to fn.
func ReadKeys(r io.Reader, sentinel int64, fn func(int64) error) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	n, pos := 0, 0
	for sc.Scan() {
		pos++
		tok := sc.Text()
		key, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return n, &SyntaxError{Token: tok, Pos: pos, Err: err}
		}
		if key == sentinel {
			return n, nil
		}
		if err := fn(key); err != nil {
			return n, err
		}
		n++
	}
	return n, sc.Err()
}
