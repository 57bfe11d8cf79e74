package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// lineReader yields input lines of any length. Oversized names are
// handled by truncation further down, so the reader must not cap them.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line without its terminator. ok is false at end
// of input; err is set only for read failures.
func (lr *lineReader) next() (line string, ok bool, err error) {
	line, err = lr.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}
