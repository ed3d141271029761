package pipeline

import (
	"bufio"
	"io"
)

const defaultMaxLineBytes = 10 * 1024 * 1024

// lineReader yields input lines without their terminators. Lines longer
// than max are consumed but not buffered.
type lineReader struct {
	r   *bufio.Reader
	max int
	buf []byte
}

func newLineReader(input io.Reader, max int) *lineReader {
	if max <= 0 {
		max = defaultMaxLineBytes
	}
	return &lineReader{r: bufio.NewReaderSize(input, 64*1024), max: max}
}

// next returns the next line and its length in bytes. When the length is
// over the limit the returned line is empty. io.EOF is returned once the
// input is exhausted.
func (l *lineReader) next() (string, int, error) {
	l.buf = l.buf[:0]
	size := 0
	read := false
	for {
		chunk, isPrefix, err := l.r.ReadLine()
		if err != nil {
			if err == io.EOF && read {
				return l.line(size), size, nil
			}
			return "", 0, err
		}
		read = true
		size += len(chunk)
		if size <= l.max {
			l.buf = append(l.buf, chunk...)
		}
		if !isPrefix {
			return l.line(size), size, nil
		}
	}
}

func (l *lineReader) line(size int) string {
	if size > l.max {
		return ""
	}
	return string(l.buf)
}
