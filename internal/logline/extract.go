package logline

import (
	"errors"
	"strings"
)

// ErrPayloadNotFound is returned when a line has no brace-delimited payload.
var ErrPayloadNotFound = errors.New("payload not found")

// Extractor recovers the structured payload fragment embedded in a log line.
type Extractor interface {
	Extract(line string) (string, bool)
}

// BraceExtractor returns the text spanning the first '{' to the last '}'.
//
// The match is greedy across the whole line and does not balance braces, so
// a line carrying several unrelated fragments yields all of them plus the
// text in between. Node logs print one payload per line, which keeps this
// good enough in practice.
type BraceExtractor struct{}

func (BraceExtractor) Extract(line string) (string, bool) {
	start := strings.IndexByte(line, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(line, '}')
	if end < start {
		return "", false
	}
	return line[start : end+1], true
}
