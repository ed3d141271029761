package logline

import (
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses the leading whitespace-separated field of a line
// into milliseconds since the Unix epoch. The field may be an RFC3339 time,
// a go-spacemesh style time with a numeric zone, or a bare integer already
// in milliseconds. Times without a zone are taken as UTC.
func ParseTimestamp(line string) (int64, bool) {
	field := leadingField(line)
	if field == "" {
		return 0, false
	}

	if isNumeric(field) {
		ms, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return 0, false
		}
		return ms, true
	}

	for _, layout := range timestampLayouts {
		tm, err := time.Parse(layout, field)
		if err == nil {
			return tm.UnixMilli(), true
		}
	}
	return 0, false
}

func leadingField(line string) string {
	line = strings.TrimLeft(line, " \t")
	if idx := strings.IndexAny(line, " \t"); idx >= 0 {
		return line[:idx]
	}
	return line
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
