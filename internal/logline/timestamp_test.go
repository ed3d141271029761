package logline

import "testing"

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		line string
		want int64
		ok   bool
	}{
		{line: "2021-01-01T00:00:00Z Reward applied", want: 1609459200000, ok: true},
		{line: "2021-01-01T00:00:00.250Z\tINFO", want: 1609459200250, ok: true},
		{line: "2021-01-01T03:00:00.000+0300\tINFO\tReward applied", want: 1609459200000, ok: true},
		{line: "2021-01-01T00:00:00+00:00 x", want: 1609459200000, ok: true},
		{line: "1609459200123 Reward applied", want: 1609459200123, ok: true},
		{line: "  2021-01-01T00:00:00Z leading spaces", want: 1609459200000, ok: true},
		{line: "Reward applied {}", ok: false},
		{line: "", ok: false},
	}

	for _, tc := range cases {
		got, ok := ParseTimestamp(tc.line)
		if ok != tc.ok {
			t.Fatalf("%q: ok mismatch: got %v want %v", tc.line, ok, tc.ok)
		}
		if got != tc.want {
			t.Fatalf("%q: timestamp mismatch: %d != %d", tc.line, got, tc.want)
		}
	}
}
